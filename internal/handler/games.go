package handler

import "net/http"

func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取游戏列表成功", h.catalog.Games())
}
