package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/commute"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
)

// PrecomputeDailyPuzzles 从指定日期开始连续生成若干天的每日谜题并写入数据库
func (h *Handler) PrecomputeDailyPuzzles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required"`
		Days int    `json:"days" validate:"required,min=1,max=31"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := puzzle.ParseDateKey(req.Date)
	if err != nil {
		h.badRequest(w, r, errInvalidDate)
		return
	}

	saved := make([]*domain.DailyPuzzle, 0, req.Days*2)
	for i := 0; i < req.Days; i++ {
		dateKey := start.AddDate(0, 0, i).Format(puzzle.DateKeyLayout)

		puzzles, err := commute.BuildDailyPuzzles(dateKey, h.config.Puzzle.SeedSalt)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		for _, p := range puzzles {
			if err := h.store.UpsertDailyPuzzle(p); err != nil {
				h.internalServerError(w, r, err)
				return
			}
			saved = append(saved, p)
		}
	}

	h.successResponse(w, r, "生成每日谜题成功", saved)
}
