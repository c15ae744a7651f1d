package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/repository"
)

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 100
)

// recordResult 为已登录的用户记录一次作答，游客直接跳过
// 每人每天每种谜题只保留第一次的成绩，重复提交不算错误
func (h *Handler) recordResult(r *http.Request, result *domain.PuzzleResult, answer any) error {
	userID, ok := currentUserID(r)
	if !ok {
		return nil
	}

	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	result.UserID = userID
	result.Answer = data

	if err := h.store.InsertPuzzleResult(result); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == repository.ConstraintPuzzleResultKey {
			slog.Debug("重复提交，保留第一次的成绩", "user", userID, "date", result.DateKey, "kind", result.Kind)
			return nil
		}
		return err
	}

	return nil
}

func (h *Handler) GetMyResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		h.errorResponse(w, r, "无效的令牌")
		return
	}

	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxResultsLimit {
			h.errorResponse(w, r, "limit 必须是 1 到 100 之间的整数")
			return
		}
		limit = n
	}

	puzzleResults, err := h.store.GetPuzzleResultsByUserID(userID, limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	summaries, err := h.store.GetSessionSummariesByUserID(userID, limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成绩成功", struct {
		Puzzles  []*domain.PuzzleResult   `json:"puzzles"`
		Sessions []*domain.SessionSummary `json:"sessions"`
	}{
		Puzzles:  puzzleResults,
		Sessions: summaries,
	})
}
