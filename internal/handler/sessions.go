package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/cache"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/repository"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/session"
)

type sessionResponse struct {
	Session *domain.CommuteSession  `json:"session"`
	Current *domain.CommuteGameMeta `json:"current"`
}

func (h *Handler) sessionView(s *domain.CommuteSession) sessionResponse {
	resp := sessionResponse{Session: s}
	if id, ok := session.Current(*s); ok {
		if meta, ok := h.catalog.Get(id); ok {
			resp.Current = &meta
		}
	}
	return resp
}

// StartSession 开始今天的通勤挑战；请求体为空时自动选择游戏
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		h.errorResponse(w, r, "无效的令牌")
		return
	}

	var req struct {
		Selected []domain.CommuteGameID `json:"selected" validate:"max=3,unique,dive,required"`
	}

	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	now := time.Now()
	dateKey := puzzle.DateKey(now)

	played, err := h.store.CheckSessionSummaryIfExists(userID, dateKey)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if played {
		h.errorResponse(w, r, "今天已经完成过通勤挑战")
		return
	}

	var s domain.CommuteSession
	if len(req.Selected) == 0 {
		s = session.StartAuto(h.catalog, session.New(dateKey), now)
	} else {
		s = session.New(dateKey)
		for _, id := range req.Selected {
			if _, ok := h.catalog.Get(id); !ok {
				h.errorResponse(w, r, fmt.Sprintf("游戏 %s 不存在", id))
				return
			}
			s = session.Toggle(s, id)
		}
		s = session.Start(s, now)
	}

	if err := h.sessions.SaveSession(r.Context(), userID, &s); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "挑战开始", h.sessionView(&s))
}

// loadSession 读取进行中的挑战，不存在时已经写好响应并返回 false
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (int64, *domain.CommuteSession, bool) {
	userID, ok := currentUserID(r)
	if !ok {
		h.errorResponse(w, r, "无效的令牌")
		return 0, nil, false
	}

	s, err := h.sessions.GetSession(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, cache.ErrSessionNotFound):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return 0, nil, false
	}

	return userID, s, true
}

func (h *Handler) GetCurrentSession(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	h.successResponse(w, r, "获取挑战进度成功", h.sessionView(s))
}

// SubmitSessionResult 提交一个游戏的结果；提交的是当前游戏时进入下一个，最后一个游戏提交后挑战结束
func (h *Handler) SubmitSessionResult(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID            domain.CommuteGameID `json:"id" validate:"required"`
		Score         int                  `json:"score"`
		CorrectCount  int                  `json:"correctCount" validate:"gte=0"`
		TotalCount    int                  `json:"totalCount" validate:"gte=0,gtefield=CorrectCount"`
		ReactionTimes []int                `json:"reactionTimes" validate:"dive,gte=0"`
		Details       map[string]any       `json:"details"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	userID, s, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	if !slices.Contains(s.Selected, req.ID) {
		h.errorResponse(w, r, "该游戏不在本次挑战中")
		return
	}

	next := session.Submit(*s, domain.CommuteGameResult{
		ID:            req.ID,
		Score:         req.Score,
		CorrectCount:  req.CorrectCount,
		TotalCount:    req.TotalCount,
		ReactionTimes: req.ReactionTimes,
		Details:       req.Details,
	})

	if current, ok := session.Current(next); ok && current == req.ID {
		var summary *domain.SessionSummary
		next, summary = session.Next(next, time.Now())
		if summary != nil {
			h.completeSession(w, r, userID, summary)
			return
		}
	}

	if err := h.sessions.SaveSession(r.Context(), userID, &next); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交成功", h.sessionView(&next))
}

// FinishSession 提前结束挑战，没有完成的游戏不计分
func (h *Handler) FinishSession(w http.ResponseWriter, r *http.Request) {
	userID, s, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	_, summary := session.Finish(*s, time.Now())
	h.completeSession(w, r, userID, &summary)
}

// completeSession 保存挑战汇总、清除进行中的挑战并发送报告邮件
func (h *Handler) completeSession(w http.ResponseWriter, r *http.Request, userID int64, summary *domain.SessionSummary) {
	summary.UserID = userID

	if err := h.store.InsertSessionSummary(summary); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == repository.ConstraintSessionSummaryKey:
			h.errorResponse(w, r, "今天已经完成过通勤挑战")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.sessions.DeleteSession(r.Context(), userID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 成绩已经保存，邮件发送失败只记录日志
	user, err := h.store.GetUserByID(userID)
	if err != nil {
		slog.Error("获取用户信息失败，无法发送挑战报告", "user", userID, "error", err)
	} else if err := h.publishMail(r.Context(), domain.MailMessage{
		Type: domain.MailTypeSessionReport,
		To:   user.Email,
		Data: domain.SessionReportMailData{
			Nickname:    user.Nickname,
			DateKey:     summary.DateKey,
			TotalScore:  summary.TotalScore,
			MedReaction: summary.MedReaction,
			Results:     summary.Results,
		},
	}); err != nil {
		slog.Error("发送挑战报告邮件失败", "user", userID, "error", err)
	}

	h.successResponse(w, r, "挑战完成", summary)
}
