package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/commute"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/prioritizer"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/utils"
)

var (
	errInvalidDate   = errors.New("日期格式应为 YYYY-MM-DD")
	errDateNotOpened = errors.New("该日期的题目尚未开放")
)

// resolveDateKey 为空时取首尔时区的今天，不允许查看超过 MaxFutureDays 天之后的题目
func (h *Handler) resolveDateKey(raw string) (string, error) {
	now := time.Now()
	if raw == "" {
		return puzzle.DateKey(now), nil
	}

	date, err := puzzle.ParseDateKey(raw)
	if err != nil {
		return "", errInvalidDate
	}

	today, err := puzzle.ParseDateKey(puzzle.DateKey(now))
	if err != nil {
		return "", err
	}
	if date.After(today.AddDate(0, 0, h.config.Puzzle.MaxFutureDays)) {
		return "", errDateNotOpened
	}

	return date.Format(puzzle.DateKeyLayout), nil
}

func (h *Handler) seedFor(dateKey string, kind domain.PuzzleKind) string {
	return puzzle.SeedFor(dateKey, kind, h.config.Puzzle.SeedSalt)
}

// loadDaily 优先使用预先生成并存入数据库的题目，种子不一致（换了盐值）或不存在时现场生成
func loadDaily[T any](store Store, dateKey string, kind domain.PuzzleKind, seed string, generate func(seed string) *T) (*T, error) {
	dp, err := store.GetDailyPuzzle(dateKey, kind)
	switch {
	case err == nil && dp.Seed == seed:
		problem := new(T)
		if err := json.Unmarshal(dp.Problem, problem); err != nil {
			return nil, err
		}
		return problem, nil
	case err == nil, errors.Is(err, sql.ErrNoRows):
		return generate(seed), nil
	default:
		return nil, err
	}
}

// cachedOptimal 按种子读取缓存的最优解，缓存不可用时直接求解
func (h *Handler) cachedOptimal(ctx context.Context, seed string, solve func() domain.OptimalResult) domain.OptimalResult {
	result, ok, err := h.solved.GetSolved(ctx, seed)
	if err != nil {
		slog.Warn("读取最优解缓存失败", "seed", seed, "error", err)
	}
	if ok {
		return *result
	}

	optimal := solve()
	if err := h.solved.SetSolved(ctx, seed, &optimal); err != nil {
		slog.Warn("写入最优解缓存失败", "seed", seed, "error", err)
	}
	return optimal
}

type dailyPuzzleResponse struct {
	Date      string `json:"date"`
	Seed      string `json:"seed"`
	Problem   any    `json:"problem"`
	Optimal   int    `json:"optimal"`
	Heuristic bool   `json:"heuristic"`
}

func (h *Handler) GetSchedulingPuzzle(w http.ResponseWriter, r *http.Request) {
	dateKey, err := h.resolveDateKey(r.URL.Query().Get("date"))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	seed := h.seedFor(dateKey, domain.PuzzleKindScheduling)
	problem, err := loadDaily(h.store, dateKey, domain.PuzzleKindScheduling, seed, puzzle.GenerateSchedulingProblem)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	optimal := h.cachedOptimal(r.Context(), seed, func() domain.OptimalResult {
		return scheduler.OptimalMakespan(problem)
	})

	h.successResponse(w, r, "获取调度谜题成功", dailyPuzzleResponse{
		Date:      dateKey,
		Seed:      seed,
		Problem:   problem,
		Optimal:   optimal.BestObjective,
		Heuristic: optimal.Heuristic,
	})
}

func (h *Handler) CheckSchedulingPuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string      `json:"date"`
		Plan domain.Plan `json:"plan" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dateKey, err := h.resolveDateKey(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	seed := h.seedFor(dateKey, domain.PuzzleKindScheduling)
	problem, err := loadDaily(h.store, dateKey, domain.PuzzleKindScheduling, seed, puzzle.GenerateSchedulingProblem)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	optimal := h.cachedOptimal(r.Context(), seed, func() domain.OptimalResult {
		return scheduler.OptimalMakespan(problem)
	})
	report := commute.CheckSchedulingWithOptimal(problem, req.Plan, optimal)

	if err := h.recordResult(r, &domain.PuzzleResult{
		DateKey:   dateKey,
		Kind:      domain.PuzzleKindScheduling,
		Seed:      seed,
		Score:     report.Score,
		Objective: report.Achieved.Makespan,
		Optimal:   report.Optimal.BestObjective,
	}, req.Plan); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "检查完成", report)
}

func (h *Handler) GetPrioritizationPuzzle(w http.ResponseWriter, r *http.Request) {
	dateKey, err := h.resolveDateKey(r.URL.Query().Get("date"))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	seed := h.seedFor(dateKey, domain.PuzzleKindPrioritization)
	problem, err := loadDaily(h.store, dateKey, domain.PuzzleKindPrioritization, seed, puzzle.GeneratePrioritizationProblem)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	optimal := h.cachedOptimal(r.Context(), seed, func() domain.OptimalResult {
		return prioritizer.Optimal(problem)
	})

	h.successResponse(w, r, "获取优先级谜题成功", dailyPuzzleResponse{
		Date:    dateKey,
		Seed:    seed,
		Problem: problem,
		Optimal: optimal.BestObjective,
	})
}

func (h *Handler) CheckPrioritizationPuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      string           `json:"date"`
		Selection domain.Selection `json:"selection" validate:"required,unique"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dateKey, err := h.resolveDateKey(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	seed := h.seedFor(dateKey, domain.PuzzleKindPrioritization)
	problem, err := loadDaily(h.store, dateKey, domain.PuzzleKindPrioritization, seed, puzzle.GeneratePrioritizationProblem)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	optimal := h.cachedOptimal(r.Context(), seed, func() domain.OptimalResult {
		return prioritizer.Optimal(problem)
	})
	report := commute.CheckPrioritizationWithOptimal(problem, req.Selection, optimal)

	if err := h.recordResult(r, &domain.PuzzleResult{
		DateKey:   dateKey,
		Kind:      domain.PuzzleKindPrioritization,
		Seed:      seed,
		Score:     report.Score,
		Objective: report.Validation.Objective,
		Optimal:   report.Optimal.BestObjective,
	}, req.Selection); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "检查完成", report)
}

// SolveScheduling 求解客户端自带的调度谜题；同时提交了计划时返回完整的检查结果
func (h *Handler) SolveScheduling(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Problem domain.SchedulingProblem `json:"problem"`
		Plan    domain.Plan              `json:"plan"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateSchedulingProblem(&req.Problem, h.config.Puzzle.MaxProblemSize); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Plan == nil {
		h.successResponse(w, r, "求解完成", scheduler.OptimalMakespan(&req.Problem))
		return
	}

	h.successResponse(w, r, "检查完成", commute.CheckScheduling(&req.Problem, req.Plan))
}

func (h *Handler) SolvePrioritization(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Problem   domain.PrioritizationProblem `json:"problem"`
		Selection domain.Selection             `json:"selection"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidatePrioritizationProblem(&req.Problem, h.config.Puzzle.MaxProblemSize); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Selection == nil {
		h.successResponse(w, r, "求解完成", prioritizer.Optimal(&req.Problem))
		return
	}

	h.successResponse(w, r, "检查完成", commute.CheckPrioritization(&req.Problem, req.Selection))
}
