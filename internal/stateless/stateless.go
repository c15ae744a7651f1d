// Package stateless 处理不依赖数据库和缓存的谜题请求，供无服务器入口使用
//
// 请求体中的 kind 字段决定谜题类型；携带 problem 时使用客户端自带的题目，否则按 date 生成每日谜题。
// 携带 plan 或 selection 时返回完整的检查结果，否则只返回题目和最优解
package stateless

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/commute"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/prioritizer"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/utils"
)

const (
	KindScheduling     = "scheduling"
	KindPrioritization = "prioritization"
)

type Config struct {
	SeedSalt       string `env:"PUZZLE_SEED_SALT" envDefault:"v1"`
	MaxProblemSize int    `env:"PUZZLE_MAX_PROBLEM_SIZE" envDefault:"8"`
}

type Response struct {
	Date    string                       `json:"date,omitempty"`
	Seed    string                       `json:"seed,omitempty"`
	Problem any                          `json:"problem"`
	Optimal *domain.OptimalResult        `json:"optimal,omitempty"`
	Sched   *domain.SchedulingReport     `json:"schedulingReport,omitempty"`
	Prio    *domain.PrioritizationReport `json:"prioritizationReport,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

var errBadRequest = errors.New("请求格式错误")

// Handle 返回 HTTP 状态码和响应体
func Handle(cfg Config, body string) (int, any) {
	if !gjson.Valid(body) {
		return http.StatusBadRequest, ErrorResponse{Error: "请求体不是合法的 JSON"}
	}

	var (
		resp *Response
		err  error
	)
	switch kind := gjson.Get(body, "kind").String(); kind {
	case KindScheduling:
		resp, err = handleScheduling(cfg, body)
	case KindPrioritization:
		resp, err = handlePrioritization(cfg, body)
	case "":
		err = fmt.Errorf("%w: 缺少 kind 字段", errBadRequest)
	default:
		err = fmt.Errorf("%w: 不支持的谜题类型 %s", errBadRequest, kind)
	}

	if err != nil {
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	}
	return http.StatusOK, resp
}

func dailySeed(cfg Config, date string, kind domain.PuzzleKind) (string, string, error) {
	if date == "" {
		return "", "", fmt.Errorf("%w: 没有提供题目时必须指定 date", errBadRequest)
	}
	d, err := puzzle.ParseDateKey(date)
	if err != nil {
		return "", "", fmt.Errorf("%w: 日期格式应为 YYYY-MM-DD", errBadRequest)
	}

	dateKey := d.Format(puzzle.DateKeyLayout)
	return dateKey, puzzle.SeedFor(dateKey, kind, cfg.SeedSalt), nil
}

func handleScheduling(cfg Config, body string) (*Response, error) {
	var req struct {
		Date    string                    `json:"date"`
		Problem *domain.SchedulingProblem `json:"problem"`
		Plan    domain.Plan               `json:"plan"`
	}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	resp := &Response{}
	if req.Problem != nil {
		if err := utils.ValidateSchedulingProblem(req.Problem, cfg.MaxProblemSize); err != nil {
			return nil, err
		}
	} else {
		dateKey, seed, err := dailySeed(cfg, req.Date, domain.PuzzleKindScheduling)
		if err != nil {
			return nil, err
		}
		resp.Date, resp.Seed = dateKey, seed
		req.Problem = puzzle.GenerateSchedulingProblem(seed)
	}
	resp.Problem = req.Problem

	if req.Plan == nil {
		optimal := scheduler.OptimalMakespan(req.Problem)
		resp.Optimal = &optimal
		return resp, nil
	}

	report := commute.CheckScheduling(req.Problem, req.Plan)
	resp.Sched = &report
	return resp, nil
}

func handlePrioritization(cfg Config, body string) (*Response, error) {
	var req struct {
		Date      string                        `json:"date"`
		Problem   *domain.PrioritizationProblem `json:"problem"`
		Selection domain.Selection              `json:"selection"`
	}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	resp := &Response{}
	if req.Problem != nil {
		if err := utils.ValidatePrioritizationProblem(req.Problem, cfg.MaxProblemSize); err != nil {
			return nil, err
		}
	} else {
		dateKey, seed, err := dailySeed(cfg, req.Date, domain.PuzzleKindPrioritization)
		if err != nil {
			return nil, err
		}
		resp.Date, resp.Seed = dateKey, seed
		req.Problem = puzzle.GeneratePrioritizationProblem(seed)
	}
	resp.Problem = req.Problem

	if req.Selection == nil {
		optimal := prioritizer.Optimal(req.Problem)
		resp.Optimal = &optimal
		return resp, nil
	}

	report := commute.CheckPrioritization(req.Problem, req.Selection)
	resp.Prio = &report
	return resp, nil
}
