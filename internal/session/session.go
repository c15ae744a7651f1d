// Package session 管理一次通勤挑战的进度
//
// 所有函数都接收一个会话并返回新的会话，不修改传入的值，也不做持久化。
// 进行中的会话由调用方存入缓存，结束后的汇总由调用方写入数据库
package session

import (
	"math"
	"slices"
	"time"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/rng"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/scoring"
)

const (
	SelectLimit = 3
	// 每次挑战从非困难游戏中选出的数量
	autoPickOthers = 2
)

func New(dateKey string) domain.CommuteSession {
	return domain.CommuteSession{
		DateKey:  dateKey,
		Selected: []domain.CommuteGameID{},
		Results:  []domain.CommuteGameResult{},
	}
}

func clone(s domain.CommuteSession) domain.CommuteSession {
	s.Selected = slices.Clone(s.Selected)
	s.Results = slices.Clone(s.Results)
	if s.Selected == nil {
		s.Selected = []domain.CommuteGameID{}
	}
	if s.Results == nil {
		s.Results = []domain.CommuteGameResult{}
	}
	return s
}

// AutoSelect 以 "<dateKey>-commute" 为种子，先选出一个困难游戏，再从其他游戏中洗牌选出两个，
// 困难游戏放在最后。同一天对所有玩家给出同样的组合
func AutoSelect(c *catalog.Catalog, dateKey string) []domain.CommuteGameID {
	r := rng.New(puzzle.SessionSeed(dateKey))
	hard, others := c.Split()

	var hardPick domain.CommuteGameID
	if len(hard) > 0 {
		hardPick = rng.Pick(r, hard)
	}

	shuffled := slices.Clone(others)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(math.Floor(r.Next() * float64(i+1)))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	selected := append([]domain.CommuteGameID{}, shuffled[:min(autoPickOthers, len(shuffled))]...)
	if hardPick != "" {
		selected = append(selected, hardPick)
	}
	return selected
}

// Toggle 选中或取消选中一个游戏，已经选满时忽略新的选择
func Toggle(s domain.CommuteSession, id domain.CommuteGameID) domain.CommuteSession {
	s = clone(s)
	if idx := slices.Index(s.Selected, id); idx >= 0 {
		s.Selected = slices.Delete(s.Selected, idx, idx+1)
		return s
	}
	if len(s.Selected) < SelectLimit {
		s.Selected = append(s.Selected, id)
	}
	return s
}

// Start 按当前的选择开始挑战，清空之前的进度
func Start(s domain.CommuteSession, now time.Time) domain.CommuteSession {
	s = clone(s)
	s.CurrentIndex = 0
	s.StartedAt = &now
	s.FinishedAt = nil
	s.Results = []domain.CommuteGameResult{}
	return s
}

func StartAuto(c *catalog.Catalog, s domain.CommuteSession, now time.Time) domain.CommuteSession {
	s = clone(s)
	s.DateKey = puzzle.DateKey(now)
	s.Selected = AutoSelect(c, s.DateKey)
	return Start(s, now)
}

// Submit 提交一个游戏的结果，同一个游戏之前的结果会被替换
func Submit(s domain.CommuteSession, result domain.CommuteGameResult) domain.CommuteSession {
	s = clone(s)
	s.Results = slices.DeleteFunc(s.Results, func(r domain.CommuteGameResult) bool {
		return r.ID == result.ID
	})
	s.Results = append(s.Results, result)
	return s
}

// Current 返回当前正在进行的游戏，已经全部完成时返回 false
func Current(s domain.CommuteSession) (domain.CommuteGameID, bool) {
	if s.FinishedAt != nil || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Selected) {
		return "", false
	}
	return s.Selected[s.CurrentIndex], true
}

// Next 进入下一个游戏；已经是最后一个游戏时结束挑战并返回汇总
func Next(s domain.CommuteSession, now time.Time) (domain.CommuteSession, *domain.SessionSummary) {
	if s.CurrentIndex+1 < len(s.Selected) {
		s = clone(s)
		s.CurrentIndex++
		return s, nil
	}
	s, summary := Finish(s, now)
	return s, &summary
}

func Finish(s domain.CommuteSession, now time.Time) (domain.CommuteSession, domain.SessionSummary) {
	s = clone(s)
	s.FinishedAt = &now
	s.HasPlayedToday = true

	return s, Summarize(s, now)
}

// Summarize 总分为各游戏分数之和，反应时间取所有游戏的中位数，没有反应时间记录时为 nil
func Summarize(s domain.CommuteSession, finishedAt time.Time) domain.SessionSummary {
	total := 0
	reactions := make([]int, 0)
	for _, r := range s.Results {
		total += r.Score
		reactions = append(reactions, r.ReactionTimes...)
	}

	summary := domain.SessionSummary{
		DateKey:    s.DateKey,
		TotalScore: total,
		Results:    slices.Clone(s.Results),
		FinishedAt: finishedAt,
	}
	if len(reactions) > 0 {
		med := scoring.Median(reactions)
		summary.MedReaction = &med
	}
	return summary
}
