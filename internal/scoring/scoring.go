// Package scoring 把谜题结果换算为 [0, 100] 的分数，并提供小游戏共用的计分规则
package scoring

import (
	"math"
	"slices"
)

const (
	MaxScore = 100

	CorrectScore = 10
	WrongScore   = -5
	SkippedScore = -2
)

// Score 适用于越大越好的目标（优先级谜题的总价值）
func Score(valid bool, achieved, optimal int) int {
	if !valid || optimal <= 0 {
		return 0
	}
	return Clamp(0, round(float64(MaxScore)*float64(achieved)/float64(optimal)), MaxScore)
}

// MakespanScore 适用于越小越好的完工时间，达到最优时为 100
func MakespanScore(valid bool, makespan, optimal int) int {
	if !valid || makespan <= 0 {
		return 0
	}
	return Clamp(0, round(float64(MaxScore)*(float64(optimal)/float64(makespan))), MaxScore)
}

func BaseScore(correct, skipped bool) int {
	if skipped {
		return SkippedScore
	}
	if correct {
		return CorrectScore
	}
	return WrongScore
}

// Median 对偶数个元素取中间两个数的平均值并四舍五入，空切片返回 0
func Median(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return round(float64(sorted[mid-1]+sorted[mid]) / 2)
}

func Clamp(lo, v, hi int) int {
	return max(lo, min(hi, v))
}

// round 与前端保持一致：.5 总是向正无穷方向进位
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
