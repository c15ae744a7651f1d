// Package prioritizer 校验优先级谜题的选择，并穷举所有子集求出最优总价值
package prioritizer

import (
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

const (
	ViolationOverBudget  = "时间超出"
	ViolationRequired    = "必选项缺失"
	ViolationAfter       = "缺少前置项"
	ViolationMutex       = "互斥冲突"
	ViolationUnknownItem = "未知事项"
)

// UsedTime 返回选择所占用的时间，重复的 ID 只计算一次，未知 ID 忽略
func UsedTime(problem *domain.PrioritizationProblem, selection domain.Selection) int {
	used, _ := totals(problem, selection)
	return used
}

func totals(problem *domain.PrioritizationProblem, selection domain.Selection) (int, int) {
	used, value := 0, 0
	for _, item := range problem.Items {
		if selection.Contains(item.ID) {
			used += item.Time
			value += item.Value
		}
	}
	return used, value
}

// ValidateSelection 依次检查时间预算、必选项、前置项和互斥项
// Objective 为所选事项的总价值
func ValidateSelection(problem *domain.PrioritizationProblem, selection domain.Selection) domain.ValidationResult {
	violations := []string{}
	used, value := totals(problem, selection)

	if used > problem.TotalTime {
		violations = append(violations, fmt.Sprintf("%s: %d/%d", ViolationOverBudget, used, problem.TotalTime))
	}

	for _, item := range problem.Items {
		selected := selection.Contains(item.ID)
		if item.Required && !selected {
			violations = append(violations, fmt.Sprintf("%s: %s", ViolationRequired, item.ID))
		}
		if item.After != "" && selected && !selection.Contains(item.After) {
			violations = append(violations, fmt.Sprintf("%s: %s → %s", ViolationAfter, item.After, item.ID))
		}
		if item.MutexWith != "" && selected && selection.Contains(item.MutexWith) {
			violations = append(violations, fmt.Sprintf("%s: %s × %s", ViolationMutex, item.ID, item.MutexWith))
		}
	}

	reported := make([]string, 0)
	for _, id := range selection {
		if _, ok := problem.ItemByID(id); !ok && !slices.Contains(reported, id) {
			reported = append(reported, id)
			violations = append(violations, fmt.Sprintf("%s: %s", ViolationUnknownItem, id))
		}
	}

	return domain.ValidationResult{
		Valid:      len(violations) == 0,
		Violations: violations,
		Objective:  value,
	}
}

func feasible(problem *domain.PrioritizationProblem, set domain.Selection) bool {
	for _, item := range problem.Items {
		selected := set.Contains(item.ID)
		if item.Required && !selected {
			return false
		}
		if item.After != "" && selected && !set.Contains(item.After) {
			return false
		}
		if item.MutexWith != "" && selected && set.Contains(item.MutexWith) {
			return false
		}
	}
	return true
}

// Optimal 用位掩码枚举全部 2^n 个子集，只有严格更优时才替换，价值相同时保留最先找到的子集
// 没有任何可行子集时返回 0 和空选择
func Optimal(problem *domain.PrioritizationProblem) domain.OptimalResult {
	n := len(problem.Items)
	best := 0
	bestSet := domain.Selection{}

	for mask := 0; mask < 1<<n; mask++ {
		set := make(domain.Selection, 0, n)
		used, value := 0, 0
		for i, item := range problem.Items {
			if mask&(1<<i) != 0 {
				set = append(set, item.ID)
				used += item.Time
				value += item.Value
			}
		}

		if used > problem.TotalTime || !feasible(problem, set) {
			continue
		}
		if value > best {
			best = value
			bestSet = set
		}
	}

	return domain.OptimalResult{
		BestObjective:    best,
		ExampleSelection: bestSet,
	}
}
