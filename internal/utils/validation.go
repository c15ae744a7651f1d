package utils

import (
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

// 穷举求解的规模上限，不受配置影响
// 调度谜题要枚举 兼职数^任务数 种分配，再乘以每条工作线的全排列；优先级谜题的子集数为 2^n
const (
	MaxSchedulingWorkers   = 3
	MaxSchedulingTasks     = 6
	MaxPrioritizationItems = 20
)

// ValidateSchedulingProblem 检查客户端提交的调度题目，保证它能安全地交给穷举求解
func ValidateSchedulingProblem(p *domain.SchedulingProblem, maxTasks int) error {
	maxTasks = min(maxTasks, MaxSchedulingTasks)

	if len(p.Workers) == 0 {
		return fmt.Errorf("至少需要一名兼职")
	}
	if len(p.Workers) > MaxSchedulingWorkers {
		return fmt.Errorf("兼职数量不能超过 %d", MaxSchedulingWorkers)
	}
	for i, w := range p.Workers {
		if w == "" {
			return fmt.Errorf("第 %d 名兼职的 ID 为空", i)
		}
		if slices.Index(p.Workers, w) != i {
			return fmt.Errorf("兼职 %s 重复", w)
		}
	}

	if len(p.Tasks) == 0 {
		return fmt.Errorf("至少需要一个任务")
	}
	if len(p.Tasks) > maxTasks {
		return fmt.Errorf("任务数量不能超过 %d", maxTasks)
	}

	ids := make(map[string]bool, len(p.Tasks))
	for i, task := range p.Tasks {
		if task.ID == "" {
			return fmt.Errorf("第 %d 个任务的 ID 为空", i)
		}
		if ids[task.ID] {
			return fmt.Errorf("任务 %s 重复", task.ID)
		}
		ids[task.ID] = true

		if task.Duration <= 0 {
			return fmt.Errorf("任务 %s 的时长必须大于 0", task.ID)
		}
		if len(task.EligibleWorkers) == 0 {
			return fmt.Errorf("任务 %s 至少需要一名可以完成它的兼职", task.ID)
		}
		for _, w := range task.EligibleWorkers {
			if !slices.Contains(p.Workers, w) {
				return fmt.Errorf("任务 %s 引用了不存在的兼职 %s", task.ID, w)
			}
		}
	}

	for _, task := range p.Tasks {
		for _, pre := range task.Precedence {
			if pre == task.ID {
				return fmt.Errorf("任务 %s 不能依赖自己", task.ID)
			}
			if !ids[pre] {
				return fmt.Errorf("任务 %s 的前置任务 %s 不存在", task.ID, pre)
			}
		}
	}

	if cycle := findPrecedenceCycle(p); cycle != "" {
		return fmt.Errorf("任务 %s 的前置关系存在环", cycle)
	}

	return nil
}

// findPrecedenceCycle 用三色标记的深度优先搜索找环，返回环上的一个任务
func findPrecedenceCycle(p *domain.SchedulingProblem) string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(p.Tasks))
	var visit func(task *domain.Task) string
	visit = func(task *domain.Task) string {
		color[task.ID] = gray
		for _, pre := range task.Precedence {
			switch color[pre] {
			case gray:
				return pre
			case white:
				next, _ := p.TaskByID(pre)
				if found := visit(next); found != "" {
					return found
				}
			}
		}
		color[task.ID] = black
		return ""
	}

	for i := range p.Tasks {
		if color[p.Tasks[i].ID] == white {
			if found := visit(&p.Tasks[i]); found != "" {
				return found
			}
		}
	}
	return ""
}

func ValidatePrioritizationProblem(p *domain.PrioritizationProblem, maxItems int) error {
	maxItems = min(maxItems, MaxPrioritizationItems)

	if p.TotalTime <= 0 {
		return fmt.Errorf("总时间必须大于 0")
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("至少需要一个事项")
	}
	if len(p.Items) > maxItems {
		return fmt.Errorf("事项数量不能超过 %d", maxItems)
	}

	ids := make(map[string]bool, len(p.Items))
	for i, item := range p.Items {
		if item.ID == "" {
			return fmt.Errorf("第 %d 个事项的 ID 为空", i)
		}
		if ids[item.ID] {
			return fmt.Errorf("事项 %s 重复", item.ID)
		}
		ids[item.ID] = true

		if item.Time <= 0 {
			return fmt.Errorf("事项 %s 的时间必须大于 0", item.ID)
		}
		if item.Value <= 0 {
			return fmt.Errorf("事项 %s 的价值必须大于 0", item.ID)
		}
	}

	for _, item := range p.Items {
		if item.After != "" && (item.After == item.ID || !ids[item.After]) {
			return fmt.Errorf("事项 %s 的前置项 %s 无效", item.ID, item.After)
		}
		if item.MutexWith != "" && (item.MutexWith == item.ID || !ids[item.MutexWith]) {
			return fmt.Errorf("事项 %s 的互斥项 %s 无效", item.ID, item.MutexWith)
		}
	}

	return nil
}
