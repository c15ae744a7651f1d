// Package commute 把题目生成、校验、求最优解和计分串成一次完整的检查
package commute

import (
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/prioritizer"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/scoring"
)

// CheckScheduling 只按分配给谁来评判用户，顺序由系统在每条工作线内自动优化
// 违规列表来自按用户实际顺序进行的校验；只有全部任务都已分配时才计分
func CheckScheduling(problem *domain.SchedulingProblem, plan domain.Plan) domain.SchedulingReport {
	return CheckSchedulingWithOptimal(problem, plan, scheduler.OptimalMakespan(problem))
}

// CheckSchedulingWithOptimal 使用调用方已经求出（例如从缓存读出）的最优解，不再重新穷举
func CheckSchedulingWithOptimal(problem *domain.SchedulingProblem, plan domain.Plan, optimal domain.OptimalResult) domain.SchedulingReport {
	s := scheduler.New(problem)

	report := domain.SchedulingReport{
		Validation: s.ValidatePlan(plan),
		Achieved:   s.BestForAssignment(plan),
		Optimal:    optimal,
		Unassigned: Unassigned(problem, plan),
	}
	report.Complete = len(report.Unassigned) == 0
	report.Score = scoring.MakespanScore(report.Achieved.Valid && report.Complete, report.Achieved.Makespan, report.Optimal.BestObjective)

	return report
}

// Unassigned 按题目顺序返回还没有分配给任何兼职的任务
func Unassigned(problem *domain.SchedulingProblem, plan domain.Plan) []string {
	assigned := make(map[string]bool)
	for _, w := range problem.Workers {
		for _, id := range plan[w] {
			assigned[id] = true
		}
	}

	unassigned := []string{}
	for _, task := range problem.Tasks {
		if !assigned[task.ID] {
			unassigned = append(unassigned, task.ID)
		}
	}
	return unassigned
}

func CheckPrioritization(problem *domain.PrioritizationProblem, selection domain.Selection) domain.PrioritizationReport {
	return CheckPrioritizationWithOptimal(problem, selection, prioritizer.Optimal(problem))
}

func CheckPrioritizationWithOptimal(problem *domain.PrioritizationProblem, selection domain.Selection, optimal domain.OptimalResult) domain.PrioritizationReport {
	validation := prioritizer.ValidateSelection(problem, selection)

	return domain.PrioritizationReport{
		Validation: validation,
		UsedTime:   prioritizer.UsedTime(problem, selection),
		Optimal:    optimal,
		Score:      scoring.Score(validation.Valid, validation.Objective, optimal.BestObjective),
	}
}
