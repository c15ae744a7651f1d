package scheduler

import (
	"math"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

type Scheduler struct {
	problem *domain.SchedulingProblem
	tasks   map[string]*domain.Task
}

func New(problem *domain.SchedulingProblem) *Scheduler {
	s := &Scheduler{
		problem: problem,
		tasks:   make(map[string]*domain.Task, len(problem.Tasks)),
	}

	for i := range problem.Tasks {
		s.tasks[problem.Tasks[i].ID] = &problem.Tasks[i]
	}

	return s
}

func (s *Scheduler) ValidatePlan(plan domain.Plan) domain.ValidationResult {
	return s.evalPlan(plan)
}

// Optimal 穷举每个任务可选的兼职以及每条工作线的所有排列，返回完工时间最小的计划
// 完工时间相同时保留最先找到的计划
func (s *Scheduler) Optimal() domain.OptimalResult {
	workerIndex := make(map[domain.WorkerID]int, len(s.problem.Workers))
	for i, w := range s.problem.Workers {
		workerIndex[w] = i
	}

	best := math.MaxInt
	var bestPlan domain.Plan

	// 回溯枚举分配方案，每得到一种就立即在其所有排列中求最优，不保留已枚举的方案
	cur := make(lanes, len(s.problem.Workers))
	var backtrack func(i int)
	backtrack = func(i int) {
		if i >= len(s.problem.Tasks) {
			s.eachOrdering(cur, func(plan domain.Plan) {
				result := s.evalPlan(plan)
				if !result.Valid {
					return
				}
				if result.Objective < best {
					best = result.Objective
					bestPlan = plan.Clone()
				}
			})
			return
		}
		task := &s.problem.Tasks[i]
		for _, w := range task.EligibleWorkers {
			k, ok := workerIndex[w]
			if !ok {
				continue
			}
			cur[k] = append(cur[k], task.ID)
			backtrack(i + 1)
			cur[k] = cur[k][:len(cur[k])-1]
		}
	}
	backtrack(0)

	// 题目生成器保证至少存在一个合法计划，这里只是兜底
	if bestPlan == nil {
		makespan, plan := s.heuristicBest()
		return domain.OptimalResult{
			BestObjective: makespan,
			ExamplePlan:   plan,
			Heuristic:     true,
		}
	}

	return domain.OptimalResult{
		BestObjective: best,
		ExamplePlan:   bestPlan,
	}
}

// BestForAssignment 只看每个任务分给了谁，不看用户排列的顺序，
// 在每条工作线的所有排列中找出最小的合法完工时间
func (s *Scheduler) BestForAssignment(assignment domain.Plan) domain.AssignmentResult {
	assign := make(lanes, len(s.problem.Workers))
	for i, w := range s.problem.Workers {
		assign[i] = assignment[w]
	}

	best := math.MaxInt
	anyValid := false
	s.eachOrdering(assign, func(plan domain.Plan) {
		// 题目之外的兼职保留下来，让校验把它们报告出来
		for w, ids := range assignment {
			if _, ok := plan[w]; !ok {
				plan[w] = ids
			}
		}
		result := s.evalPlan(plan)
		if !result.Valid {
			return
		}
		anyValid = true
		best = min(best, result.Objective)
	})

	if !anyValid {
		return domain.AssignmentResult{Valid: false, Makespan: 0}
	}

	return domain.AssignmentResult{Valid: true, Makespan: best}
}

func ValidatePlan(problem *domain.SchedulingProblem, plan domain.Plan) domain.ValidationResult {
	return New(problem).ValidatePlan(plan)
}

func OptimalMakespan(problem *domain.SchedulingProblem) domain.OptimalResult {
	return New(problem).Optimal()
}

func BestMakespanForAssignment(problem *domain.SchedulingProblem, assignment domain.Plan) domain.AssignmentResult {
	return New(problem).BestForAssignment(assignment)
}
