package scheduler

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

/**
 * 校验一个计划并计算完工时间
 * 步骤：
 * 		1. 任务不能重复分配，ID 和兼职必须存在于题目中
 * 		2. 每个任务只能分配给具备该技能的兼职
 * 		3. 前置任务必须已分配，在同一条工作线上时必须排在前面
 * 		4. 以上都满足时，按兼职顺序逐条工作线计算完成时间
 * 		5. 用计算出的完成时间再次检查跨工作线的前置关系
 */
func (s *Scheduler) evalPlan(plan domain.Plan) domain.ValidationResult {
	violations := []string{}

	// 先按兼职顺序展开，题目之外的兼职排在最后
	var all []string
	for _, w := range s.problem.Workers {
		all = append(all, plan[w]...)
	}
	extra := make([]string, 0)
	for w := range plan {
		if !slices.Contains(s.problem.Workers, w) {
			extra = append(extra, string(w))
		}
	}
	sort.Strings(extra)
	for _, w := range extra {
		all = append(all, plan[domain.WorkerID(w)]...)
	}

	// 只报告第一个重复的任务
	for i, id := range all {
		if slices.Index(all, id) != i {
			violations = append(violations, fmt.Sprintf("%s: %s", ViolationDuplicate, id))
			break
		}
	}

	for _, w := range extra {
		if len(plan[domain.WorkerID(w)]) > 0 {
			violations = append(violations, fmt.Sprintf("%s: %s", ViolationUnknownWorker, w))
		}
	}

	for _, w := range s.problem.Workers {
		for _, id := range plan[w] {
			task, ok := s.tasks[id]
			if !ok {
				violations = append(violations, fmt.Sprintf("%s: %s", ViolationUnknownTask, id))
				continue
			}
			if !task.CanBeDoneBy(w) {
				violations = append(violations, fmt.Sprintf("%s: %s 不能由 %s 完成", ViolationSkill, id, w))
			}
		}
	}

	for _, task := range s.problem.Tasks {
		if len(task.Precedence) == 0 {
			continue
		}
		lane, idx := laneOf(plan, s.problem.Workers, task.ID)
		for _, pre := range task.Precedence {
			preLane, preIdx := laneOf(plan, s.problem.Workers, pre)
			if _, known := s.tasks[pre]; !known || preLane == "" {
				violations = append(violations, fmt.Sprintf("%s: %s → %s", ViolationMissingPrereq, pre, task.ID))
				continue
			}
			if preLane == lane && preIdx > idx {
				violations = append(violations, fmt.Sprintf("%s: %s → %s", ViolationPrereqOrder, pre, task.ID))
			}
		}
	}

	if len(violations) > 0 {
		return domain.ValidationResult{Valid: false, Violations: violations, Objective: 0}
	}

	// 每条工作线串行执行，前置任务尚未计算时按 0 处理，留给下面的复查
	finish := make(map[string]int, len(s.problem.Tasks))
	makespan := 0
	for _, w := range s.problem.Workers {
		clock := 0
		for _, id := range plan[w] {
			task := s.tasks[id]
			start := max(clock, prereqEnd(task, finish))
			finish[id] = start + task.Duration
			clock = finish[id]
		}
		makespan = max(makespan, clock)
	}

	// 未分配的任务完成时间按 0 计算，所以前置已分配而自身未分配时也会被报告
	for i := range s.problem.Tasks {
		task := &s.problem.Tasks[i]
		if len(task.Precedence) == 0 {
			continue
		}
		if finish[task.ID]-task.Duration < prereqEnd(task, finish) {
			violations = append(violations, fmt.Sprintf("%s: %s → %s", ViolationPrereqTime, strings.Join(task.Precedence, ","), task.ID))
		}
	}

	if len(violations) > 0 {
		return domain.ValidationResult{Valid: false, Violations: violations, Objective: 0}
	}

	return domain.ValidationResult{Valid: true, Violations: violations, Objective: makespan}
}

func prereqEnd(task *domain.Task, finish map[string]int) int {
	end := 0
	for _, pre := range task.Precedence {
		end = max(end, finish[pre])
	}
	return end
}

// permutations 按字典序（以下标为准）生成所有排列
func permutations(ids []string) [][]string {
	if len(ids) <= 1 {
		return [][]string{append([]string{}, ids...)}
	}

	out := make([][]string, 0)
	used := make([]bool, len(ids))
	cur := make([]string, 0, len(ids))

	var dfs func()
	dfs = func() {
		if len(cur) == len(ids) {
			out = append(out, append([]string{}, cur...))
			return
		}
		for i := range ids {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, ids[i])
			dfs()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	dfs()

	return out
}

// eachOrdering 遍历每条工作线所有排列的组合，第一条工作线在最外层
func (s *Scheduler) eachOrdering(assignment lanes, visit func(plan domain.Plan)) {
	perms := make([][][]string, len(assignment))
	for i, ids := range assignment {
		perms[i] = permutations(ids)
	}

	cur := make(domain.Plan, len(s.problem.Workers))
	var rec func(k int)
	rec = func(k int) {
		if k == len(s.problem.Workers) {
			visit(cur)
			return
		}
		for _, p := range perms[k] {
			cur[s.problem.Workers[k]] = p
			rec(k + 1)
		}
	}
	rec(0)
}

/**
 * 贪心兜底：按题目顺序取任务，前置未完成的任务推迟到队尾，
 * 每个任务放到能最早开始的工作线上（并列时取靠前的兼职）
 * 只在穷举找不到任何合法计划时使用
 */
func (s *Scheduler) heuristicBest() (int, domain.Plan) {
	done := make(map[string]bool)
	finish := make(map[string]int)
	laneEnd := make(map[domain.WorkerID]int)
	plan := make(domain.Plan, len(s.problem.Workers))
	for _, w := range s.problem.Workers {
		plan[w] = []string{}
	}

	remaining := make([]*domain.Task, 0, len(s.problem.Tasks))
	for i := range s.problem.Tasks {
		remaining = append(remaining, &s.problem.Tasks[i])
	}

	deferred := 0
	for len(remaining) > 0 {
		task := remaining[0]
		remaining = remaining[1:]

		// 所有剩余任务都在等待时不再推迟，避免前置关系成环导致死循环
		if deferred <= len(remaining) && slices.ContainsFunc(task.Precedence, func(r string) bool { return !done[r] }) {
			remaining = append(remaining, task)
			deferred++
			continue
		}
		deferred = 0

		var bestWorker domain.WorkerID
		bestStart := -1
		for _, w := range s.problem.Workers {
			if !task.CanBeDoneBy(w) {
				continue
			}
			start := max(laneEnd[w], prereqEnd(task, finish))
			if bestStart < 0 || start < bestStart {
				bestStart = start
				bestWorker = w
			}
		}
		if bestStart < 0 {
			continue
		}

		laneEnd[bestWorker] = bestStart + task.Duration
		finish[task.ID] = laneEnd[bestWorker]
		plan[bestWorker] = append(plan[bestWorker], task.ID)
		done[task.ID] = true
	}

	makespan := 0
	for _, end := range laneEnd {
		makespan = max(makespan, end)
	}

	return makespan, plan
}
