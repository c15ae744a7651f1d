package puzzle

import (
	"slices"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/rng"
)

const schedulingTaskCount = 4

// GenerateSchedulingProblem 根据种子生成一道调度谜题
//
// 随机数的抽取顺序是固定的：先按 T1..T6 的顺序抽取时长，再进行一次洗牌。
// 改变抽取顺序或次数都会改变种子到题目的映射，属于破坏性变更
func GenerateSchedulingProblem(seed string) *domain.SchedulingProblem {
	r := rng.New(seed)

	candidates := []domain.Task{
		{ID: "T1", Duration: r.IntN(20, 30), EligibleWorkers: []domain.WorkerID{domain.WorkerA, domain.WorkerB}, Precedence: []string{}},
		{ID: "T2", Duration: r.IntN(8, 15), EligibleWorkers: []domain.WorkerID{domain.WorkerA}, Precedence: []string{}},
		{ID: "T3", Duration: r.IntN(12, 18), EligibleWorkers: []domain.WorkerID{domain.WorkerB, domain.WorkerC}, Precedence: []string{}},
		{ID: "T4", Duration: r.IntN(15, 25), EligibleWorkers: []domain.WorkerID{domain.WorkerA, domain.WorkerB, domain.WorkerC}, Precedence: []string{}},
		{ID: "T5", Duration: r.IntN(25, 35), EligibleWorkers: []domain.WorkerID{domain.WorkerC}, Precedence: []string{}},
		{ID: "T6", Duration: r.IntN(12, 18), EligibleWorkers: []domain.WorkerID{domain.WorkerB}, Precedence: []string{"T3"}},
	}

	// 6 个候选中选出 4 个
	ids := []string{"T1", "T2", "T3", "T4", "T5", "T6"}
	r.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	picked := append([]string{}, ids[:schedulingTaskCount]...)

	// 选中了 T6 却没有选中它的前置任务 T3 时，用 T3 替换第一个不是 T6 的任务
	if slices.Contains(picked, "T6") && !slices.Contains(picked, "T3") {
		for i, id := range picked {
			if id != "T6" {
				picked[i] = "T3"
				break
			}
		}
	}

	tasks := make([]domain.Task, 0, schedulingTaskCount)
	for _, task := range candidates {
		if slices.Contains(picked, task.ID) {
			tasks = append(tasks, task)
		}
	}

	return &domain.SchedulingProblem{
		Workers: append([]domain.WorkerID{}, domain.Workers...),
		Tasks:   tasks,
	}
}
