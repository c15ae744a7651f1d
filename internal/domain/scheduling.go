package domain

type WorkerID string

const (
	WorkerA WorkerID = "A"
	WorkerB WorkerID = "B"
	WorkerC WorkerID = "C"
)

// Workers 是调度谜题中固定的三名兼职，顺序决定了计算完成时间时各条工作线的处理顺序
var Workers = []WorkerID{WorkerA, WorkerB, WorkerC}

type Task struct {
	ID              string     `json:"id"`
	Duration        int        `json:"duration"` // 分钟，必须大于 0
	EligibleWorkers []WorkerID `json:"eligibleWorkers"`
	Precedence      []string   `json:"precedence"` // 必须先完成的任务 ID
}

type SchedulingProblem struct {
	Workers []WorkerID `json:"workers"`
	Tasks   []Task     `json:"tasks"`
}

// Plan 表示每个兼职按顺序执行的任务 ID 列表
// 在只关心分配、不关心顺序的场景下（见 scheduler.BestForAssignment），同一类型也用来表示分配结果
type Plan map[WorkerID][]string

func (p *SchedulingProblem) TaskByID(id string) (*Task, bool) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i], true
		}
	}
	return nil, false
}

func (t *Task) CanBeDoneBy(worker WorkerID) bool {
	for _, w := range t.EligibleWorkers {
		if w == worker {
			return true
		}
	}
	return false
}

// Clone 深拷贝一个计划，防止后续的搜索过程修改已经保存的结果
func (p Plan) Clone() Plan {
	c := make(Plan, len(p))
	for w, ids := range p {
		c[w] = append([]string{}, ids...)
	}
	return c
}
