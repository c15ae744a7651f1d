package domain

// ValidationResult 中的 Objective 对调度谜题是完工时间（越小越好），对优先级谜题是总价值（越大越好）
// 只有在 Valid 为 true 时 Objective 才有意义
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
	Objective  int      `json:"objective"`
}

type OptimalResult struct {
	BestObjective    int       `json:"bestObjective"`
	ExamplePlan      Plan      `json:"examplePlan,omitempty"`
	ExampleSelection Selection `json:"exampleSelection,omitempty"`
	Heuristic        bool      `json:"heuristic"` // 为 true 表示穷举没有找到任何合法解，结果来自贪心兜底
}

type AssignmentResult struct {
	Valid    bool `json:"valid"`
	Makespan int  `json:"makespan"`
}

type SchedulingReport struct {
	Validation ValidationResult `json:"validation"` // 按用户实际排列的顺序校验
	Achieved   AssignmentResult `json:"achieved"`   // 在用户的分配下重新排序后能达到的最佳完工时间
	Optimal    OptimalResult    `json:"optimal"`
	Unassigned []string         `json:"unassigned"`
	Complete   bool             `json:"complete"`
	Score      int              `json:"score"`
}

type PrioritizationReport struct {
	Validation ValidationResult `json:"validation"`
	UsedTime   int              `json:"usedTime"`
	Optimal    OptimalResult    `json:"optimal"`
	Score      int              `json:"score"`
}
