package scheduler

// 违规信息的前缀，调用方可以据此区分违规类型
const (
	ViolationDuplicate     = "重复分配"
	ViolationUnknownTask   = "未知任务"
	ViolationUnknownWorker = "未知兼职"
	ViolationSkill         = "技能不符"
	ViolationMissingPrereq = "缺少前置任务"
	ViolationPrereqOrder   = "前置顺序错误"
	ViolationPrereqTime    = "前置时间冲突"
)

// lanes 是按 problem.Workers 顺序排列的每条工作线的任务序列
type lanes [][]string
