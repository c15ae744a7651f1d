package domain

type PItem struct {
	ID        string `json:"id"`
	Time      int    `json:"time"`
	Value     int    `json:"value"`
	Required  bool   `json:"required"`
	After     string `json:"after,omitempty"`     // 选择该项时必须同时选择的前置项
	MutexWith string `json:"mutexWith,omitempty"` // 不能与该项同时选择
}

type PrioritizationProblem struct {
	TotalTime int     `json:"totalTime"`
	Items     []PItem `json:"items"`
}

// Selection 是用户选中的事项 ID，按集合语义处理
type Selection []string

func (p *PrioritizationProblem) ItemByID(id string) (*PItem, bool) {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i], true
		}
	}
	return nil, false
}

func (s Selection) Contains(id string) bool {
	for _, x := range s {
		if x == id {
			return true
		}
	}
	return false
}
