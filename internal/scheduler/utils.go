package scheduler

import (
	"slices"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

// laneOf 返回任务所在的兼职和它在工作线中的位置，未分配时返回空字符串和 -1
func laneOf(plan domain.Plan, workers []domain.WorkerID, id string) (domain.WorkerID, int) {
	for _, w := range workers {
		if idx := slices.Index(plan[w], id); idx >= 0 {
			return w, idx
		}
	}
	return "", -1
}
