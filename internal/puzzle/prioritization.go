package puzzle

import (
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/rng"
)

const (
	PrioritizationTotalTime = 120
	requiredProbability     = 0.3
)

// GeneratePrioritizationProblem 根据种子生成一道优先级谜题
// 抽取顺序为每一项依次抽取 time、value，T1 额外再抽一次决定是否必选
func GeneratePrioritizationProblem(seed string) *domain.PrioritizationProblem {
	r := rng.New(seed)

	items := []domain.PItem{
		{ID: "T1", Time: r.IntN(15, 30), Value: r.IntN(8, 16), Required: r.Next() < requiredProbability},
		{ID: "T2", Time: r.IntN(10, 25), Value: r.IntN(6, 14)},
		{ID: "T3", Time: r.IntN(20, 35), Value: r.IntN(8, 18), After: "T2"},
		{ID: "T4", Time: r.IntN(25, 40), Value: r.IntN(10, 20)},
		{ID: "T5", Time: r.IntN(10, 20), Value: r.IntN(4, 12), MutexWith: "T4"},
		{ID: "T6", Time: r.IntN(15, 30), Value: r.IntN(6, 14)},
	}

	return &domain.PrioritizationProblem{
		TotalTime: PrioritizationTotalTime,
		Items:     items,
	}
}
