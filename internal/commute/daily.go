package commute

import (
	"encoding/json"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/prioritizer"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/scheduler"
)

// BuildDailyPuzzles 生成某一天的调度谜题和优先级谜题，并附上预先求出的最优目标值
func BuildDailyPuzzles(dateKey, salt string) ([]*domain.DailyPuzzle, error) {
	schedSeed := puzzle.SeedFor(dateKey, domain.PuzzleKindScheduling, salt)
	sched := puzzle.GenerateSchedulingProblem(schedSeed)
	schedData, err := json.Marshal(sched)
	if err != nil {
		return nil, err
	}

	prioSeed := puzzle.SeedFor(dateKey, domain.PuzzleKindPrioritization, salt)
	prio := puzzle.GeneratePrioritizationProblem(prioSeed)
	prioData, err := json.Marshal(prio)
	if err != nil {
		return nil, err
	}

	return []*domain.DailyPuzzle{
		{
			DateKey:          dateKey,
			Kind:             domain.PuzzleKindScheduling,
			Seed:             schedSeed,
			Problem:          schedData,
			OptimalObjective: scheduler.OptimalMakespan(sched).BestObjective,
		},
		{
			DateKey:          dateKey,
			Kind:             domain.PuzzleKindPrioritization,
			Seed:             prioSeed,
			Problem:          prioData,
			OptimalObjective: prioritizer.Optimal(prio).BestObjective,
		},
	}, nil
}
