package prioritizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/puzzle"
)

func twoItemProblem() *domain.PrioritizationProblem {
	return &domain.PrioritizationProblem{
		TotalTime: 100,
		Items: []domain.PItem{
			{ID: "A", Time: 30, Value: 10, Required: true},
			{ID: "B", Time: 40, Value: 15},
		},
	}
}

func TestValidateSelectionRequired(t *testing.T) {
	p := twoItemProblem()

	result := ValidateSelection(p, domain.Selection{"A"})
	assert.True(t, result.Valid)
	assert.Equal(t, 10, result.Objective)

	result = ValidateSelection(p, domain.Selection{})
	assert.False(t, result.Valid)
	assert.Equal(t, []string{ViolationRequired + ": A"}, result.Violations)

	result = ValidateSelection(p, domain.Selection{"A", "B"})
	assert.True(t, result.Valid)
	assert.Equal(t, 25, result.Objective)
	assert.Equal(t, 70, UsedTime(p, domain.Selection{"A", "B"}))

	opt := Optimal(p)
	assert.Equal(t, 25, opt.BestObjective)
	assert.Equal(t, domain.Selection{"A", "B"}, opt.ExampleSelection)
}

func TestValidateSelectionBudget(t *testing.T) {
	p := &domain.PrioritizationProblem{
		TotalTime: 50,
		Items: []domain.PItem{
			{ID: "A", Time: 30, Value: 100},
			{ID: "B", Time: 30, Value: 100},
		},
	}

	result := ValidateSelection(p, domain.Selection{"A", "B"})
	assert.False(t, result.Valid)
	assert.Equal(t, []string{ViolationOverBudget + ": 60/50"}, result.Violations)

	assert.Equal(t, 100, Optimal(p).BestObjective)
}

func TestValidateSelectionAfterAndMutex(t *testing.T) {
	p := puzzle.GeneratePrioritizationProblem("2025-01-15-prio-v1")

	result := ValidateSelection(p, domain.Selection{"T3"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Violations, ViolationAfter+": T2 → T3")

	result = ValidateSelection(p, domain.Selection{"T4", "T5"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Violations, ViolationMutex+": T5 × T4")

	result = ValidateSelection(p, domain.Selection{"T2", "T3", "T5"})
	assert.True(t, result.Valid, result.Violations)
	assert.Equal(t, 27, result.Objective)
}

func TestValidateSelectionUnknownAndDuplicateIDs(t *testing.T) {
	p := twoItemProblem()

	result := ValidateSelection(p, domain.Selection{"A", "A", "Z", "Z"})
	assert.False(t, result.Valid)
	assert.Equal(t, []string{ViolationUnknownItem + ": Z"}, result.Violations)
	// 重复的 ID 只计算一次
	assert.Equal(t, 10, result.Objective)
	assert.Equal(t, 30, UsedTime(p, domain.Selection{"A", "A"}))
}

func TestOptimalKnownSeeds(t *testing.T) {
	tests := []struct {
		seed string
		best int
		set  domain.Selection
	}{
		{"2025-01-15-prio-v1", 55, domain.Selection{"T1", "T2", "T3", "T4", "T6"}},
		{"2025-03-02-prio-v1", 52, domain.Selection{"T1", "T2", "T3", "T4"}},
		{"test-seed", 59, domain.Selection{"T1", "T2", "T3", "T4", "T6"}},
		{"seed-0", 60, domain.Selection{"T1", "T2", "T3", "T4", "T6"}},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			p := puzzle.GeneratePrioritizationProblem(tt.seed)
			result := Optimal(p)

			assert.Equal(t, tt.best, result.BestObjective)
			assert.Equal(t, tt.set, result.ExampleSelection)

			check := ValidateSelection(p, result.ExampleSelection)
			assert.True(t, check.Valid, check.Violations)
			assert.Equal(t, tt.best, check.Objective)
		})
	}
}

// 最优值不小于任何合法选择的价值
func TestOptimalDominatesValidSelections(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := puzzle.GeneratePrioritizationProblem(fmt.Sprintf("seed-%d", i))
		best := Optimal(p).BestObjective

		for mask := 0; mask < 1<<len(p.Items); mask++ {
			var sel domain.Selection
			for k, item := range p.Items {
				if mask&(1<<k) != 0 {
					sel = append(sel, item.ID)
				}
			}
			if result := ValidateSelection(p, sel); result.Valid {
				assert.LessOrEqual(t, result.Objective, best)
			}
		}
	}
}

func TestOptimalWithoutFeasibleSelection(t *testing.T) {
	p := &domain.PrioritizationProblem{
		TotalTime: 10,
		Items:     []domain.PItem{{ID: "A", Time: 30, Value: 10, Required: true}},
	}

	result := Optimal(p)
	assert.Equal(t, 0, result.BestObjective)
	assert.Empty(t, result.ExampleSelection)
}
