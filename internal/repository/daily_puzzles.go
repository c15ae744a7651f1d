package repository

import (
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

// UpsertDailyPuzzle 同一天同一类型的题目已存在时覆盖，用于重新生成预计算结果
func (r *Repository) UpsertDailyPuzzle(p *domain.DailyPuzzle) error {
	query := `
		INSERT INTO daily_puzzles (date_key, kind, seed, problem, optimal_objective)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT daily_puzzles_date_key_kind_key DO UPDATE
		SET
			seed = EXCLUDED.seed,
			problem = EXCLUDED.problem,
			optimal_objective = EXCLUDED.optimal_objective,
			version = daily_puzzles.version + 1
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{p.DateKey, p.Kind, p.Seed, string(p.Problem), p.OptimalObjective}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDailyPuzzle(dateKey string, kind domain.PuzzleKind) (*domain.DailyPuzzle, error) {
	query := `
		SELECT id, seed, problem, optimal_objective, created_at, version
		FROM daily_puzzles
		WHERE date_key = $1 AND kind = $2
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	p := &domain.DailyPuzzle{
		DateKey: dateKey,
		Kind:    kind,
	}

	var problem []byte
	dst := []any{&p.ID, &p.Seed, &problem, &p.OptimalObjective, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, dateKey, kind).Scan(dst...); err != nil {
		return nil, err
	}
	p.Problem = problem

	return p, nil
}
