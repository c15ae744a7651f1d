package repository

import (
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

// InsertPuzzleResult 每个玩家每天每种谜题只记录第一次提交，重复提交会违反唯一约束
func (r *Repository) InsertPuzzleResult(result *domain.PuzzleResult) error {
	query := `
		INSERT INTO puzzle_results (user_id, date_key, kind, seed, score, objective, optimal, answer)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		result.UserID,
		result.DateKey,
		result.Kind,
		result.Seed,
		result.Score,
		result.Objective,
		result.Optimal,
		string(result.Answer),
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&result.ID, &result.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPuzzleResultsByUserID(userID int64, limit int) ([]*domain.PuzzleResult, error) {
	query := `
		SELECT id, date_key, kind, seed, score, objective, optimal, answer, created_at
		FROM puzzle_results
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*domain.PuzzleResult, 0)
	for rows.Next() {
		result := &domain.PuzzleResult{
			UserID: userID,
		}
		var answer []byte
		dst := []any{
			&result.ID,
			&result.DateKey,
			&result.Kind,
			&result.Seed,
			&result.Score,
			&result.Objective,
			&result.Optimal,
			&answer,
			&result.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		result.Answer = answer
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
