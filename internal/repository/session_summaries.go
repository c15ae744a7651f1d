package repository

import (
	"encoding/json"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

func (r *Repository) InsertSessionSummary(summary *domain.SessionSummary) error {
	results, err := json.Marshal(summary.Results)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO session_summaries (user_id, date_key, total_score, med_reaction, results, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{summary.UserID, summary.DateKey, summary.TotalScore, summary.MedReaction, string(results), summary.FinishedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&summary.ID, &summary.CreatedAt, &summary.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckSessionSummaryIfExists(userID int64, dateKey string) (bool, error) {
	isExists := false

	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM session_summaries WHERE user_id = $1 AND date_key = $2)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, userID, dateKey).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

func (r *Repository) GetSessionSummariesByUserID(userID int64, limit int) ([]*domain.SessionSummary, error) {
	query := `
		SELECT id, date_key, total_score, med_reaction, results, finished_at, created_at, version
		FROM session_summaries
		WHERE user_id = $1
		ORDER BY date_key DESC
		LIMIT $2
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*domain.SessionSummary, 0)
	for rows.Next() {
		summary := &domain.SessionSummary{
			UserID: userID,
		}
		var results []byte
		dst := []any{
			&summary.ID,
			&summary.DateKey,
			&summary.TotalScore,
			&summary.MedReaction,
			&results,
			&summary.FinishedAt,
			&summary.CreatedAt,
			&summary.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(results, &summary.Results); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
