package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/config"
)

// 违反唯一约束时 pgconn.PgError 中的约束名
const (
	ConstraintUsernameKey       = "users_username_key"
	ConstraintEmailKey          = "users_email_key"
	ConstraintDailyPuzzleKey    = "daily_puzzles_date_key_kind_key"
	ConstraintPuzzleResultKey   = "puzzle_results_user_id_date_key_kind_key"
	ConstraintSessionSummaryKey = "session_summaries_user_id_date_key_key"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}
