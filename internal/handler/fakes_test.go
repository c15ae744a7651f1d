package handler

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/cache"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/repository"
)

type memStore struct {
	mu        sync.Mutex
	users     []*domain.User
	dailies   []*domain.DailyPuzzle
	results   []*domain.PuzzleResult
	summaries []*domain.SessionSummary
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func (m *memStore) GetUserByID(id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) GetUserByUsername(username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) CreateUser(user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return uniqueViolation(repository.ConstraintUsernameKey)
		}
		if u.Email == user.Email {
			return uniqueViolation(repository.ConstraintEmailKey)
		}
	}

	user.ID = int64(len(m.users) + 1)
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.Version = 1
	c := *user
	m.users = append(m.users, &c)
	return nil
}

func (m *memStore) UpdateUser(user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, u := range m.users {
		if u.ID == user.ID {
			c := *user
			m.users[i] = &c
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore) CheckEmailIfExists(email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) UpsertDailyPuzzle(p *domain.DailyPuzzle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, d := range m.dailies {
		if d.DateKey == p.DateKey && d.Kind == p.Kind {
			p.ID = d.ID
			m.dailies[i] = p
			return nil
		}
	}
	p.ID = int64(len(m.dailies) + 1)
	m.dailies = append(m.dailies, p)
	return nil
}

func (m *memStore) GetDailyPuzzle(dateKey string, kind domain.PuzzleKind) (*domain.DailyPuzzle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range m.dailies {
		if d.DateKey == dateKey && d.Kind == kind {
			return d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) InsertPuzzleResult(result *domain.PuzzleResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.results {
		if r.UserID == result.UserID && r.DateKey == result.DateKey && r.Kind == result.Kind {
			return uniqueViolation(repository.ConstraintPuzzleResultKey)
		}
	}
	result.ID = int64(len(m.results) + 1)
	m.results = append(m.results, result)
	return nil
}

func (m *memStore) GetPuzzleResultsByUserID(userID int64, limit int) ([]*domain.PuzzleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := []*domain.PuzzleResult{}
	for _, r := range m.results {
		if r.UserID == userID && len(results) < limit {
			results = append(results, r)
		}
	}
	return results, nil
}

func (m *memStore) InsertSessionSummary(summary *domain.SessionSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.summaries {
		if s.UserID == summary.UserID && s.DateKey == summary.DateKey {
			return uniqueViolation(repository.ConstraintSessionSummaryKey)
		}
	}
	summary.ID = int64(len(m.summaries) + 1)
	m.summaries = append(m.summaries, summary)
	return nil
}

func (m *memStore) CheckSessionSummaryIfExists(userID int64, dateKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.summaries {
		if s.UserID == userID && s.DateKey == dateKey {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetSessionSummariesByUserID(userID int64, limit int) ([]*domain.SessionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := []*domain.SessionSummary{}
	for _, s := range m.summaries {
		if s.UserID == userID && len(summaries) < limit {
			summaries = append(summaries, s)
		}
	}
	return summaries, nil
}

type memCache struct {
	mu       sync.Mutex
	solved   map[string]domain.OptimalResult
	sessions map[int64]domain.CommuteSession
}

func newMemCache() *memCache {
	return &memCache{
		solved:   make(map[string]domain.OptimalResult),
		sessions: make(map[int64]domain.CommuteSession),
	}
}

func (c *memCache) GetSolved(_ context.Context, seed string) (*domain.OptimalResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.solved[seed]
	if !ok {
		return nil, false, nil
	}
	return &result, true, nil
}

func (c *memCache) SetSolved(_ context.Context, seed string, result *domain.OptimalResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.solved[seed] = *result
	return nil
}

func (c *memCache) GetSession(_ context.Context, userID int64) (*domain.CommuteSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[userID]
	if !ok {
		return nil, cache.ErrSessionNotFound
	}
	return &s, nil
}

func (c *memCache) SaveSession(_ context.Context, userID int64, s *domain.CommuteSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions[userID] = *s
	return nil
}

func (c *memCache) DeleteSession(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.sessions, userID)
	return nil
}

type publishedMail struct {
	key  string
	body []byte
}

type memPublisher struct {
	mu        sync.Mutex
	published []publishedMail
}

func (p *memPublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, publishedMail{key: key, body: msg.Body})
	return nil
}
