// Package cache 把已经求出最优解的谜题和进行中的通勤挑战保存在 redis 中
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/config"
	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/domain"
)

// ErrSessionNotFound 表示当前没有进行中的挑战（或已经过期）
var ErrSessionNotFound = errors.New("挑战不存在或已过期")

type Cache struct {
	cfg *config.Config
	rdb *redis.Client
}

func New(cfg *config.Config, rdb *redis.Client) *Cache {
	return &Cache{
		cfg: cfg,
		rdb: rdb,
	}
}

func solvedKey(seed string) string {
	return fmt.Sprintf("puzzle_solved_%s", seed)
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("commute_session_%d", userID)
}

func (c *Cache) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(c.cfg.Redis.OperationExpiration)*time.Second)
}

// GetSolved 读取以种子为键缓存的最优解，未命中时返回 false
// Cache 为 nil 时视为永远未命中
func (c *Cache) GetSolved(ctx context.Context, seed string) (*domain.OptimalResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	data, err := c.rdb.Get(ctx, solvedKey(seed)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	result := &domain.OptimalResult{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, false, err
	}

	return result, true, nil
}

func (c *Cache) SetSolved(ctx context.Context, seed string, result *domain.OptimalResult) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.rdb.Set(ctx, solvedKey(seed), data, time.Duration(c.cfg.Puzzle.CacheExpiration)*time.Second).Err()
}

func (c *Cache) GetSession(ctx context.Context, userID int64) (*domain.CommuteSession, error) {
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	data, err := c.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s := &domain.CommuteSession{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

func (c *Cache) SaveSession(ctx context.Context, userID int64, s *domain.CommuteSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.rdb.Set(ctx, sessionKey(userID), data, time.Duration(c.cfg.Puzzle.SessionExpiration)*time.Second).Err()
}

func (c *Cache) DeleteSession(ctx context.Context, userID int64) error {
	ctx, cancel := c.operationContext(ctx)
	defer cancel()

	return c.rdb.Del(ctx, sessionKey(userID)).Err()
}
