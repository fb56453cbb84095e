package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/logging"
)

const (
	versionKey = "calendar:version"
	rowTTL     = 5 * time.Minute
)

// CalendarCache keeps the raw joined calendar rows per visible window.
// Rows are role-independent; projection always happens per viewer, so
// nothing role-scoped is ever cached. Any appointment mutation bumps the
// version key, orphaning every cached window at once.
type CalendarCache struct {
	rdb *redis.Client
}

// New returns nil when no redis address is configured; callers treat a
// nil cache as a permanent miss.
func New(addr, password string) *CalendarCache {
	if addr == "" {
		return nil
	}
	return &CalendarCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (c *CalendarCache) key(ctx context.Context, start, end time.Time) (string, error) {
	ver, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("calendar:v%d:%d:%d", ver, start.Unix(), end.Unix()), nil
}

func (c *CalendarCache) GetRows(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]domain.CalendarRow, bool) {

	if c == nil {
		return nil, false
	}

	key, err := c.key(ctx, start, end)
	if err != nil {
		logging.Log.Warn("calendar cache unavailable", zap.Error(err))
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var rows []domain.CalendarRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *CalendarCache) SetRows(
	ctx context.Context,
	start time.Time,
	end time.Time,
	rows []domain.CalendarRow,
) {

	if c == nil {
		return
	}

	key, err := c.key(ctx, start, end)
	if err != nil {
		return
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, raw, rowTTL).Err(); err != nil {
		logging.Log.Warn("calendar cache set failed", zap.Error(err))
	}
}

// Bump invalidates all cached windows after a mutation.
func (c *CalendarCache) Bump(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		logging.Log.Warn("calendar cache bump failed", zap.Error(err))
	}
}
