package schedule

import (
	"context"
	"time"

	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/cache"
)

// GetCalendar serves the visible calendar range: raw joined rows come
// from the cache or the database, projection always runs per viewer so
// role-scoped anonymization is never cached.
type GetCalendar struct {
	repo  domain.Repository
	cache *cache.CalendarCache
}

func NewGetCalendar(
	repo domain.Repository,
	calendarCache *cache.CalendarCache,
) *GetCalendar {
	return &GetCalendar{
		repo:  repo,
		cache: calendarCache,
	}
}

func (uc *GetCalendar) Execute(
	ctx context.Context,
	viewer domain.Viewer,
	start time.Time,
	end time.Time,
) ([]domain.Event, error) {

	rows, ok := uc.cache.GetRows(ctx, start, end)
	if !ok {
		var err error
		rows, err = uc.repo.ListCalendarRows(ctx, start, end)
		if err != nil {
			return nil, err
		}
		uc.cache.SetRows(ctx, start, end, rows)
	}

	return domain.Project(rows, viewer), nil
}
