package schedule

import (
	"context"
	"time"

	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
)

// ValidateSlot is the advisory pre-check behind the calendar selection:
// it reproduces the booking-time validation without persisting anything,
// so the client can clear an invalid selection before opening the
// booking dialog.
type ValidateSlot struct {
	repo  domain.Repository
	hours domain.BusinessHours
	loc   *time.Location
	now   func() time.Time
}

func NewValidateSlot(
	repo domain.Repository,
	hours domain.BusinessHours,
	loc *time.Location,
) *ValidateSlot {
	return &ValidateSlot{
		repo:  repo,
		hours: hours,
		loc:   loc,
		now:   time.Now,
	}
}

func (uc *ValidateSlot) Execute(
	ctx context.Context,
	start time.Time,
	end time.Time,
) error {

	start = start.In(uc.loc)
	end = end.In(uc.loc)

	existing, err := uc.repo.ListBookedRanges(ctx, start, end)
	if err != nil {
		return err
	}

	now := uc.now().In(uc.loc)
	return domain.ValidateSlot(start, end, existing, now, uc.hours)
}
