package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/smilemore/clinic-scheduler/internal/httperr"
)

// BookedRange is the minimum an existing appointment exposes to the
// slot validator.
type BookedRange struct {
	ID     uuid.UUID
	Start  time.Time
	End    time.Time
	Status Status
}

// Overlaps implements the half-open range test:
// a overlaps b iff a.start < b.end AND a.end > b.start.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidateSlot checks a candidate [start, end) against the loaded
// non-canceled bookings, the current wall clock and the clinic business
// hours. Overlap is tested against every loaded booking regardless of
// clinic, matching the aggregate calendar; the per-clinic database
// exclusion constraint stays authoritative. The result is advisory.
func ValidateSlot(
	start time.Time,
	end time.Time,
	existing []BookedRange,
	now time.Time,
	hours BusinessHours,
) error {

	if !end.After(start) {
		return httperr.ErrBusiness("invalid_range")
	}

	// Date-only comparison in clinic local time.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	if startDay.Before(today) {
		return httperr.ErrBusiness("past_date")
	}

	if !hours.Contains(start, end) {
		return httperr.ErrBusiness("outside_business_hours")
	}

	for _, b := range existing {
		if b.Status == StatusCanceled {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	return nil
}
