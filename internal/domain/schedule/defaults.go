package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smilemore/clinic-scheduler/internal/models"
)

// Draft is the mutable booking form state the resolver operates on.
type Draft struct {
	Start time.Time
	End   time.Time
	Cost  *decimal.Decimal
}

func (d Draft) Duration() time.Duration {
	return d.End.Sub(d.Start)
}

// ApplyProcedure propagates a procedure's defaults: a default duration
// recomputes the end time from the current start, a default cost
// overwrites the cost field. Fields without defaults are left alone.
func ApplyProcedure(d Draft, proc *models.Procedure) Draft {
	if proc == nil {
		return d
	}
	if proc.DefaultDurationMin != nil {
		d.End = d.Start.Add(time.Duration(*proc.DefaultDurationMin) * time.Minute)
	}
	if proc.DefaultCost != nil {
		cost := *proc.DefaultCost
		d.Cost = &cost
	}
	return d
}

// ApplyTemplate propagates an appointment template: its duration always
// wins, its own default cost wins over the linked procedure's.
func ApplyTemplate(d Draft, tmpl *models.AppointmentTemplate, proc *models.Procedure) Draft {
	if tmpl == nil {
		return d
	}

	d = ApplyProcedure(d, proc)
	d.End = d.Start.Add(time.Duration(tmpl.DurationMin) * time.Minute)

	if tmpl.DefaultCost != nil {
		cost := *tmpl.DefaultCost
		d.Cost = &cost
	}
	return d
}

// WithDuration derives the end time from a duration-select value.
func WithDuration(d Draft, minutes int) Draft {
	d.End = d.Start.Add(time.Duration(minutes) * time.Minute)
	return d
}

// WithStart moves the start instant while preserving the previously
// computed duration.
func WithStart(d Draft, newStart time.Time) Draft {
	dur := d.Duration()
	d.Start = newStart
	d.End = newStart.Add(dur)
	return d
}

// PinAllDay pins the draft to the full business day of its start date,
// remembering the prior range so toggling off restores it.
func PinAllDay(d Draft, hours BusinessHours) (Draft, Draft) {
	prev := d
	d.Start, d.End = hours.DayRange(d.Start)
	return d, prev
}

// UnpinAllDay restores the range saved by PinAllDay when the start date
// has not changed in between; otherwise the pinned range is kept for the
// new date.
func UnpinAllDay(d Draft, prev Draft) Draft {
	if sameDate(d.Start, prev.Start) {
		return prev
	}
	return d
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
