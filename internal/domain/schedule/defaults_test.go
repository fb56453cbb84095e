package schedule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smilemore/clinic-scheduler/internal/models"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func intp(v int) *int {
	return &v
}

func TestApplyProcedure(t *testing.T) {
	start := at(2, 10, 0)
	d := Draft{Start: start, End: start.Add(15 * time.Minute)}

	proc := &models.Procedure{DefaultDurationMin: intp(45), DefaultCost: dec(300)}
	got := ApplyProcedure(d, proc)

	if got.Duration() != 45*time.Minute {
		t.Fatalf("duration = %v, want 45m", got.Duration())
	}
	if got.Cost == nil || !got.Cost.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("cost = %v, want 300", got.Cost)
	}

	// Procedure without defaults leaves the draft alone.
	got = ApplyProcedure(d, &models.Procedure{})
	if got.Duration() != 15*time.Minute || got.Cost != nil {
		t.Fatalf("empty procedure changed draft: %+v", got)
	}
}

func TestApplyTemplateWinsOverProcedure(t *testing.T) {
	start := at(2, 10, 0)
	d := Draft{Start: start, End: start.Add(15 * time.Minute)}

	proc := &models.Procedure{DefaultDurationMin: intp(45), DefaultCost: dec(300)}
	tmpl := &models.AppointmentTemplate{DurationMin: 90, DefaultCost: dec(500)}

	got := ApplyTemplate(d, tmpl, proc)

	if got.Duration() != 90*time.Minute {
		t.Fatalf("template duration must win, got %v", got.Duration())
	}
	if got.Cost == nil || !got.Cost.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("template cost must win, got %v", got.Cost)
	}

	// Template without its own cost falls back to the procedure's.
	got = ApplyTemplate(d, &models.AppointmentTemplate{DurationMin: 60}, proc)
	if got.Cost == nil || !got.Cost.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected procedure cost fallback, got %v", got.Cost)
	}
}

func TestWithStartPreservesDuration(t *testing.T) {
	start := at(2, 10, 0)
	d := Draft{Start: start, End: start.Add(40 * time.Minute)}

	moved := WithStart(d, at(3, 14, 0))

	if !moved.Start.Equal(at(3, 14, 0)) {
		t.Fatalf("start = %v", moved.Start)
	}
	if moved.Duration() != 40*time.Minute {
		t.Fatalf("duration = %v, want 40m", moved.Duration())
	}
}

func TestPinAndUnpinAllDay(t *testing.T) {
	hours := DefaultBusinessHours()
	d := Draft{Start: at(2, 10, 0), End: at(2, 11, 0)}

	pinned, prev := PinAllDay(d, hours)
	if !pinned.Start.Equal(at(2, 8, 0)) || !pinned.End.Equal(at(2, 21, 0)) {
		t.Fatalf("pinned range = %v..%v", pinned.Start, pinned.End)
	}

	// Toggling off on the same date restores the exact prior range.
	restored := UnpinAllDay(pinned, prev)
	if !restored.Start.Equal(d.Start) || !restored.End.Equal(d.End) {
		t.Fatalf("restored range = %v..%v", restored.Start, restored.End)
	}

	// After moving to another date the saved range is stale and is kept pinned.
	moved := WithStart(pinned, at(3, 8, 0))
	kept := UnpinAllDay(moved, prev)
	if !kept.Start.Equal(moved.Start) || !kept.End.Equal(moved.End) {
		t.Fatalf("stale restore applied: %v..%v", kept.Start, kept.End)
	}
}
