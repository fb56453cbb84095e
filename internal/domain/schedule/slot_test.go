package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/smilemore/clinic-scheduler/internal/httperr"
)

// 2026-03-01 is a Sunday, an open day; 2026-03-07 is Saturday, closed.
func at(day int, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, time.UTC)
}

func TestValidateSlot(t *testing.T) {
	now := at(1, 10, 0)
	hours := DefaultBusinessHours()

	booked := []BookedRange{
		{ID: uuid.New(), Start: at(2, 10, 0), End: at(2, 11, 0), Status: StatusScheduled},
		{ID: uuid.New(), Start: at(2, 12, 0), End: at(2, 13, 0), Status: StatusCanceled},
		{ID: uuid.New(), Start: at(3, 9, 0), End: at(3, 17, 0), Status: StatusBlocked},
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantCode string
	}{
		{
			name:  "free slot",
			start: at(2, 14, 0),
			end:   at(2, 15, 0),
		},
		{
			name:     "end before start",
			start:    at(2, 15, 0),
			end:      at(2, 14, 0),
			wantCode: "invalid_range",
		},
		{
			name:     "zero length",
			start:    at(2, 14, 0),
			end:      at(2, 14, 0),
			wantCode: "invalid_range",
		},
		{
			name:     "past date",
			start:    at(1, 9, 0).AddDate(0, 0, -2),
			end:      at(1, 10, 0).AddDate(0, 0, -2),
			wantCode: "past_date",
		},
		{
			name:  "earlier today is allowed",
			start: at(1, 8, 0),
			end:   at(1, 9, 0),
		},
		{
			name:     "before opening",
			start:    at(2, 7, 0),
			end:      at(2, 8, 30),
			wantCode: "outside_business_hours",
		},
		{
			name:     "past closing",
			start:    at(2, 20, 30),
			end:      at(2, 21, 30),
			wantCode: "outside_business_hours",
		},
		{
			name:     "saturday",
			start:    at(7, 10, 0),
			end:      at(7, 11, 0),
			wantCode: "outside_business_hours",
		},
		{
			name:     "overlaps scheduled booking",
			start:    at(2, 10, 30),
			end:      at(2, 11, 30),
			wantCode: "time_conflict",
		},
		{
			name:     "overlaps blocked time",
			start:    at(3, 10, 0),
			end:      at(3, 11, 0),
			wantCode: "time_conflict",
		},
		{
			name:  "canceled booking does not conflict",
			start: at(2, 12, 0),
			end:   at(2, 13, 0),
		},
		{
			name:  "touching ranges do not conflict",
			start: at(2, 11, 0),
			end:   at(2, 12, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlot(tt.start, tt.end, booked, now, hours)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected valid slot, got %v", err)
				}
				return
			}

			code, ok := httperr.BusinessCode(err)
			if !ok {
				t.Fatalf("expected business error %q, got %v", tt.wantCode, err)
			}
			if code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, code)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart int
		aEnd   int
		bStart int
		bEnd   int
		want   bool
	}{
		{"identical", 10, 11, 10, 11, true},
		{"contained", 10, 12, 10, 11, true},
		{"partial", 10, 11, 10, 12, true},
		{"touching end to start", 10, 11, 11, 12, false},
		{"touching start to end", 11, 12, 10, 11, false},
		{"disjoint", 8, 9, 10, 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(2, tt.aStart, 0), at(2, tt.aEnd, 0), at(2, tt.bStart, 0), at(2, tt.bEnd, 0))
			if got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}
