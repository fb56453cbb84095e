package schedule

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		check   func(Status) error
		status  Status
		allowed bool
	}{
		{"cancel scheduled", CanCancel, StatusScheduled, true},
		{"cancel completed", CanCancel, StatusCompleted, false},
		{"cancel canceled", CanCancel, StatusCanceled, false},
		{"cancel blocked", CanCancel, StatusBlocked, false},

		{"complete scheduled", CanComplete, StatusScheduled, true},
		{"complete canceled", CanComplete, StatusCanceled, false},
		{"complete blocked", CanComplete, StatusBlocked, false},

		{"restore canceled", CanRestore, StatusCanceled, true},
		{"restore scheduled", CanRestore, StatusScheduled, false},
		{"restore completed", CanRestore, StatusCompleted, false},

		{"edit scheduled", CanEdit, StatusScheduled, true},
		{"edit blocked", CanEdit, StatusBlocked, true},
		{"edit canceled", CanEdit, StatusCanceled, true},
		{"edit completed", CanEdit, StatusCompleted, false},

		{"delete scheduled", CanDelete, StatusScheduled, true},
		{"delete completed", CanDelete, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.status)
			if tt.allowed && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if !tt.allowed && err == nil {
				t.Fatal("expected rejection")
			}
		})
	}
}
