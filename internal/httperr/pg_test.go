package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsBookingConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"exclusion violation", &pgconn.PgError{Code: "23P01"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped exclusion violation", fmt.Errorf("create: %w", &pgconn.PgError{Code: "23P01"}), true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBookingConflict(tt.err); got != tt.want {
				t.Fatalf("IsBookingConflict = %v, want %v", got, tt.want)
			}
		})
	}
}
