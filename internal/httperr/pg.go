package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres enforces the authoritative per-clinic booking constraint
// (exclusion on clinic_id + time range). 23P01 is exclusion_violation,
// 23505 unique_violation.
func IsBookingConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
