package schedule

import "github.com/smilemore/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"

	// Blocked is a parallel status: it is set only by creating or editing
	// in block mode, never through the scheduled/completed/canceled
	// controls.
	StatusBlocked Status = "blocked"
)

// ===============================
// Transitions
// ===============================

// CanCancel: only a scheduled appointment may be canceled.
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: only a scheduled appointment may be completed.
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanRestore: a canceled appointment may be toggled back to scheduled.
func CanRestore(current Status) error {
	if current != StatusCanceled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanEdit: completed is terminal, every other status stays editable.
func CanEdit(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusiness("appointment_completed")
	}
	return nil
}

// CanDelete mirrors CanEdit: the delete action is disabled once completed.
func CanDelete(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusiness("appointment_completed")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
