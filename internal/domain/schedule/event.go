package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Block-time styling and the anonymized busy label are fixed, not
// clinic-configurable.
const (
	BusyTitle = "Busy"

	BlockFillColor   = "#9E9E9E"
	BlockBorderColor = "#616161"
	BusyFillColor    = "#BDBDBD"
)

// CalendarRow is the flattened projection returned by the calendar
// query: one appointment joined with the patient name, the clinic color
// and the procedure color.
type CalendarRow struct {
	ID          uuid.UUID  `json:"id"`
	ClinicID    uuid.UUID  `json:"clinic_id"`
	PatientID   *uuid.UUID `json:"patient_id"`
	ProcedureID *uuid.UUID `json:"procedure_id"`

	StartTS time.Time `json:"start_ts"`
	EndTS   time.Time `json:"end_ts"`
	Status  Status    `json:"status"`

	ShortLabel     string     `json:"short_label"`
	PatientName    string     `json:"patient_name"`
	PatientOwnerID *uuid.UUID `json:"patient_owner_id"`

	ClinicColor    string `json:"clinic_color"`
	ProcedureColor string `json:"procedure_color"`
}

// Viewer identifies who the calendar is rendered for.
type Viewer struct {
	UserID   uuid.UUID
	Role     string
	ClinicID *uuid.UUID
}

// Event is a calendar-displayable appointment.
type Event struct {
	ID    uuid.UUID `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Title       string `json:"title"`
	Color       string `json:"color"`
	BorderColor string `json:"border_color"`

	Status Status `json:"status"`

	// Editable is false for anonymized cross-clinic blocks; Completed
	// drives the distinct text treatment.
	Editable  bool `json:"editable"`
	Completed bool `json:"completed"`
}

const (
	roleAdmin       = "admin"
	roleClinicStaff = "clinic_staff"
)

// Project maps stored rows to displayable events, applying the per-role
// display rules. Rule order matters: the cross-clinic privacy rule must
// pre-empt block and regular styling.
func Project(rows []CalendarRow, viewer Viewer) []Event {
	events := make([]Event, 0, len(rows))

	for _, row := range rows {
		ev := Event{
			ID:     row.ID,
			Start:  row.StartTS,
			End:    row.EndTS,
			Status: row.Status,
		}

		switch {
		case viewer.Role == roleClinicStaff && (viewer.ClinicID == nil || row.ClinicID != *viewer.ClinicID):
			// Another clinic's booking: generic busy block, nothing leaks.
			ev.Title = BusyTitle
			ev.Color = BusyFillColor
			ev.BorderColor = BusyFillColor
			ev.Editable = false

		case row.Status == StatusBlocked:
			ev.Title = row.ShortLabel
			if ev.Title == "" {
				ev.Title = "Blocked"
			}
			ev.Color = BlockFillColor
			ev.BorderColor = BlockBorderColor
			ev.Editable = viewer.Role == roleAdmin

		default:
			ev.Title = row.ShortLabel
			ev.Color = row.ClinicColor
			ev.BorderColor = row.ProcedureColor
			ev.Editable = true
			ev.Completed = row.Status == StatusCompleted

			// An owned patient is shown in full only to the owning admin.
			if row.PatientOwnerID != nil && *row.PatientOwnerID != viewer.UserID {
				ev.Title = BusyTitle
			}
		}

		events = append(events, ev)
	}

	return events
}
