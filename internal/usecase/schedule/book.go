package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smilemore/clinic-scheduler/internal/audit"
	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	Actor domain.Viewer

	ClinicID    uuid.UUID
	PatientID   *uuid.UUID
	ProcedureID *uuid.UUID
	TemplateID  *uuid.UUID

	Start time.Time
	End   time.Time

	// DurationMin mirrors the duration-select control: when set, the end
	// time is always start + duration.
	DurationMin *int

	Cost        *decimal.Decimal
	ShortLabel  string
	ToothNum    string
	Description string

	SendNotifications bool

	// Block-time mode (admin only).
	Blocked bool
	AllDay  bool

	// TransferOwner moves the patient into the acting admin's private
	// partition as part of the same transaction as the booking.
	TransferOwner bool
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	hours domain.BusinessHours
	loc   *time.Location
	now   func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	hours domain.BusinessHours,
	loc *time.Location,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
		hours: hours,
		loc:   loc,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	clinicID, err := resolveClinic(in.Actor, in.ClinicID, in.Blocked)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetClinic(ctx, clinicID); err != nil {
		return nil, httperr.ErrBusiness("clinic_not_found")
	}

	draft := domain.Draft{
		Start: in.Start.In(uc.loc),
		End:   in.End.In(uc.loc),
		Cost:  in.Cost,
	}

	procedureID := in.ProcedureID

	// Template path (legacy shortcut): propagates duration, cost and the
	// linked procedure.
	if in.TemplateID != nil {
		tmpl, err := uc.repo.GetTemplate(ctx, *in.TemplateID)
		if err != nil {
			return nil, httperr.ErrBusiness("template_not_found")
		}
		draft = domain.ApplyTemplate(draft, tmpl, tmpl.Procedure)
		if procedureID == nil {
			procedureID = tmpl.ProcedureID
		}
	}

	if procedureID != nil {
		proc, err := uc.repo.GetProcedure(ctx, *procedureID)
		if err != nil {
			return nil, httperr.ErrBusiness("procedure_not_found")
		}

		// Defaults fill only what the caller left unset.
		if draft.End.IsZero() && in.DurationMin == nil && proc.DefaultDurationMin != nil {
			draft = domain.WithDuration(draft, *proc.DefaultDurationMin)
		}
		if draft.Cost == nil && proc.DefaultCost != nil {
			cost := *proc.DefaultCost
			draft.Cost = &cost
		}
	}

	if in.DurationMin != nil {
		draft = domain.WithDuration(draft, *in.DurationMin)
	}

	patientID := in.PatientID
	status := domain.InitialStatus()
	sendNotifications := in.SendNotifications

	if in.Blocked {
		if in.AllDay {
			draft, _ = domain.PinAllDay(draft, uc.hours)
		}
		// Block time carries no patient, procedure or cost, and never
		// notifies.
		patientID = nil
		procedureID = nil
		draft.Cost = nil
		status = domain.StatusBlocked
		sendNotifications = false
	} else {
		if patientID == nil {
			return nil, httperr.ErrBusiness("patient_required")
		}
		if procedureID == nil {
			return nil, httperr.ErrBusiness("procedure_required")
		}
		if _, err := uc.repo.GetPatient(ctx, *patientID); err != nil {
			return nil, httperr.ErrBusiness("patient_not_found")
		}
	}

	existing, err := uc.repo.ListBookedRanges(ctx, draft.Start, draft.End)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(uc.loc)
	if err := domain.ValidateSlot(draft.Start, draft.End, existing, now, uc.hours); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClinicID:          clinicID,
		PatientID:         patientID,
		ProcedureID:       procedureID,
		StartTS:           draft.Start,
		EndTS:             draft.End,
		Status:            string(status),
		ShortLabel:        in.ShortLabel,
		Cost:              draft.Cost,
		ToothNum:          in.ToothNum,
		Description:       in.Description,
		SendNotifications: sendNotifications,
		CreatedBy:         in.Actor.UserID,
	}

	if in.TransferOwner && patientID != nil && in.Actor.Role == models.RoleAdmin {
		err = uc.repo.BookWithOwnerTransfer(ctx, ap, in.Actor.UserID)
	} else {
		err = uc.repo.CreateAppointment(ctx, ap)
	}

	if err != nil {
		if httperr.IsBookingConflict(err) {
			uc.audit.Dispatch(audit.Event{
				UserID: &in.Actor.UserID,
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"clinic_id": clinicID,
					"start":     draft.Start,
					"end":       draft.End,
				},
			})
			return nil, httperr.ErrBusiness("timeslot_is_already_booked")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.UserID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// resolveClinic pins staff to their own clinic and keeps block mode
// admin-only.
func resolveClinic(actor domain.Viewer, requested uuid.UUID, blocked bool) (uuid.UUID, error) {
	if blocked && actor.Role != models.RoleAdmin {
		return uuid.Nil, httperr.ErrBusiness("block_time_admin_only")
	}

	switch actor.Role {
	case models.RoleAdmin:
		return requested, nil
	case models.RoleClinicStaff:
		if actor.ClinicID == nil {
			return uuid.Nil, httperr.ErrBusiness("no_clinic_assigned")
		}
		return *actor.ClinicID, nil
	default:
		return uuid.Nil, httperr.ErrBusiness("forbidden")
	}
}
