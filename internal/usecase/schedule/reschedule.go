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

type UpdateInput struct {
	Actor domain.Viewer

	AppointmentID uuid.UUID

	PatientID   *uuid.UUID
	ProcedureID *uuid.UUID

	Start time.Time
	End   time.Time

	DurationMin *int

	Cost        *decimal.Decimal
	ShortLabel  *string
	ToothNum    *string
	Description *string

	SendNotifications *bool

	AllDay bool
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	hours domain.BusinessHours
	loc   *time.Location
	now   func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	hours domain.BusinessHours,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		hours: hours,
		loc:   loc,
		now:   time.Now,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := authorizeMutation(in.Actor, ap); err != nil {
		return nil, err
	}

	if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	draft := domain.Draft{
		Start: ap.StartTS.In(uc.loc),
		End:   ap.EndTS.In(uc.loc),
		Cost:  ap.Cost,
	}

	// Moving the start keeps the previously computed duration.
	if !in.Start.IsZero() {
		draft = domain.WithStart(draft, in.Start.In(uc.loc))
	}
	if !in.End.IsZero() {
		draft.End = in.End.In(uc.loc)
	}
	if in.DurationMin != nil {
		draft = domain.WithDuration(draft, *in.DurationMin)
	}

	blocked := domain.Status(ap.Status) == domain.StatusBlocked

	if in.ProcedureID != nil && !blocked {
		proc, err := uc.repo.GetProcedure(ctx, *in.ProcedureID)
		if err != nil {
			return nil, httperr.ErrBusiness("procedure_not_found")
		}
		draft = domain.ApplyProcedure(draft, proc)
		ap.ProcedureID = in.ProcedureID
	}

	if in.Cost != nil {
		draft.Cost = in.Cost
	}

	if blocked && in.AllDay {
		draft, _ = domain.PinAllDay(draft, uc.hours)
	}

	if in.PatientID != nil && !blocked {
		if _, err := uc.repo.GetPatient(ctx, *in.PatientID); err != nil {
			return nil, httperr.ErrBusiness("patient_not_found")
		}
		ap.PatientID = in.PatientID
	}

	rangeChanged := !draft.Start.Equal(ap.StartTS) || !draft.End.Equal(ap.EndTS)
	if rangeChanged {
		existing, err := uc.repo.ListBookedRanges(ctx, draft.Start, draft.End)
		if err != nil {
			return nil, err
		}

		// The appointment being moved must not conflict with itself.
		others := existing[:0]
		for _, b := range existing {
			if b.ID != ap.ID {
				others = append(others, b)
			}
		}

		now := uc.now().In(uc.loc)
		if err := domain.ValidateSlot(draft.Start, draft.End, others, now, uc.hours); err != nil {
			return nil, err
		}
	}

	ap.StartTS = draft.Start
	ap.EndTS = draft.End
	ap.Cost = draft.Cost

	if in.ShortLabel != nil {
		ap.ShortLabel = *in.ShortLabel
	}
	if in.ToothNum != nil {
		ap.ToothNum = *in.ToothNum
	}
	if in.Description != nil {
		ap.Description = *in.Description
	}
	if in.SendNotifications != nil && !blocked {
		ap.SendNotifications = *in.SendNotifications
	}

	ap.UpdatedBy = &in.Actor.UserID

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		if httperr.IsBookingConflict(err) {
			return nil, httperr.ErrBusiness("timeslot_is_already_booked")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// authorizeMutation: admins touch everything, staff only their own
// clinic's non-blocked appointments.
func authorizeMutation(actor domain.Viewer, ap *models.Appointment) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleClinicStaff:
		if domain.Status(ap.Status) == domain.StatusBlocked {
			return httperr.ErrBusiness("block_time_admin_only")
		}
		if actor.ClinicID == nil || ap.ClinicID != *actor.ClinicID {
			return httperr.ErrBusiness("forbidden")
		}
		return nil
	default:
		return httperr.ErrBusiness("forbidden")
	}
}
