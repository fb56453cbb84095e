package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smilemore/clinic-scheduler/internal/audit"
	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

// RestoreAppointment is the canceled half of the scheduled ⇄ canceled
// toggle: it puts a canceled appointment back on the calendar, subject
// to the slot being free again.
type RestoreAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	hours domain.BusinessHours
	loc   *time.Location
	now   func() time.Time
}

func NewRestoreAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	hours domain.BusinessHours,
	loc *time.Location,
) *RestoreAppointment {
	return &RestoreAppointment{
		repo:  repo,
		audit: audit,
		hours: hours,
		loc:   loc,
		now:   time.Now,
	}
}

func (uc *RestoreAppointment) Execute(
	ctx context.Context,
	actor domain.Viewer,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := authorizeMutation(actor, ap); err != nil {
		return nil, err
	}

	if err := domain.CanRestore(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	start := ap.StartTS.In(uc.loc)
	end := ap.EndTS.In(uc.loc)

	existing, err := uc.repo.ListBookedRanges(ctx, start, end)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(uc.loc)
	if err := domain.ValidateSlot(start, end, existing, now, uc.hours); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusScheduled)
	ap.CanceledAt = nil
	ap.CanceledBy = nil
	ap.UpdatedBy = &actor.UserID

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		if httperr.IsBookingConflict(err) {
			return nil, httperr.ErrBusiness("timeslot_is_already_booked")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_restored",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
