package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smilemore/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetClinic(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Clinic, error)

	GetProcedure(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Procedure, error)

	GetTemplate(
		ctx context.Context,
		id uuid.UUID,
	) (*models.AppointmentTemplate, error)

	GetPatient(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// BookWithOwnerTransfer persists the appointment and reassigns the
	// patient's owner in one transaction, so a failed booking never
	// leaves ownership changed.
	BookWithOwnerTransfer(
		ctx context.Context,
		ap *models.Appointment,
		ownerID uuid.UUID,
	) error

	// ListBookedRanges returns the non-canceled appointments overlapping
	// [start, end), across clinics, for advisory slot validation.
	ListBookedRanges(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]BookedRange, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Calendar --------
	ListCalendarRows(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]CalendarRow, error)

	ListPatientAppointments(
		ctx context.Context,
		patientID uuid.UUID,
	) ([]models.Appointment, error)
}
