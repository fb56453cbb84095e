package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *ScheduleGormRepository) GetClinic(
	ctx context.Context,
	id uuid.UUID,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *ScheduleGormRepository) GetProcedure(
	ctx context.Context,
	id uuid.UUID,
) (*models.Procedure, error) {

	var proc models.Procedure
	if err := r.db.WithContext(ctx).First(&proc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proc, nil
}

func (r *ScheduleGormRepository) GetTemplate(
	ctx context.Context,
	id uuid.UUID,
) (*models.AppointmentTemplate, error) {

	var tmpl models.AppointmentTemplate
	if err := r.db.WithContext(ctx).
		Preload("Procedure").
		First(&tmpl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *ScheduleGormRepository) GetPatient(
	ctx context.Context,
	id uuid.UUID,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) BookWithOwnerTransfer(
	ctx context.Context,
	ap *models.Appointment,
	ownerID uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Patient{}).
			Where("id = ?", ap.PatientID).
			Update("owner_id", ownerID).Error; err != nil {
			return err
		}
		return tx.Create(ap).Error
	})
}

func (r *ScheduleGormRepository) ListBookedRanges(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]domain.BookedRange, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_ts", "end_ts", "status").
		Where(
			"status <> ? AND start_ts < ? AND end_ts > ?",
			string(domain.StatusCanceled), end, start,
		).
		Order("start_ts ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	out := make([]domain.BookedRange, 0, len(aps))
	for _, ap := range aps {
		out = append(out, domain.BookedRange{
			ID:     ap.ID,
			Start:  ap.StartTS,
			End:    ap.EndTS,
			Status: domain.Status(ap.Status),
		})
	}
	return out, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Procedure").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Appointment{}, "id = ?", id).Error
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

// ListCalendarRows is the flattened, joined projection the original
// system exposed as get_calendar_appointments(start_date, end_date).
func (r *ScheduleGormRepository) ListCalendarRows(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]domain.CalendarRow, error) {

	var rows []domain.CalendarRow
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select(`appointments.id,
			appointments.clinic_id,
			appointments.patient_id,
			appointments.procedure_id,
			appointments.start_ts,
			appointments.end_ts,
			appointments.status,
			appointments.short_label,
			COALESCE(patients.first_name || ' ' || patients.last_name, '') AS patient_name,
			patients.owner_id AS patient_owner_id,
			clinics.color_hex AS clinic_color,
			COALESCE(procedures_catalog.color_hex, '') AS procedure_color`).
		Joins("JOIN clinics ON clinics.id = appointments.clinic_id").
		Joins("LEFT JOIN patients ON patients.id = appointments.patient_id").
		Joins("LEFT JOIN procedures_catalog ON procedures_catalog.id = appointments.procedure_id").
		Where(
			"appointments.status <> ? AND appointments.start_ts < ? AND appointments.end_ts > ?",
			string(domain.StatusCanceled), end, start,
		).
		Order("appointments.start_ts ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleGormRepository) ListPatientAppointments(
	ctx context.Context,
	patientID uuid.UUID,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Procedure").
		Where("patient_id = ?", patientID).
		Order("start_ts DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
