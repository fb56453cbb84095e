package schedule

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/dto"
	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

// GetPatientHistory lists a patient's visits, newest first, respecting
// the owner privacy partition.
type GetPatientHistory struct {
	repo domain.Repository
}

func NewGetPatientHistory(repo domain.Repository) *GetPatientHistory {
	return &GetPatientHistory{repo: repo}
}

func (uc *GetPatientHistory) Execute(
	ctx context.Context,
	actor domain.Viewer,
	patientID uuid.UUID,
) ([]dto.PatientHistoryDTO, error) {

	patient, err := uc.repo.GetPatient(ctx, patientID)
	if err != nil {
		return nil, httperr.ErrBusiness("patient_not_found")
	}

	if patient.OwnerID != nil {
		if actor.Role != models.RoleAdmin || *patient.OwnerID != actor.UserID {
			return nil, httperr.ErrBusiness("forbidden")
		}
	}

	appointments, err := uc.repo.ListPatientAppointments(ctx, patientID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PatientHistoryDTO, 0, len(appointments))
	for _, ap := range appointments {
		entry := dto.PatientHistoryDTO{
			ID:          ap.ID,
			StartTS:     ap.StartTS,
			Status:      ap.Status,
			ToothNum:    ap.ToothNum,
			Cost:        ap.Cost,
			Description: ap.Description,
		}
		if ap.Procedure != nil {
			entry.ProcedureName = ap.Procedure.Name
		}
		out = append(out, entry)
	}

	return out, nil
}
