package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/smilemore/clinic-scheduler/internal/audit"
	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	clinics    map[uuid.UUID]*models.Clinic
	patients   map[uuid.UUID]*models.Patient
	procedures map[uuid.UUID]*models.Procedure
	templates  map[uuid.UUID]*models.AppointmentTemplate

	appointments map[uuid.UUID]*models.Appointment
	booked       []domain.BookedRange

	createErr        error
	created          *models.Appointment
	ownerTransferred bool
	deleted          *uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinics:      map[uuid.UUID]*models.Clinic{},
		patients:     map[uuid.UUID]*models.Patient{},
		procedures:   map[uuid.UUID]*models.Procedure{},
		templates:    map[uuid.UUID]*models.AppointmentTemplate{},
		appointments: map[uuid.UUID]*models.Appointment{},
	}
}

var errNotFound = httperr.ErrBusiness("not_found")

func (f *fakeRepo) GetClinic(_ context.Context, id uuid.UUID) (*models.Clinic, error) {
	if c, ok := f.clinics[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetProcedure(_ context.Context, id uuid.UUID) (*models.Procedure, error) {
	if p, ok := f.procedures[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetTemplate(_ context.Context, id uuid.UUID) (*models.AppointmentTemplate, error) {
	if t, ok := f.templates[id]; ok {
		return t, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetPatient(_ context.Context, id uuid.UUID) (*models.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	ap.ID = uuid.New()
	f.created = ap
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) BookWithOwnerTransfer(ctx context.Context, ap *models.Appointment, ownerID uuid.UUID) error {
	if err := f.CreateAppointment(ctx, ap); err != nil {
		return err
	}
	if ap.PatientID != nil {
		f.patients[*ap.PatientID].OwnerID = &ownerID
	}
	f.ownerTransferred = true
	return nil
}

func (f *fakeRepo) ListBookedRanges(_ context.Context, _, _ time.Time) ([]domain.BookedRange, error) {
	return f.booked, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		return ap, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	delete(f.appointments, id)
	f.deleted = &id
	return nil
}

func (f *fakeRepo) ListCalendarRows(_ context.Context, _, _ time.Time) ([]domain.CalendarRow, error) {
	return nil, nil
}

func (f *fakeRepo) ListPatientAppointments(_ context.Context, _ uuid.UUID) ([]models.Appointment, error) {
	return nil, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

// 2026-03-02 is a Monday inside business hours.
func ts(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func newBookUC(repo *fakeRepo) *BookAppointment {
	uc := NewBookAppointment(
		repo,
		audit.NewDispatcher(audit.New(nil)),
		domain.DefaultBusinessHours(),
		time.UTC,
	)
	uc.now = fixedNow
	return uc
}

type fixture struct {
	repo      *fakeRepo
	clinicID  uuid.UUID
	patientID uuid.UUID
	procID    uuid.UUID
}

func newFixture() fixture {
	repo := newFakeRepo()

	clinicID := uuid.New()
	repo.clinics[clinicID] = &models.Clinic{ID: clinicID, Name: "Smile More Clinic"}

	patientID := uuid.New()
	repo.patients[patientID] = &models.Patient{ID: patientID, FirstName: "Anna", LastName: "Ivanova"}

	procID := uuid.New()
	duration := 45
	cost := decimal.NewFromInt(300)
	repo.procedures[procID] = &models.Procedure{
		ID:                 procID,
		Name:               "Cleaning",
		DefaultDurationMin: &duration,
		DefaultCost:        &cost,
	}

	return fixture{repo: repo, clinicID: clinicID, patientID: patientID, procID: procID}
}

func wantBusinessCode(t *testing.T, err error, want string) {
	t.Helper()
	code, ok := httperr.BusinessCode(err)
	if !ok {
		t.Fatalf("expected business error %q, got %v", want, err)
	}
	if code != want {
		t.Fatalf("expected code %q, got %q", want, code)
	}
}

// ======================================================
// TESTS
// ======================================================

func TestBookResolvesProcedureDefaults(t *testing.T) {
	fx := newFixture()
	uc := newBookUC(fx.repo)

	ap, err := uc.Execute(context.Background(), BookInput{
		Actor:       domain.Viewer{UserID: uuid.New(), Role: models.RoleAdmin},
		ClinicID:    fx.clinicID,
		PatientID:   &fx.patientID,
		ProcedureID: &fx.procID,
		Start:       ts(10, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ap.EndTS.Equal(ts(10, 45)) {
		t.Fatalf("end = %v, want start + 45m", ap.EndTS)
	}
	if ap.Cost == nil || !ap.Cost.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("cost = %v, want procedure default 300", ap.Cost)
	}
	if ap.Status != string(domain.StatusScheduled) {
		t.Fatalf("status = %q", ap.Status)
	}
}

func TestBookExplicitDurationBeatsDefaults(t *testing.T) {
	fx := newFixture()
	uc := newBookUC(fx.repo)

	duration := 20
	explicit := decimal.NewFromInt(150)

	ap, err := uc.Execute(context.Background(), BookInput{
		Actor:       domain.Viewer{UserID: uuid.New(), Role: models.RoleAdmin},
		ClinicID:    fx.clinicID,
		PatientID:   &fx.patientID,
		ProcedureID: &fx.procID,
		Start:       ts(10, 0),
		DurationMin: &duration,
		Cost:        &explicit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ap.EndTS.Equal(ts(10, 20)) {
		t.Fatalf("explicit duration lost: end = %v", ap.EndTS)
	}
	if !ap.Cost.Equal(explicit) {
		t.Fatalf("explicit cost lost: %v", ap.Cost)
	}
}

func TestBookTemplateDurationWins(t *testing.T) {
	fx := newFixture()

	tmplID := uuid.New()
	tmplCost := decimal.NewFromInt(500)
	fx.repo.templates[tmplID] = &models.AppointmentTemplate{
		ID:          tmplID,
		Name:        "Implant consult",
		DurationMin: 90,
		ProcedureID: &fx.procID,
		Procedure:   fx.repo.procedures[fx.procID],
		DefaultCost: &tmplCost,
	}

	uc := newBookUC(fx.repo)

	ap, err := uc.Execute(context.Background(), BookInput{
		Actor:      domain.Viewer{UserID: uuid.New(), Role: models.RoleAdmin},
		ClinicID:   fx.clinicID,
		PatientID:  &fx.patientID,
		TemplateID: &tmplID,
		Start:      ts(10, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ap.EndTS.Equal(ts(11, 30)) {
		t.Fatalf("template duration lost: end = %v", ap.EndTS)
	}
	if ap.Cost == nil || !ap.Cost.Equal(tmplCost) {
		t.Fatalf("template cost lost: %v", ap.Cost)
	}
	if ap.ProcedureID == nil || *ap.ProcedureID != fx.procID {
		t.Fatal("template's linked procedure not propagated")
	}
}

func TestBookStaffPinnedToOwnClinic(t *testing.T) {
	fx := newFixture()

	otherClinic := uuid.New()
	fx.repo.clinics[otherClinic] = &models.Clinic{ID: otherClinic, Name: "Branch"}

	uc := newBookUC(fx.repo)

	ap, err := uc.Execute(context.Background(), BookInput{
		Actor:       domain.Viewer{UserID: uuid.New(), Role: models.RoleClinicStaff, ClinicID: &fx.clinicID},
		ClinicID:    otherClinic,
		PatientID:   &fx.patientID,
		ProcedureID: &fx.procID,
		Start:       ts(10, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.ClinicID != fx.clinicID {
		t.Fatalf("staff booked into %v, must be pinned to %v", ap.ClinicID, fx.clinicID)
	}
}

func TestBookGuestForbidden(t *testing.T) {
	fx := newFixture()
	uc := newBookUC(fx.repo)

	_, err := uc.Execute(context.Background(), BookInput{
		Actor:       domain.Viewer{UserID: uuid.New(), Role: models.RoleGuest},
		ClinicID:    fx.clinicID,
		PatientID:   &fx.patientID,
		ProcedureID: &fx.procID,
		Start:       ts(10, 0),
	})
	wantBusinessCode(t, err, "forbidden")
}

func TestBookBlockTimeAdminOnly(t *testing.T) {
	fx := newFixture()
	uc := newBookUC(fx.repo)

	_, err := uc.Execute(context.Background(), BookInput{
		Actor:    domain.Viewer{UserID: uuid.New(), Role: models.RoleClinicStaff, ClinicID: &fx.clinicID},
		ClinicID: fx.clinicID,
		Start:    ts(10, 0),
		End:      ts(11, 0),
		Blocked:  true,
	})
	wantBusinessCode(t, err, "block_time_admin_only")
}

func TestBookBlockedStripsPatientAndCost(t *testing.T) {
	fx := newFixture()
	uc := newBookUC(fx.repo)

	cost := decimal.NewFromInt(100)
	ap, err := uc.Execute(context.Background(), BookInput{
		Actor:             domain.Viewer{UserID: uuid.New(), Role: models.RoleAdmin},
		ClinicID:          fx.clinicID,
		PatientID:         &fx.patientID,
		ProcedureID:       &fx.procID,
		Start:             ts(10, 0),
		End:               ts(11, 0),
		Cost:              &cost,
		SendNotifications: true,
		Blocked:           true,
		AllDay:            true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.PatientID != nil || ap.ProcedureID != nil || ap.Cost != nil {
		t.Fatalf("block time must carry no patient, procedure or cost: %+v", ap)
	}
	if ap.SendNotifications {
		t.Fatal("block time must never notify")
	}
	if ap.Status != string(domain.StatusBlocked) {
		t.Fatalf("status = %q", ap.Status)
	}
	if !ap.StartTS.Equal(ts(8, 0)) || !ap.EndTS.Equal(ts(21, 0)) {
		t.Fatalf("all-day block not pinned to business day: %v..%v", ap.StartTS, ap.EndTS)
	}
}

func TestBookRequiresPatientAndProcedure(t *testing.T) {
	fx := newFixture()
	uc := newBookUC(fx.repo)

	actor := domain.Viewer{UserID: uuid.New(), Role: models.RoleAdmin}

	_, err := uc.Execute(context.Background(), BookInput{
		Actor:       actor,
		ClinicID:    fx.clinicID,
		ProcedureID: &fx.procID,
		Start:       ts(10, 0),
	})
	wantBusinessCode(t, err, "patient_required")

	_, err = uc.Execute(context.Background(), BookInput{
		Actor:     actor,
		ClinicID:  fx.clinicID,
		PatientID: &fx.patientID,
		Start:     ts(10, 0),
		End:       ts(11, 0),
	})
	wantBusinessCode(t, err, "procedure_required")
}

func TestBookRejectsOverlapAcrossClinics(t *testing.T) {
	fx := newFixture()
	fx.repo.booked = []domain.BookedRange{
		{ID: uuid.New(), Start: ts(10, 0), End: ts(11, 0), Status: domain.StatusScheduled},
	}

	uc := newBookUC(fx.repo)

	_, err := uc.Execute(context.Background(), BookInput{
		Actor:       domain.Viewer{UserID: uuid.New(), Role: models.RoleAdmin},
		ClinicID:    fx.clinicID,
		PatientID:   &fx.patientID,
		ProcedureID: &fx.procID,
		Start:       ts(10, 30),
		End:         ts(11, 30),
	})
	wantBusinessCode(t, err, "time_conflict")
}

func TestBookMapsConstraintViolation(t *testing.T) {
	fx := newFixture()
	fx.repo.createErr = &pgconn.PgError{Code: "23P01"}

	uc := newBookUC(fx.repo)

	_, err := uc.Execute(context.Background(), BookInput{
		Actor:       domain.Viewer{UserID: uuid.New(), Role: models.RoleAdmin},
		ClinicID:    fx.clinicID,
		PatientID:   &fx.patientID,
		ProcedureID: &fx.procID,
		Start:       ts(10, 0),
	})
	wantBusinessCode(t, err, "timeslot_is_already_booked")
}

func TestBookTransfersOwnerInSameCall(t *testing.T) {
	fx := newFixture()
	uc := newBookUC(fx.repo)

	adminID := uuid.New()

	_, err := uc.Execute(context.Background(), BookInput{
		Actor:         domain.Viewer{UserID: adminID, Role: models.RoleAdmin},
		ClinicID:      fx.clinicID,
		PatientID:     &fx.patientID,
		ProcedureID:   &fx.procID,
		Start:         ts(10, 0),
		TransferOwner: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !fx.repo.ownerTransferred {
		t.Fatal("owner transfer did not go through the transactional path")
	}
	owner := fx.repo.patients[fx.patientID].OwnerID
	if owner == nil || *owner != adminID {
		t.Fatalf("patient owner = %v, want acting admin", owner)
	}
}
