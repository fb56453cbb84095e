package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smilemore/clinic-scheduler/internal/cache"
	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/httpresp"
	"github.com/smilemore/clinic-scheduler/internal/models"
	"github.com/smilemore/clinic-scheduler/internal/sse"
	"github.com/smilemore/clinic-scheduler/internal/usecase/schedule"
)

// AppointmentHandler glues the scheduling use cases to HTTP: every
// mutation bumps the calendar cache version and broadcasts a refresh
// signal to connected calendars.
type AppointmentHandler struct {
	book     *schedule.BookAppointment
	update   *schedule.UpdateAppointment
	cancel   *schedule.CancelAppointment
	complete *schedule.CompleteAppointment
	restore  *schedule.RestoreAppointment
	remove   *schedule.DeleteAppointment
	calendar *schedule.GetCalendar
	validate *schedule.ValidateSlot
	history  *schedule.GetPatientHistory

	cache       *cache.CalendarCache
	broadcaster *sse.Broadcaster
	loc         *time.Location
}

func NewAppointmentHandler(
	book *schedule.BookAppointment,
	update *schedule.UpdateAppointment,
	cancel *schedule.CancelAppointment,
	complete *schedule.CompleteAppointment,
	restore *schedule.RestoreAppointment,
	remove *schedule.DeleteAppointment,
	calendar *schedule.GetCalendar,
	validate *schedule.ValidateSlot,
	history *schedule.GetPatientHistory,
	calendarCache *cache.CalendarCache,
	broadcaster *sse.Broadcaster,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:        book,
		update:      update,
		cancel:      cancel,
		complete:    complete,
		restore:     restore,
		remove:      remove,
		calendar:    calendar,
		validate:    validate,
		history:     history,
		cache:       calendarCache,
		broadcaster: broadcaster,
		loc:         loc,
	}
}

// --------- Requests ---------

type bookRequest struct {
	ClinicID    uuid.UUID  `json:"clinic_id" binding:"required"`
	PatientID   *uuid.UUID `json:"patient_id"`
	ProcedureID *uuid.UUID `json:"procedure_id"`
	TemplateID  *uuid.UUID `json:"template_id"`

	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end"`

	DurationMin *int             `json:"duration_min"`
	Cost        *decimal.Decimal `json:"cost"`
	ShortLabel  string           `json:"short_label"`
	ToothNum    string           `json:"tooth_num"`
	Description string           `json:"description"`

	SendNotifications *bool `json:"send_notifications"`

	Blocked bool `json:"blocked"`
	AllDay  bool `json:"all_day"`

	TransferOwner bool `json:"transfer_owner"`
}

type updateRequest struct {
	PatientID   *uuid.UUID `json:"patient_id"`
	ProcedureID *uuid.UUID `json:"procedure_id"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	DurationMin *int             `json:"duration_min"`
	Cost        *decimal.Decimal `json:"cost"`
	ShortLabel  *string          `json:"short_label"`
	ToothNum    *string          `json:"tooth_num"`
	Description *string          `json:"description"`

	SendNotifications *bool `json:"send_notifications"`

	AllDay bool `json:"all_day"`
}

type validateSlotRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sendNotifications := true
	if req.SendNotifications != nil {
		sendNotifications = *req.SendNotifications
	}

	ap, err := h.book.Execute(c.Request.Context(), schedule.BookInput{
		Actor:             viewerFrom(c),
		ClinicID:          req.ClinicID,
		PatientID:         req.PatientID,
		ProcedureID:       req.ProcedureID,
		TemplateID:        req.TemplateID,
		Start:             req.Start,
		End:               req.End,
		DurationMin:       req.DurationMin,
		Cost:              req.Cost,
		ShortLabel:        req.ShortLabel,
		ToothNum:          req.ToothNum,
		Description:       req.Description,
		SendNotifications: sendNotifications,
		Blocked:           req.Blocked,
		AllDay:            req.AllDay,
		TransferOwner:     req.TransferOwner,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	h.notifyMutation(c)
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid appointment id")
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), schedule.UpdateInput{
		Actor:             viewerFrom(c),
		AppointmentID:     id,
		PatientID:         req.PatientID,
		ProcedureID:       req.ProcedureID,
		Start:             req.Start,
		End:               req.End,
		DurationMin:       req.DurationMin,
		Cost:              req.Cost,
		ShortLabel:        req.ShortLabel,
		ToothNum:          req.ToothNum,
		Description:       req.Description,
		SendNotifications: req.SendNotifications,
		AllDay:            req.AllDay,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	h.notifyMutation(c)
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.complete.Execute)
}

func (h *AppointmentHandler) Restore(c *gin.Context) {
	h.transition(c, h.restore.Execute)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid appointment id")
		return
	}

	if err := h.remove.Execute(c.Request.Context(), viewerFrom(c), id); err != nil {
		writeScheduleError(c, err)
		return
	}

	h.notifyMutation(c)
	c.Status(204)
}

// Calendar serves the projected events for a visible range.
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	start, ok := parseTimeParam(c.Query("start"), h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_range", "start is required (RFC 3339 or YYYY-MM-DD)")
		return
	}

	end, ok := parseTimeParam(c.Query("end"), h.loc)
	if !ok {
		end = start.AddDate(0, 0, 7)
	}

	events, err := h.calendar.Execute(c.Request.Context(), viewerFrom(c), start, end)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to load calendar")
		return
	}
	httpresp.List(c, events)
}

// ValidateSlot is the advisory pre-check behind calendar selection.
func (h *AppointmentHandler) ValidateSlot(c *gin.Context) {
	var req validateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.validate.Execute(c.Request.Context(), req.Start, req.End); err != nil {
		writeScheduleError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"valid": true})
}

func (h *AppointmentHandler) PatientHistory(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid patient id")
		return
	}

	entries, err := h.history.Execute(c.Request.Context(), viewerFrom(c), patientID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	httpresp.List(c, entries)
}

// --------- Helpers ---------

type transitionFunc = func(ctx context.Context, actor domain.Viewer, id uuid.UUID) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionFunc) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid appointment id")
		return
	}

	ap, err := fn(c.Request.Context(), viewerFrom(c), id)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	h.notifyMutation(c)
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) notifyMutation(c *gin.Context) {
	h.cache.Bump(c.Request.Context())
	h.broadcaster.Broadcast("refresh")
}

// writeScheduleError maps business codes onto HTTP statuses.
func writeScheduleError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "unexpected error")
		return
	}

	switch {
	case code == "timeslot_is_already_booked" || code == "time_conflict":
		httperr.Conflict(c, code, "the requested time range is taken")
	case code == "forbidden" || code == "block_time_admin_only":
		httperr.Forbidden(c, code, "not allowed")
	case strings.HasSuffix(code, "_not_found"):
		httperr.NotFound(c, code, strings.ReplaceAll(code, "_", " "))
	default:
		httperr.BadRequest(c, code, strings.ReplaceAll(code, "_", " "))
	}
}
