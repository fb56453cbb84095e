package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/httpresp"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

type patientRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     string  `json:"phone"`
	Type      string  `json:"patient_type"`
	Notes     *string `json:"notes"`

	IsDispensary                 *bool `json:"is_dispensary"`
	NotificationLanguageIsHebrew *bool `json:"notification_language_is_hebrew"`
}

// visibleScope hides owned patients from everyone but their owner.
func (h *PatientHandler) visibleScope(c *gin.Context) *gorm.DB {
	viewer := viewerFrom(c)
	if viewer.Role == models.RoleAdmin {
		return h.db.Where("owner_id IS NULL OR owner_id = ?", viewer.UserID)
	}
	return h.db.Where("owner_id IS NULL")
}

// List supports ?sort=name|created, ?is_dispensary=true and ?search=.
func (h *PatientHandler) List(c *gin.Context) {
	q := h.visibleScope(c)

	switch c.Query("is_dispensary") {
	case "true":
		q = q.Where("is_dispensary = ?", true)
	case "false":
		q = q.Where("is_dispensary = ?", false)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?",
			like, like, "%"+search+"%",
		)
	}

	switch c.Query("sort") {
	case "name":
		q = q.Order("first_name ASC, last_name ASC")
	default:
		q = q.Order("created_at DESC")
	}

	var patients []models.Patient
	if err := q.Find(&patients).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list patients")
		return
	}
	httpresp.List(c, patients)
}

func (h *PatientHandler) Get(c *gin.Context) {
	var patient models.Patient
	if err := h.visibleScope(c).First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "patient not found")
		return
	}
	httpresp.OK(c, patient)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	patient := models.Patient{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Phone:       strings.TrimSpace(req.Phone),
		PatientType: models.PatientTypeAdult,
		Notes:       req.Notes,
	}
	if req.Type == models.PatientTypeChild {
		patient.PatientType = models.PatientTypeChild
	}
	if req.IsDispensary != nil {
		patient.IsDispensary = *req.IsDispensary
	}
	if req.NotificationLanguageIsHebrew != nil {
		patient.NotificationLanguageIsHebrew = *req.NotificationLanguageIsHebrew
	}

	if err := h.db.Create(&patient).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create patient")
		return
	}
	httpresp.Created(c, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	var patient models.Patient
	if err := h.visibleScope(c).First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "patient not found")
		return
	}

	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	patient.FirstName = strings.TrimSpace(req.FirstName)
	patient.LastName = strings.TrimSpace(req.LastName)
	patient.Phone = strings.TrimSpace(req.Phone)
	if req.Type == models.PatientTypeAdult || req.Type == models.PatientTypeChild {
		patient.PatientType = req.Type
	}
	if req.Notes != nil {
		patient.Notes = req.Notes
	}
	if req.IsDispensary != nil {
		patient.IsDispensary = *req.IsDispensary
	}
	if req.NotificationLanguageIsHebrew != nil {
		patient.NotificationLanguageIsHebrew = *req.NotificationLanguageIsHebrew
	}

	if err := h.db.Save(&patient).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update patient")
		return
	}
	httpresp.OK(c, patient)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	var patient models.Patient
	if err := h.visibleScope(c).First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", "patient not found")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).Where("patient_id = ?", patient.ID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "patient_has_appointments", "patient still has appointments")
		return
	}

	if err := h.db.Delete(&patient).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete patient")
		return
	}
	c.Status(204)
}
