package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smilemore/clinic-scheduler/internal/cache"
	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/httpresp"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

type ClinicHandler struct {
	db    *gorm.DB
	cache *cache.CalendarCache
}

func NewClinicHandler(db *gorm.DB, calendarCache *cache.CalendarCache) *ClinicHandler {
	return &ClinicHandler{db: db, cache: calendarCache}
}

type clinicRequest struct {
	Name     string `json:"name" binding:"required"`
	ColorHex string `json:"color_hex" binding:"required,len=7"`
}

func (h *ClinicHandler) List(c *gin.Context) {
	var clinics []models.Clinic
	if err := h.db.Order("created_at ASC").Find(&clinics).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list clinics")
		return
	}
	httpresp.List(c, clinics)
}

func (h *ClinicHandler) Create(c *gin.Context) {
	var req clinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	clinic := models.Clinic{Name: req.Name, ColorHex: req.ColorHex}
	if err := h.db.Create(&clinic).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create clinic")
		return
	}
	h.cache.Bump(c.Request.Context())
	httpresp.Created(c, clinic)
}

func (h *ClinicHandler) Update(c *gin.Context) {
	var clinic models.Clinic
	if err := h.db.First(&clinic, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "clinic not found")
		return
	}

	var req clinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	clinic.Name = req.Name
	clinic.ColorHex = req.ColorHex
	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update clinic")
		return
	}
	h.cache.Bump(c.Request.Context())
	httpresp.OK(c, clinic)
}

func (h *ClinicHandler) Delete(c *gin.Context) {
	var clinic models.Clinic
	if err := h.db.First(&clinic, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "clinic not found")
		return
	}

	// The seeded default clinic anchors staff defaults and cannot go.
	if clinic.Name == models.DefaultClinicName {
		httperr.BadRequest(c, "default_clinic_protected", "the default clinic cannot be deleted")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).Where("clinic_id = ?", clinic.ID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "clinic_has_appointments", "clinic still has appointments")
		return
	}

	if err := h.db.Delete(&clinic).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete clinic")
		return
	}
	h.cache.Bump(c.Request.Context())
	c.Status(204)
}
