package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/httpresp"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

// TemplateHandler manages appointment templates, the named booking
// shortcuts that pre-fill duration, procedure and cost.
type TemplateHandler struct {
	db *gorm.DB
}

func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{db: db}
}

type templateRequest struct {
	Name        string           `json:"name" binding:"required"`
	DurationMin int              `json:"duration_min" binding:"required,min=5"`
	ProcedureID *uuid.UUID       `json:"procedure_id"`
	DefaultCost *decimal.Decimal `json:"default_cost"`
}

func (h *TemplateHandler) List(c *gin.Context) {
	var templates []models.AppointmentTemplate
	if err := h.db.Preload("Procedure").Order("name ASC").Find(&templates).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list templates")
		return
	}
	httpresp.List(c, templates)
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.ProcedureID != nil {
		var count int64
		h.db.Model(&models.Procedure{}).Where("id = ?", req.ProcedureID).Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "procedure_not_found", "linked procedure does not exist")
			return
		}
	}

	template := models.AppointmentTemplate{
		Name:        req.Name,
		DurationMin: req.DurationMin,
		ProcedureID: req.ProcedureID,
		DefaultCost: req.DefaultCost,
		CreatedBy:   viewerFrom(c).UserID,
	}
	if err := h.db.Create(&template).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create template")
		return
	}
	httpresp.Created(c, template)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	var template models.AppointmentTemplate
	if err := h.db.First(&template, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "template_not_found", "template not found")
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.ProcedureID != nil {
		var count int64
		h.db.Model(&models.Procedure{}).Where("id = ?", req.ProcedureID).Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "procedure_not_found", "linked procedure does not exist")
			return
		}
	}

	template.Name = req.Name
	template.DurationMin = req.DurationMin
	template.ProcedureID = req.ProcedureID
	template.DefaultCost = req.DefaultCost

	if err := h.db.Save(&template).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update template")
		return
	}
	httpresp.OK(c, template)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	var template models.AppointmentTemplate
	if err := h.db.First(&template, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "template_not_found", "template not found")
		return
	}

	if err := h.db.Delete(&template).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete template")
		return
	}
	c.Status(204)
}
