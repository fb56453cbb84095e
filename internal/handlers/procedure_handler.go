package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/httpresp"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

type ProcedureHandler struct {
	db *gorm.DB
}

func NewProcedureHandler(db *gorm.DB) *ProcedureHandler {
	return &ProcedureHandler{db: db}
}

type procedureRequest struct {
	Name               string           `json:"name" binding:"required"`
	ColorHex           string           `json:"color_hex" binding:"required,len=7"`
	DefaultDurationMin *int             `json:"default_duration_min"`
	DefaultCost        *decimal.Decimal `json:"default_cost"`
}

func (h *ProcedureHandler) List(c *gin.Context) {
	var procedures []models.Procedure
	if err := h.db.Order("name ASC").Find(&procedures).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list procedures")
		return
	}
	httpresp.List(c, procedures)
}

func (h *ProcedureHandler) Create(c *gin.Context) {
	var req procedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.DefaultDurationMin != nil && *req.DefaultDurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "default duration must be positive")
		return
	}

	procedure := models.Procedure{
		Name:               req.Name,
		ColorHex:           req.ColorHex,
		DefaultDurationMin: req.DefaultDurationMin,
		DefaultCost:        req.DefaultCost,
	}
	if err := h.db.Create(&procedure).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create procedure")
		return
	}
	httpresp.Created(c, procedure)
}

func (h *ProcedureHandler) Update(c *gin.Context) {
	var procedure models.Procedure
	if err := h.db.First(&procedure, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "procedure_not_found", "procedure not found")
		return
	}

	var req procedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.DefaultDurationMin != nil && *req.DefaultDurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "default duration must be positive")
		return
	}

	procedure.Name = req.Name
	procedure.ColorHex = req.ColorHex
	procedure.DefaultDurationMin = req.DefaultDurationMin
	procedure.DefaultCost = req.DefaultCost

	if err := h.db.Save(&procedure).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update procedure")
		return
	}
	httpresp.OK(c, procedure)
}

func (h *ProcedureHandler) Delete(c *gin.Context) {
	var procedure models.Procedure
	if err := h.db.First(&procedure, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "procedure_not_found", "procedure not found")
		return
	}

	if err := h.db.Delete(&procedure).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete procedure")
		return
	}
	c.Status(204)
}
