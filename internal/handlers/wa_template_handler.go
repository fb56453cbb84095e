package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/httpresp"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

type WaTemplateHandler struct {
	db *gorm.DB
}

func NewWaTemplateHandler(db *gorm.DB) *WaTemplateHandler {
	return &WaTemplateHandler{db: db}
}

type waTemplateRequest struct {
	Code   string `json:"code" binding:"required"`
	BodyRu string `json:"body_ru" binding:"required"`
	BodyHe string `json:"body_he" binding:"required"`
}

func (h *WaTemplateHandler) List(c *gin.Context) {
	var templates []models.WaTemplate
	if err := h.db.Order("code ASC").Find(&templates).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list wa templates")
		return
	}
	httpresp.List(c, templates)
}

func (h *WaTemplateHandler) Create(c *gin.Context) {
	var req waTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	code := strings.ToLower(strings.TrimSpace(req.Code))

	var count int64
	h.db.Model(&models.WaTemplate{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "code_already_exists", "template code is taken")
		return
	}

	template := models.WaTemplate{
		Code:   code,
		BodyRu: req.BodyRu,
		BodyHe: req.BodyHe,
	}
	if err := h.db.Create(&template).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create wa template")
		return
	}
	httpresp.Created(c, template)
}

func (h *WaTemplateHandler) Update(c *gin.Context) {
	var template models.WaTemplate
	if err := h.db.First(&template, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "wa_template_not_found", "wa template not found")
		return
	}

	var req waTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// Codes are referenced from the reminder sweep and stay immutable.
	template.BodyRu = req.BodyRu
	template.BodyHe = req.BodyHe

	if err := h.db.Save(&template).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update wa template")
		return
	}
	httpresp.OK(c, template)
}

func (h *WaTemplateHandler) Delete(c *gin.Context) {
	var template models.WaTemplate
	if err := h.db.First(&template, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "wa_template_not_found", "wa template not found")
		return
	}

	if err := h.db.Delete(&template).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete wa template")
		return
	}
	c.Status(204)
}
