package handlers

import (
	"fmt"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smilemore/clinic-scheduler/internal/httperr"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

// ExportHandler produces the admin xlsx dump of appointments.
type ExportHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewExportHandler(db *gorm.DB, loc *time.Location) *ExportHandler {
	return &ExportHandler{db: db, loc: loc}
}

func (h *ExportHandler) ExportAppointments(c *gin.Context) {
	from, ok := parseTimeParam(c.Query("date_from"), h.loc)
	if !ok {
		from = time.Now().In(h.loc).AddDate(0, -1, 0)
	}
	to, ok := parseTimeParam(c.Query("date_to"), h.loc)
	if !ok {
		to = time.Now().In(h.loc).AddDate(0, 0, 1)
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Clinic").
		Preload("Patient").
		Preload("Procedure").
		Where("start_ts >= ? AND start_ts < ?", from, to).
		Order("start_ts ASC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to load appointments")
		return
	}

	file := excelize.NewFile()
	sheet := "Appointments"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Time", "Clinic", "Patient", "Procedure", "Status", "Cost"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		file.SetCellValue(sheet, cell, header)
	}

	for i, ap := range appointments {
		row := i + 2
		start := ap.StartTS.In(h.loc)

		patientName := ""
		if ap.Patient != nil {
			patientName = ap.Patient.FullName()
		}
		procedureName := ""
		if ap.Procedure != nil {
			procedureName = ap.Procedure.Name
		}
		cost := ""
		if ap.Cost != nil {
			cost = ap.Cost.StringFixed(2)
		}

		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), start.Format("02.01.2006"))
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), start.Format("15:04"))
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), ap.Clinic.Name)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), patientName)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), procedureName)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", row), ap.Status)
		file.SetCellValue(sheet, fmt.Sprintf("G%d", row), cost)
	}

	filename := fmt.Sprintf("appointments_%s.xlsx", time.Now().In(h.loc).Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		httperr.Internal(c, "internal_error", "failed to write export")
	}
}
