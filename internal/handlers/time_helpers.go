package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/middleware"
)

// parseTimeParam accepts RFC 3339 timestamps and plain dates.
func parseTimeParam(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), true
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// viewerFrom rebuilds the acting user from the auth middleware context.
func viewerFrom(c *gin.Context) domain.Viewer {
	userID, _ := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role, _ := c.MustGet(middleware.ContextUserRole).(string)
	clinicID, _ := c.MustGet(middleware.ContextClinicID).(*uuid.UUID)

	return domain.Viewer{
		UserID:   userID,
		Role:     role,
		ClinicID: clinicID,
	}
}
