package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentTemplate is a named shortcut bundling a duration, an
// optional linked procedure and an optional default cost.
type AppointmentTemplate struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	DurationMin int    `gorm:"not null" json:"duration_min"`

	ProcedureID *uuid.UUID `gorm:"type:uuid" json:"procedure_id"`
	Procedure   *Procedure `gorm:"foreignKey:ProcedureID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"procedure,omitempty"`

	DefaultCost *decimal.Decimal `gorm:"type:numeric(10,2)" json:"default_cost"`

	CreatedBy uuid.UUID `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
