package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Procedure is a catalog entry; duration and cost are defaults that
// pre-fill the booking form, both optional.
type Procedure struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	ColorHex string `gorm:"size:7;not null" json:"color_hex"`

	DefaultDurationMin *int             `json:"default_duration_min"`
	DefaultCost        *decimal.Decimal `gorm:"type:numeric(10,2)" json:"default_cost"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Procedure) TableName() string {
	return "procedures_catalog"
}
