package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultClinicName is seeded on startup and used as the fallback
// clinic for staff accounts created without an explicit assignment.
const DefaultClinicName = "Smile More Clinic"

type Clinic struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ColorHex string `gorm:"size:7;not null" json:"color_hex"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
