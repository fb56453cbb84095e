package models

import (
	"time"

	"github.com/google/uuid"
)

// WaTemplate holds the localized WhatsApp message bodies keyed by a
// stable code (e.g. "appointment_reminder").
type WaTemplate struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Code   string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	BodyRu string `gorm:"type:text;not null" json:"body_ru"`
	BodyHe string `gorm:"type:text;not null" json:"body_he"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
