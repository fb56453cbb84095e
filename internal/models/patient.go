package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PatientTypeAdult = "adult"
	PatientTypeChild = "child"
)

type Patient struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Phone     string `gorm:"size:20" json:"phone"`

	PatientType string  `gorm:"size:20;default:'adult'" json:"patient_type"`
	Notes       *string `gorm:"type:text" json:"notes"`

	IsDispensary bool `gorm:"default:false" json:"is_dispensary"`

	// Reminder bodies are picked by language: Hebrew when set, Russian otherwise.
	NotificationLanguageIsHebrew bool `gorm:"default:false" json:"notification_language_is_hebrew"`

	// OwnerID partitions visibility: an owned patient is returned in full
	// only to the owning admin.
	OwnerID *uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Owner   *User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
