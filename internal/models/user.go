package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin       = "admin"
	RoleClinicStaff = "clinic_staff"
	RoleGuest       = "guest"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Role string `gorm:"size:20;default:'guest'" json:"role"`

	// Staff accounts are pinned to one clinic; admins roam.
	ClinicID *uuid.UUID `gorm:"type:uuid" json:"clinic_id"`
	Clinic   *Clinic    `gorm:"foreignKey:ClinicID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
