package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Clinic   Clinic    `gorm:"foreignKey:ClinicID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"clinic"`

	// Nullable: blocked time carries no patient or procedure.
	PatientID *uuid.UUID `gorm:"type:uuid;index" json:"patient_id"`
	Patient   *Patient   `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient,omitempty"`

	ProcedureID *uuid.UUID `gorm:"type:uuid" json:"procedure_id"`
	Procedure   *Procedure `gorm:"foreignKey:ProcedureID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"procedure,omitempty"`

	StartTS time.Time `gorm:"not null;index" json:"start_ts"`
	EndTS   time.Time `gorm:"not null" json:"end_ts"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	ShortLabel  string           `gorm:"size:100" json:"short_label"`
	Cost        *decimal.Decimal `gorm:"type:numeric(10,2)" json:"cost"`
	ToothNum    string           `gorm:"size:10" json:"tooth_num"`
	Description string           `gorm:"size:1000" json:"description"`

	SendNotifications bool `gorm:"default:true" json:"send_notifications"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid" json:"created_by"`
	UpdatedBy  *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	CanceledBy *uuid.UUID `gorm:"type:uuid" json:"canceled_by"`

	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
