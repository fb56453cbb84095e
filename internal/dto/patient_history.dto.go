package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PatientHistoryDTO is one visit in a patient's history list.
type PatientHistoryDTO struct {
	ID            uuid.UUID        `json:"id"`
	StartTS       time.Time        `json:"start_ts"`
	Status        string           `json:"status"`
	ToothNum      string           `json:"tooth_num"`
	Cost          *decimal.Decimal `json:"cost"`
	Description   string           `json:"description"`
	ProcedureName string           `json:"procedure_name"`
}
