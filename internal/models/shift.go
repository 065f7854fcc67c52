package models

import (
	"time"

	"gorm.io/gorm"
)

// Shift is one period of cash-drawer custody by one employee. At most one
// active shift per employee. expected_cash = opening_cash + cash sales,
// variance = closing_cash - expected_cash, both filled in on close.
type Shift struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	EmployeeID   uint           `json:"employee_id" gorm:"index;not null"`
	Employee     *Employee      `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	OpeningCash  float64        `json:"opening_cash" gorm:"not null"`
	ClosingCash  *float64       `json:"closing_cash"`
	ExpectedCash *float64       `json:"expected_cash"`
	Variance     *float64       `json:"variance"`
	Status       string         `json:"status" gorm:"default:'active'"` // active, closed
	StartedAt    time.Time      `json:"started_at"`
	EndedAt      *time.Time     `json:"ended_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type ShiftStatus string

const (
	ShiftActive ShiftStatus = "active"
	ShiftClosed ShiftStatus = "closed"
)
