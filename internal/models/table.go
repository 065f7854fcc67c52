package models

import (
	"time"

	"gorm.io/gorm"
)

// Table is a physical dining table. CurrentOrderID points at one of the
// table's open orders (any one, after a split) and is empty when none remain.
type Table struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	TableNumber    string         `json:"table_number" gorm:"unique;not null"`
	Capacity       int            `json:"capacity" gorm:"default:4"`
	Section        string         `json:"section"`
	Status         string         `json:"status" gorm:"default:'available'"` // available, occupied, reserved, needs-cleaning
	CurrentOrderID *uint          `json:"current_order_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type TableStatus string

const (
	TableAvailable     TableStatus = "available"
	TableOccupied      TableStatus = "occupied"
	TableReserved      TableStatus = "reserved"
	TableNeedsCleaning TableStatus = "needs-cleaning"
)

func ValidTableStatus(status string) bool {
	switch TableStatus(status) {
	case TableAvailable, TableOccupied, TableReserved, TableNeedsCleaning:
		return true
	}
	return false
}
