package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is one line on an order. Exactly one of ProductID/ComboID is
// set; name and size are denormalized so receipts stay stable when the
// catalog changes.
type OrderItem struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OrderID     uint           `json:"order_id" gorm:"index;not null"`
	ProductID   *uint          `json:"product_id"`
	ComboID     *uint          `json:"combo_id"`
	ProductName string         `json:"product_name" gorm:"not null"`
	Size        string         `json:"size"`
	Quantity    int            `json:"quantity" gorm:"not null"`
	UnitPrice   float64        `json:"unit_price" gorm:"not null"`
	Subtotal    float64        `json:"subtotal" gorm:"not null"`
	Notes       string         `json:"notes" gorm:"type:text"`
	Status      string         `json:"status" gorm:"default:'active'"` // active, voided, comped
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderItemStatus string

const (
	ItemActive OrderItemStatus = "active"
	ItemVoided OrderItemStatus = "voided"
	ItemComped OrderItemStatus = "comped"
)

// OrderItemAdjustment is the append-only audit record for a void or comp.
// Written exactly once per adjustment and never updated.
type OrderItemAdjustment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrderID        uint      `json:"order_id" gorm:"index;not null"`
	OrderItemID    uint      `json:"order_item_id" gorm:"index;not null"`
	AdjustmentType string    `json:"adjustment_type" gorm:"not null"` // void, comp
	Reason         string    `json:"reason" gorm:"type:text;not null"`
	OriginalAmount float64   `json:"original_amount" gorm:"not null"`
	AdjustedBy     uint      `json:"adjusted_by" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

type AdjustmentType string

const (
	AdjustVoid AdjustmentType = "void"
	AdjustComp AdjustmentType = "comp"
)
