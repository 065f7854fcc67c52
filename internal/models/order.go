package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderNumber   string         `json:"order_number" gorm:"unique;not null"`
	CustomerID    *uint          `json:"customer_id"`
	Customer      *Customer      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Subtotal      float64        `json:"subtotal" gorm:"not null"`
	DeliveryFee   float64        `json:"delivery_fee" gorm:"default:0"`
	Discount      float64        `json:"discount" gorm:"default:0"`
	Tax           float64        `json:"tax" gorm:"not null"`
	Total         float64        `json:"total" gorm:"not null"`
	PaymentMethod string         `json:"payment_method"` // cash, card, gcash, credit, split
	PaymentRef    string         `json:"payment_ref"`
	PaymentStatus string         `json:"payment_status" gorm:"default:'unpaid'"` // unpaid, paid
	Status        string         `json:"status" gorm:"default:'open'"`           // open, received, preparing, completed, refunded, voided
	OrderType     string         `json:"order_type" gorm:"default:'pos'"`        // pos, online
	ServiceType   string         `json:"service_type" gorm:"default:'dine-in'"`  // dine-in, pick-up, delivery
	TableID       *uint          `json:"table_id" gorm:"index"`
	ShiftID       *uint          `json:"shift_id" gorm:"index"`
	ParentOrderID *uint          `json:"parent_order_id"`
	Notes         string         `json:"notes" gorm:"type:text"`
	Items         []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderReceived  OrderStatus = "received"
	OrderPreparing OrderStatus = "preparing"
	OrderCompleted OrderStatus = "completed"
	OrderRefunded  OrderStatus = "refunded"
	OrderVoided    OrderStatus = "voided"
)

type OrderType string

const (
	OrderTypePOS    OrderType = "pos"
	OrderTypeOnline OrderType = "online"
)

type ServiceType string

const (
	ServiceDineIn   ServiceType = "dine-in"
	ServicePickUp   ServiceType = "pick-up"
	ServiceDelivery ServiceType = "delivery"
)

// Payment is one settlement line for an order. A plain cash sale has a
// single line; a split settlement has one line per method.
type Payment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	Method    string    `json:"method" gorm:"not null"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentGCash  PaymentMethod = "gcash"
	PaymentCredit PaymentMethod = "credit"
	PaymentSplit  PaymentMethod = "split"
)
