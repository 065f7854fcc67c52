package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	FullName      string         `json:"full_name" gorm:"not null"`
	Email         string         `json:"email" gorm:"index"`
	PhoneNumber   string         `json:"phone_number" gorm:"index"`
	Address       string         `json:"address"`
	CreditBalance float64        `json:"credit_balance" gorm:"default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// CustomerLedgerEntry is an append-only record of a credit-balance change.
// BalanceAfter snapshots the balance as of this entry; the running
// credit_balance on Customer must equal the sum of all entry amounts.
type CustomerLedgerEntry struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CustomerID   uint      `json:"customer_id" gorm:"index;not null"`
	OrderID      *uint     `json:"order_id"`
	EntryType    string    `json:"entry_type" gorm:"not null"` // payment, adjustment, credit_purchase
	Amount       float64   `json:"amount" gorm:"not null"`
	BalanceAfter float64   `json:"balance_after" gorm:"not null"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

type LedgerEntryType string

const (
	LedgerPayment        LedgerEntryType = "payment"
	LedgerAdjustment     LedgerEntryType = "adjustment"
	LedgerCreditPurchase LedgerEntryType = "credit_purchase"
)
