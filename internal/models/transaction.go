package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeBuy          TransactionType = "buy"
	TransactionTypeSell         TransactionType = "sell"
	TransactionTypeDividend     TransactionType = "dividend"
	TransactionTypeInterest     TransactionType = "interest"
	TransactionTypeDeposit      TransactionType = "deposit"
	TransactionTypeWithdrawal   TransactionType = "withdrawal"
	TransactionTypePayment      TransactionType = "payment"
	TransactionTypeContribution TransactionType = "contribution"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeBuy, TransactionTypeSell, TransactionTypeDividend, TransactionTypeInterest,
		TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypePayment, TransactionTypeContribution:
		return true
	}
	return false
}

// Transaction records money moving in or out of a holding, loan or goal.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `json:"description"`

	AssetID     *string `gorm:"type:uuid" json:"asset_id,omitempty"`
	LiabilityID *string `gorm:"type:uuid" json:"liability_id,omitempty"`
	GoalID      *string `gorm:"type:uuid" json:"goal_id,omitempty"`
}
