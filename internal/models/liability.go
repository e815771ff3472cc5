package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LiabilityType is the kind of debt a liability represents.
type LiabilityType string

const (
	LiabilityTypeHomeLoan      LiabilityType = "home_loan"
	LiabilityTypeCarLoan       LiabilityType = "car_loan"
	LiabilityTypePersonalLoan  LiabilityType = "personal_loan"
	LiabilityTypeEducationLoan LiabilityType = "education_loan"
	LiabilityTypeCreditCard    LiabilityType = "credit_card"
	LiabilityTypeGoldLoan      LiabilityType = "gold_loan"
	LiabilityTypeOther         LiabilityType = "other"
)

// Valid reports whether t is a known liability type.
func (t LiabilityType) Valid() bool {
	switch t {
	case LiabilityTypeHomeLoan, LiabilityTypeCarLoan, LiabilityTypePersonalLoan,
		LiabilityTypeEducationLoan, LiabilityTypeCreditCard, LiabilityTypeGoldLoan, LiabilityTypeOther:
		return true
	}
	return false
}

// Liability represents money the user owes.
type Liability struct {
	Base
	UserID            string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type              LiabilityType   `gorm:"not null" json:"type"`
	Name              string          `gorm:"not null" json:"name"`
	Lender            string          `json:"lender,omitempty"`
	PrincipalAmount   decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"principal_amount"`
	OutstandingAmount decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"outstanding_amount"`
	InterestRate      decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0" json:"interest_rate"`
	MonthlyPayment    decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"monthly_payment"`
	NextDueDate       *time.Time      `json:"next_due_date,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}
