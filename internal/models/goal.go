package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Priority ranks goals and insights.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// GoalCategory groups goals by purpose.
type GoalCategory string

const (
	GoalCategoryRetirement    GoalCategory = "retirement"
	GoalCategoryEducation     GoalCategory = "education"
	GoalCategoryHome          GoalCategory = "home"
	GoalCategoryEmergencyFund GoalCategory = "emergency_fund"
	GoalCategoryVacation      GoalCategory = "vacation"
	GoalCategoryVehicle       GoalCategory = "vehicle"
	GoalCategoryWedding       GoalCategory = "wedding"
	GoalCategoryOther         GoalCategory = "other"
)

// Valid reports whether c is a known goal category.
func (c GoalCategory) Valid() bool {
	switch c {
	case GoalCategoryRetirement, GoalCategoryEducation, GoalCategoryHome, GoalCategoryEmergencyFund,
		GoalCategoryVacation, GoalCategoryVehicle, GoalCategoryWedding, GoalCategoryOther:
		return true
	}
	return false
}

// Goal is a savings target.
type Goal struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	Priority      Priority        `gorm:"not null;default:'medium'" json:"priority"`
	Category      GoalCategory    `gorm:"not null;default:'other'" json:"category"`
	Description   string          `json:"description,omitempty"`

	Progress float64 `gorm:"-" json:"progress"`
}

// ProgressPercent returns current/target × 100. It is not clamped, so an
// over-funded goal reports more than 100. A zero target reports 0.
func (g *Goal) ProgressPercent() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(Hundred).Round(2).InexactFloat64()
}

// AfterFind populates Progress on every load.
func (g *Goal) AfterFind(tx *gorm.DB) error {
	g.Progress = g.ProgressPercent()
	return nil
}
