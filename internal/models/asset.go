package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetType is the investment category an asset belongs to.
type AssetType string

const (
	AssetTypeStocks        AssetType = "stocks"
	AssetTypeMutualFunds   AssetType = "mutual_funds"
	AssetTypeFixedDeposits AssetType = "fixed_deposits"
	AssetTypeGold          AssetType = "gold"
	AssetTypeCrypto        AssetType = "crypto"
	AssetTypeRealEstate    AssetType = "real_estate"
	AssetTypePPF           AssetType = "ppf"
	AssetTypeBonds         AssetType = "bonds"
)

// AssetTypes lists every known asset type in display order.
var AssetTypes = []AssetType{
	AssetTypeStocks,
	AssetTypeMutualFunds,
	AssetTypeFixedDeposits,
	AssetTypeGold,
	AssetTypeCrypto,
	AssetTypeRealEstate,
	AssetTypePPF,
	AssetTypeBonds,
}

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RiskLevel tags how volatile a holding is.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Valid reports whether r is a known risk level.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}

// Asset represents a holding in the user's portfolio.
type Asset struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type         AssetType       `gorm:"not null" json:"type"`
	Name         string          `gorm:"not null" json:"name"`
	Symbol       string          `json:"symbol,omitempty"`
	Quantity     decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"quantity"`
	AveragePrice decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"average_price"`
	CurrentPrice decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"current_price"`
	CurrentValue decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"current_value"`
	Institution  string          `json:"institution,omitempty"`
	RiskLevel    RiskLevel       `gorm:"not null;default:'medium'" json:"risk_level"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"`
	Notes        string          `json:"notes,omitempty"`

	// Derived at read time
	UnrealizedChange    decimal.Decimal `gorm:"-" json:"unrealized_change"`
	UnrealizedChangePct float64         `gorm:"-" json:"unrealized_change_pct"`
}

// InvestedAmount is quantity × average price.
func (a *Asset) InvestedAmount() decimal.Decimal {
	return a.Quantity.Mul(a.AveragePrice)
}

// Derive recomputes the unrealized change fields from the stored value.
func (a *Asset) Derive() {
	invested := a.InvestedAmount()
	a.UnrealizedChange = a.CurrentValue.Sub(invested)
	if invested.IsZero() {
		a.UnrealizedChangePct = 0
		return
	}
	a.UnrealizedChangePct = a.UnrealizedChange.Div(invested).Mul(Hundred).Round(2).InexactFloat64()
}

// AfterFind populates the derived fields on every load.
func (a *Asset) AfterFind(tx *gorm.DB) error {
	a.Derive()
	return nil
}
