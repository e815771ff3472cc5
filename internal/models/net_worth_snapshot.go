package models

import (
	"time"

	"wealthtracker/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NetWorthSnapshot is a point-in-time record of a user's net worth.
// Snapshots are immutable time-series rows, so there is no Base embed and no soft delete.
type NetWorthSnapshot struct {
	ID               string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string          `gorm:"type:uuid;not null;uniqueIndex:uq_snapshot_user_recorded" json:"user_id"`
	RecordedAt       time.Time       `gorm:"not null;uniqueIndex:uq_snapshot_user_recorded" json:"recorded_at"`
	TotalAssets      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"total_assets"`
	TotalLiabilities decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"total_liabilities"`
	NetWorth         decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"net_worth"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *NetWorthSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
