package services

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wealthtracker/internal/dashboard"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
)

// netWorthSnapshotService records and serves net worth history.
type netWorthSnapshotService struct {
	db *gorm.DB
}

// NewNetWorthSnapshotService creates a new NetWorthSnapshotServicer.
func NewNetWorthSnapshotService(db *gorm.DB) NetWorthSnapshotServicer {
	return &netWorthSnapshotService{db: db}
}

// ComputeAndRecordSnapshots stores a net worth snapshot for every user that
// holds at least one asset or liability. Re-running for the same recordedAt
// overwrites the earlier figures.
func (s *netWorthSnapshotService) ComputeAndRecordSnapshots(ctx context.Context, recordedAt time.Time) (int, error) {
	db := s.db.WithContext(ctx)

	var assetOwners, liabilityOwners []string
	if err := db.Model(&models.Asset{}).Distinct("user_id").Pluck("user_id", &assetOwners).Error; err != nil {
		return 0, wrapInternal(err)
	}
	if err := db.Model(&models.Liability{}).Distinct("user_id").Pluck("user_id", &liabilityOwners).Error; err != nil {
		return 0, wrapInternal(err)
	}

	count := 0
	for _, userID := range unionIDs(assetOwners, liabilityOwners) {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		snapshot, err := s.computeSnapshot(db, userID, recordedAt)
		if err != nil {
			return count, err
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recorded_at"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_assets", "total_liabilities", "net_worth"}),
		}).Create(snapshot).Error; err != nil {
			return count, wrapInternal(err)
		}
		count++
	}

	return count, nil
}

func (s *netWorthSnapshotService) computeSnapshot(db *gorm.DB, userID string, recordedAt time.Time) (*models.NetWorthSnapshot, error) {
	var assets []models.Asset
	if err := db.Where("user_id = ?", userID).Find(&assets).Error; err != nil {
		return nil, wrapInternal(err)
	}
	var liabilities []models.Liability
	if err := db.Where("user_id = ?", userID).Find(&liabilities).Error; err != nil {
		return nil, wrapInternal(err)
	}

	return &models.NetWorthSnapshot{
		UserID:           userID,
		RecordedAt:       recordedAt,
		TotalAssets:      dashboard.TotalAssets(assets),
		TotalLiabilities: dashboard.TotalLiabilities(liabilities),
		NetWorth:         dashboard.NetWorth(assets, liabilities),
	}, nil
}

// GetSnapshots returns paginated snapshots for a user within a date range, newest first.
func (s *netWorthSnapshotService) GetSnapshots(
	ctx context.Context,
	userID string,
	from, to time.Time,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
	base := s.db.WithContext(ctx).Model(&models.NetWorthSnapshot{}).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, from, to)

	result, err := pagination.Find[models.NetWorthSnapshot](base, page, "recorded_at DESC")
	if err != nil {
		return nil, wrapInternal(err)
	}
	return result, nil
}

func unionIDs(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
