package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
)

// insightService handles insight-related business logic.
type insightService struct {
	db *gorm.DB
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB) InsightServicer {
	return &insightService{db: db}
}

// GetUserInsights returns a page of the user's insights, newest first.
func (s *insightService) GetUserInsights(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	unreadOnly bool,
) (*pagination.PageResponse[models.Insight], error) {
	base := s.db.WithContext(ctx).Model(&models.Insight{}).Where("user_id = ?", userID)
	if unreadOnly {
		base = base.Where("is_read = ?", false)
	}

	result, err := pagination.Find[models.Insight](base, page, "created_at DESC")
	if err != nil {
		return nil, wrapInternal(err)
	}
	return result, nil
}

// MarkInsightRead flags an insight as read. Marking an already-read insight is a no-op.
func (s *insightService) MarkInsightRead(ctx context.Context, userID, insightID string) (*models.Insight, error) {
	var insight models.Insight
	if err := findOwned(ctx, s.db, &insight, userID, insightID, apperrors.ErrInsightNotFound); err != nil {
		return nil, err
	}
	if insight.IsRead {
		return &insight, nil
	}

	if err := s.db.WithContext(ctx).Model(&insight).Update("is_read", true).Error; err != nil {
		return nil, wrapInternal(err)
	}
	insight.IsRead = true
	return &insight, nil
}

// DeleteInsight soft-deletes an insight.
func (s *insightService) DeleteInsight(ctx context.Context, userID, insightID string) error {
	return deleteOwned(ctx, s.db, &models.Insight{}, userID, insightID, apperrors.ErrInsightNotFound)
}

// ReplaceGeneratedInsights swaps the user's generated insights for the given
// set in one transaction. Static insights are never touched.
func (s *insightService) ReplaceGeneratedInsights(ctx context.Context, userID string, insights []models.Insight) ([]models.Insight, error) {
	for i := range insights {
		insights[i].UserID = userID
		insights[i].Source = models.InsightSourceGenerated
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("user_id = ? AND source = ?", userID, models.InsightSourceGenerated).
			Delete(&models.Insight{}).Error; err != nil {
			return err
		}
		if len(insights) == 0 {
			return nil
		}
		return tx.Create(&insights).Error
	})
	if err != nil {
		return nil, wrapInternal(err)
	}

	if insights == nil {
		insights = []models.Insight{}
	}
	return insights, nil
}
