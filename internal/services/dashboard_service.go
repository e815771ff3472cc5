package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"wealthtracker/internal/dashboard"
	"wealthtracker/internal/models"
)

// dashboardService assembles the aggregate views from the user's records.
type dashboardService struct {
	db       *gorm.DB
	insights InsightServicer
	opts     dashboard.Options
	now      func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, insights InsightServicer, opts dashboard.Options) DashboardServicer {
	return &dashboardService{
		db:       db,
		insights: insights,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetDashboard fetches the five record sets concurrently and reduces them
// into a dashboard view. Any failed query fails the whole view.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*dashboard.View, error) {
	in, err := s.load(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	view := dashboard.Build(*in, s.now(), s.opts)
	return &view, nil
}

// GetPortfolioSummary aggregates the user's holdings.
func (s *dashboardService) GetPortfolioSummary(ctx context.Context, userID string) (*dashboard.PortfolioSummary, error) {
	var assets []models.Asset
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&assets).Error; err != nil {
		return nil, wrapInternal(err)
	}

	summary := dashboard.Portfolio(assets)
	return &summary, nil
}

// GenerateInsights evaluates the insight rules against the current view
// and replaces the user's previously generated insights with the result.
func (s *dashboardService) GenerateInsights(ctx context.Context, userID string) ([]models.Insight, error) {
	in, err := s.load(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	view := dashboard.Build(*in, s.now(), s.opts)
	return s.insights.ReplaceGeneratedInsights(ctx, userID, dashboard.GenerateInsights(view))
}

func (s *dashboardService) load(ctx context.Context, userID string, withFeed bool) (*dashboard.Input, error) {
	var in dashboard.Input

	g, gctx := errgroup.WithContext(ctx)
	db := s.db.WithContext(gctx)

	g.Go(func() error {
		return db.Where("user_id = ?", userID).Order("created_at DESC").Find(&in.Assets).Error
	})
	g.Go(func() error {
		return db.Where("user_id = ?", userID).Order("created_at DESC").Find(&in.Liabilities).Error
	})
	g.Go(func() error {
		return db.Where("user_id = ?", userID).Order("created_at DESC").Find(&in.Goals).Error
	})
	if withFeed {
		g.Go(func() error {
			q := db.Where("user_id = ?", userID).Order("date DESC, created_at DESC")
			if s.opts.RecentLimit > 0 {
				q = q.Limit(s.opts.RecentLimit)
			}
			return q.Find(&in.Transactions).Error
		})
		g.Go(func() error {
			return db.Where("user_id = ? AND is_read = ?", userID, false).
				Order("created_at DESC").
				Find(&in.Insights).Error
		})
	}

	if err := g.Wait(); err != nil {
		return nil, wrapInternal(err)
	}
	return &in, nil
}
