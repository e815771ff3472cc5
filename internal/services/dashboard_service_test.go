package services

import (
	"context"
	"testing"
	"time"

	"wealthtracker/internal/dashboard"
	"wealthtracker/internal/models"
	"wealthtracker/internal/testutil"
)

func newTestDashboardService(t *testing.T, svc DashboardServicer, now time.Time) DashboardServicer {
	t.Helper()
	ds, ok := svc.(*dashboardService)
	if !ok {
		t.Fatalf("unexpected dashboard service type %T", svc)
	}
	ds.now = func() time.Time { return now }
	return ds
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	t.Run("aggregates_user_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestDashboardService(t, NewDashboardService(db, NewInsightService(db), dashboard.DefaultOptions()), now)
		userID := testutil.NewUserID()

		testutil.CreateTestAsset(t, db, userID, models.AssetTypeStocks, "50000")
		testutil.CreateTestAsset(t, db, userID, models.AssetTypeGold, "30000")
		due := now.AddDate(0, 0, 3)
		testutil.CreateTestLiability(t, db, userID, "20000", &due)
		testutil.CreateTestGoal(t, db, userID, "1000", "250")
		for i := 0; i < 7; i++ {
			testutil.CreateTestTransaction(t, db, userID, models.TransactionTypeDividend, "10", now.AddDate(0, 0, -i))
		}
		testutil.CreateTestInsight(t, db, userID, models.InsightSourceStatic)

		// Another user's rows must not leak in.
		testutil.CreateTestAsset(t, db, testutil.NewUserID(), models.AssetTypeStocks, "999999")

		view, err := svc.GetDashboard(ctx, userID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "total_assets", view.TotalAssets, "80000")
		testutil.AssertDecimal(t, "total_liabilities", view.TotalLiabilities, "20000")
		testutil.AssertDecimal(t, "net_worth", view.NetWorth, "60000")
		if view.AllocationPercentages[models.AssetTypeStocks] != 62.5 {
			t.Errorf("expected stocks at 62.5%%, got %v", view.AllocationPercentages[models.AssetTypeStocks])
		}
		if len(view.UpcomingDues) != 1 || view.UpcomingDues[0].Status != dashboard.DueStatusPending {
			t.Errorf("expected one pending due, got %+v", view.UpcomingDues)
		}
		if len(view.Goals) != 1 || view.Goals[0].Progress != 25 {
			t.Errorf("expected one goal at 25%%, got %+v", view.Goals)
		}
		if len(view.RecentTransactions) != 5 {
			t.Errorf("expected 5 recent transactions, got %d", len(view.RecentTransactions))
		}
		if view.RecentTransactions[0].Description != "Dividend transaction" {
			t.Errorf("expected fallback description, got %q", view.RecentTransactions[0].Description)
		}
		if len(view.Insights) != 1 {
			t.Errorf("expected 1 unread insight, got %d", len(view.Insights))
		}
		if !view.GeneratedAt.Equal(now) {
			t.Errorf("expected generated_at %v, got %v", now, view.GeneratedAt)
		}
	})

	t.Run("empty_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestDashboardService(t, NewDashboardService(db, NewInsightService(db), dashboard.DefaultOptions()), now)

		view, err := svc.GetDashboard(ctx, testutil.NewUserID())
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "net_worth", view.NetWorth, "0")
		if len(view.AssetAllocation) != len(models.AssetTypes) {
			t.Errorf("expected every asset type in allocation, got %d keys", len(view.AssetAllocation))
		}
		if view.UpcomingDues == nil {
			t.Error("expected non-nil upcoming dues")
		}
	})

	t.Run("cancelled_context", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewInsightService(db), dashboard.DefaultOptions())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.GetDashboard(cancelled, testutil.NewUserID())
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})
}

func TestGetPortfolioSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDashboardService(db, NewInsightService(db), dashboard.DefaultOptions())
	userID := testutil.NewUserID()

	testutil.CreateTestAsset(t, db, userID, models.AssetTypeStocks, "1500")
	testutil.CreateTestAsset(t, db, userID, models.AssetTypeStocks, "500")

	summary, err := svc.GetPortfolioSummary(context.Background(), userID)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, "total_value", summary.TotalValue, "2000")
	testutil.AssertDecimal(t, "total_invested", summary.TotalInvested, "2000")
	if summary.HoldingsByType[models.AssetTypeStocks].Count != 2 {
		t.Errorf("expected 2 stock holdings, got %+v", summary.HoldingsByType[models.AssetTypeStocks])
	}
}

func TestGenerateInsights(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	svc := newTestDashboardService(t, NewDashboardService(db, NewInsightService(db), dashboard.DefaultOptions()), now)
	userID := testutil.NewUserID()

	testutil.CreateTestAsset(t, db, userID, models.AssetTypeCrypto, "1000")
	overdue := now.AddDate(0, 0, -2)
	testutil.CreateTestLiability(t, db, userID, "5000", &overdue)
	testutil.CreateTestInsight(t, db, userID, models.InsightSourceStatic)

	first, err := svc.GenerateInsights(context.Background(), userID)
	testutil.AssertNoError(t, err)
	if len(first) == 0 {
		t.Fatal("expected generated insights")
	}

	second, err := svc.GenerateInsights(context.Background(), userID)
	testutil.AssertNoError(t, err)

	var generated int64
	db.Model(&models.Insight{}).Where("user_id = ? AND source = ?", userID, models.InsightSourceGenerated).Count(&generated)
	if int(generated) != len(second) {
		t.Errorf("expected %d generated rows after regeneration, got %d", len(second), generated)
	}

	var static int64
	db.Model(&models.Insight{}).Where("user_id = ? AND source = ?", userID, models.InsightSourceStatic).Count(&static)
	if static != 1 {
		t.Errorf("expected static insight to remain, got %d", static)
	}
}
