package services

import (
	"context"
	"testing"
	"time"

	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
	"wealthtracker/internal/testutil"
)

func TestComputeAndRecordSnapshots(t *testing.T) {
	ctx := context.Background()
	recordedAt := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	t.Run("records_users_with_holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNetWorthSnapshotService(db)

		investor := testutil.NewUserID()
		borrower := testutil.NewUserID()
		testutil.CreateTestAsset(t, db, investor, models.AssetTypeStocks, "80000")
		testutil.CreateTestLiability(t, db, investor, "20000", nil)
		testutil.CreateTestLiability(t, db, borrower, "5000", nil)
		testutil.CreateTestProfile(t, db)

		count, err := svc.ComputeAndRecordSnapshots(ctx, recordedAt)
		testutil.AssertNoError(t, err)
		if count != 2 {
			t.Fatalf("expected 2 snapshots, got %d", count)
		}

		var snap models.NetWorthSnapshot
		db.Where("user_id = ?", investor).First(&snap)
		testutil.AssertDecimal(t, "total_assets", snap.TotalAssets, "80000")
		testutil.AssertDecimal(t, "total_liabilities", snap.TotalLiabilities, "20000")
		testutil.AssertDecimal(t, "net_worth", snap.NetWorth, "60000")

		db.Where("user_id = ?", borrower).First(&snap)
		testutil.AssertDecimal(t, "borrower net_worth", snap.NetWorth, "-5000")
	})

	t.Run("idempotent_retry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNetWorthSnapshotService(db)
		userID := testutil.NewUserID()
		asset := testutil.CreateTestAsset(t, db, userID, models.AssetTypeStocks, "1000")

		_, err := svc.ComputeAndRecordSnapshots(ctx, recordedAt)
		testutil.AssertNoError(t, err)

		db.Model(asset).Update("current_value", testutil.Dec("1500"))
		_, err = svc.ComputeAndRecordSnapshots(ctx, recordedAt)
		testutil.AssertNoError(t, err)

		var snapshots []models.NetWorthSnapshot
		db.Where("user_id = ?", userID).Find(&snapshots)
		if len(snapshots) != 1 {
			t.Fatalf("expected 1 snapshot after retry, got %d", len(snapshots))
		}
		testutil.AssertDecimal(t, "net_worth", snapshots[0].NetWorth, "1500")
	})

	t.Run("skips_deleted_holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNetWorthSnapshotService(db)
		asset := testutil.CreateTestAsset(t, db, testutil.NewUserID(), models.AssetTypeStocks, "1000")
		db.Delete(asset)

		count, err := svc.ComputeAndRecordSnapshots(ctx, recordedAt)
		testutil.AssertNoError(t, err)
		if count != 0 {
			t.Errorf("expected no snapshots, got %d", count)
		}
	})
}

func TestGetSnapshots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNetWorthSnapshotService(db)
	userID := testutil.NewUserID()
	testutil.CreateTestAsset(t, db, userID, models.AssetTypeStocks, "1000")

	ctx := context.Background()
	for d := 1; d <= 3; d++ {
		_, err := svc.ComputeAndRecordSnapshots(ctx, time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)
	}

	from := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
	result, err := svc.GetSnapshots(ctx, userID, from, to, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Fatalf("expected 2 snapshots in range, got %d", result.TotalItems)
	}
	if !result.Data[0].RecordedAt.After(result.Data[1].RecordedAt) {
		t.Error("expected newest snapshot first")
	}
}
