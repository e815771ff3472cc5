package testutil_test

import (
	"testing"
	"time"

	"wealthtracker/internal/errors"
	"wealthtracker/internal/models"
	"wealthtracker/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"profiles", "assets", "liabilities", "goals", "transactions", "insights", "net_worth_snapshots", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	db1 := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db1)
	db2 := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db2)

	testutil.CreateTestProfile(t, db1)

	var count int64
	if err := db2.Model(&models.Profile{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected second database to be empty, got %d rows", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	profile := testutil.CreateTestProfile(t, db)
	if profile.ID == "" {
		t.Fatal("profile should have an ID")
	}

	asset := testutil.CreateTestAsset(t, db, profile.ID, models.AssetTypeGold, "5000")
	testutil.AssertDecimal(t, "current value", asset.CurrentValue, "5000")

	due := time.Now().AddDate(0, 0, 7)
	liability := testutil.CreateTestLiability(t, db, profile.ID, "40000", &due)
	testutil.AssertDecimal(t, "outstanding", liability.OutstandingAmount, "40000")

	goal := testutil.CreateTestGoal(t, db, profile.ID, "100000", "25000")
	if goal.ID == "" {
		t.Error("goal should have an ID")
	}

	var reloaded models.Goal
	if err := db.First(&reloaded, "id = ?", goal.ID).Error; err != nil {
		t.Fatalf("reload goal: %v", err)
	}
	if reloaded.Progress != 25 {
		t.Errorf("expected progress 25 after load, got %v", reloaded.Progress)
	}

	tx := testutil.CreateTestTransaction(t, db, profile.ID, models.TransactionTypeBuy, "1000", time.Now())
	testutil.AssertDecimal(t, "amount", tx.Amount, "1000")
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrAssetNotFound, "custom message")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
