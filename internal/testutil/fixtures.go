package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wealthtracker/internal/models"
	"wealthtracker/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

func nextName(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, nextID())
}

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr is Dec for optional fields.
func DecPtr(s string) *decimal.Decimal {
	v := Dec(s)
	return &v
}

// NewUserID returns a fresh auth user id. Users live in the auth provider,
// so tests only need the identifier.
func NewUserID() string {
	return uuid.New()
}

// CreateTestProfile creates a profile for a fresh user id.
func CreateTestProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()

	n := nextID()
	profile := &models.Profile{
		Base:         models.Base{ID: NewUserID()},
		Email:        fmt.Sprintf("user%d@test.com", n),
		FullName:     fmt.Sprintf("Test User %d", n),
		Currency:     "INR",
		RiskAppetite: models.RiskAppetiteModerate,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestAsset creates an asset of the given type and current value.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, assetType models.AssetType, currentValue string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:       userID,
		Type:         assetType,
		Name:         nextName("Test Asset "),
		Quantity:     Dec("10"),
		AveragePrice: Dec("100"),
		CurrentValue: Dec(currentValue),
		RiskLevel:    models.RiskLevelMedium,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestLiability creates a liability with the given outstanding amount and due date.
func CreateTestLiability(t *testing.T, db *gorm.DB, userID string, outstanding string, nextDue *time.Time) *models.Liability {
	t.Helper()

	liability := &models.Liability{
		UserID:            userID,
		Type:              models.LiabilityTypePersonalLoan,
		Name:              nextName("Test Loan "),
		PrincipalAmount:   Dec(outstanding).Mul(Dec("2")),
		OutstandingAmount: Dec(outstanding),
		InterestRate:      Dec("10.5"),
		NextDueDate:       nextDue,
	}
	if err := db.Create(liability).Error; err != nil {
		t.Fatalf("failed to create test liability: %v", err)
	}
	return liability
}

// CreateTestGoal creates a goal with the given target and saved amounts.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target, current string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:        userID,
		Name:          nextName("Test Goal "),
		TargetAmount:  Dec(target),
		CurrentAmount: Dec(current),
		Priority:      models.PriorityMedium,
		Category:      models.GoalCategoryOther,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestTransaction creates a transaction of the given type, amount and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID: userID,
		Type:   txType,
		Amount: Dec(amount),
		Date:   date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestInsight creates a static insight.
func CreateTestInsight(t *testing.T, db *gorm.DB, userID string, source models.InsightSource) *models.Insight {
	t.Helper()

	insight := &models.Insight{
		UserID:      userID,
		Type:        models.InsightTypeTip,
		Priority:    models.PriorityLow,
		Title:       nextName("Test Insight "),
		Description: "Review your portfolio quarterly.",
		Source:      source,
	}
	if err := db.Create(insight).Error; err != nil {
		t.Fatalf("failed to create test insight: %v", err)
	}
	return insight
}
