package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"wealthtracker/internal/dashboard"
	"wealthtracker/internal/models"
	"wealthtracker/internal/pagination"
)

// ProfileUpdate holds the profile fields a user may change. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName     *string
	Currency     *string
	RiskAppetite *models.RiskAppetite
}

// ProfileServicer defines the contract for profile-related business logic.
type ProfileServicer interface {
	GetOrCreateProfile(ctx context.Context, userID, email string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.Profile, error)
}

// AssetInput holds the fields for a new asset.
type AssetInput struct {
	Type         models.AssetType
	Name         string
	Symbol       string
	Quantity     decimal.Decimal
	AveragePrice decimal.Decimal
	CurrentPrice decimal.Decimal
	CurrentValue *decimal.Decimal // nil derives quantity × current price
	Institution  string
	RiskLevel    models.RiskLevel
	PurchaseDate *time.Time
	Notes        string
}

// AssetUpdate holds the asset fields to change. Nil fields are left untouched.
type AssetUpdate struct {
	Type         *models.AssetType
	Name         *string
	Symbol       *string
	Quantity     *decimal.Decimal
	AveragePrice *decimal.Decimal
	CurrentPrice *decimal.Decimal
	CurrentValue *decimal.Decimal
	Institution  *string
	RiskLevel    *models.RiskLevel
	PurchaseDate *time.Time
	Notes        *string
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(ctx context.Context, userID string, in AssetInput) (*models.Asset, error)
	GetUserAssets(ctx context.Context, userID string, page pagination.PageRequest, assetType *models.AssetType) (*pagination.PageResponse[models.Asset], error)
	GetAssetByID(ctx context.Context, userID, assetID string) (*models.Asset, error)
	UpdateAsset(ctx context.Context, userID, assetID string, update AssetUpdate) (*models.Asset, error)
	DeleteAsset(ctx context.Context, userID, assetID string) error
}

// LiabilityInput holds the fields for a new liability.
type LiabilityInput struct {
	Type              models.LiabilityType
	Name              string
	Lender            string
	PrincipalAmount   decimal.Decimal
	OutstandingAmount decimal.Decimal
	InterestRate      decimal.Decimal
	MonthlyPayment    decimal.Decimal
	NextDueDate       *time.Time
	Notes             string
}

// LiabilityUpdate holds the liability fields to change. Nil fields are left untouched.
type LiabilityUpdate struct {
	Type              *models.LiabilityType
	Name              *string
	Lender            *string
	PrincipalAmount   *decimal.Decimal
	OutstandingAmount *decimal.Decimal
	InterestRate      *decimal.Decimal
	MonthlyPayment    *decimal.Decimal
	NextDueDate       *time.Time
	Notes             *string
}

// LiabilityServicer defines the contract for liability-related business logic.
type LiabilityServicer interface {
	CreateLiability(ctx context.Context, userID string, in LiabilityInput) (*models.Liability, error)
	GetUserLiabilities(ctx context.Context, userID string, page pagination.PageRequest, liabilityType *models.LiabilityType) (*pagination.PageResponse[models.Liability], error)
	GetLiabilityByID(ctx context.Context, userID, liabilityID string) (*models.Liability, error)
	UpdateLiability(ctx context.Context, userID, liabilityID string, update LiabilityUpdate) (*models.Liability, error)
	DeleteLiability(ctx context.Context, userID, liabilityID string) error
}

// GoalInput holds the fields for a new goal.
type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Priority      models.Priority
	Category      models.GoalCategory
	Description   string
}

// GoalUpdate holds the goal fields to change. Nil fields are left untouched.
type GoalUpdate struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
	Priority      *models.Priority
	Category      *models.GoalCategory
	Description   *string
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(ctx context.Context, userID string, in GoalInput) (*models.Goal, error)
	GetUserGoals(ctx context.Context, userID string, page pagination.PageRequest, category *models.GoalCategory) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(ctx context.Context, userID, goalID string) (*models.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, update GoalUpdate) (*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// TransactionInput holds the fields for a new transaction.
type TransactionInput struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	AssetID     *string
	LiabilityID *string
	GoalID      *string
}

// TransactionUpdate holds the transaction fields to change. Nil fields are left untouched.
type TransactionUpdate struct {
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate    *time.Time
	ToDate      *time.Time
	Type        *models.TransactionType
	AssetID     *string
	LiabilityID *string
	GoalID      *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error)
	GetUserTransactions(ctx context.Context, userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// InsightServicer defines the contract for insight-related business logic.
type InsightServicer interface {
	GetUserInsights(ctx context.Context, userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Insight], error)
	MarkInsightRead(ctx context.Context, userID, insightID string) (*models.Insight, error)
	DeleteInsight(ctx context.Context, userID, insightID string) error
	ReplaceGeneratedInsights(ctx context.Context, userID string, insights []models.Insight) ([]models.Insight, error)
}

// DashboardServicer builds the aggregate views.
type DashboardServicer interface {
	GetDashboard(ctx context.Context, userID string) (*dashboard.View, error)
	GetPortfolioSummary(ctx context.Context, userID string) (*dashboard.PortfolioSummary, error)
	GenerateInsights(ctx context.Context, userID string) ([]models.Insight, error)
}

// NetWorthSnapshotServicer defines the contract for net worth history.
type NetWorthSnapshotServicer interface {
	ComputeAndRecordSnapshots(ctx context.Context, recordedAt time.Time) (int, error)
	GetSnapshots(ctx context.Context, userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

// ChangeNotifier is told whenever a user's financial records change.
type ChangeNotifier interface {
	NotifyChange(userID string)
}
