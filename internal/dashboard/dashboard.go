// Package dashboard reduces a user's raw records into the dashboard
// view-model. Every function here is pure: callers fetch the rows and pass
// the clock in.
package dashboard

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wealthtracker/internal/models"
)

const day = 24 * time.Hour

// Options tunes the windows used while building a View.
type Options struct {
	// DueWindow is how far ahead a liability payment counts as upcoming.
	DueWindow time.Duration
	// RecentLimit caps RecentTransactions; zero or less means no cap.
	RecentLimit int
}

// DefaultOptions returns a 30 day due window and five recent transactions.
func DefaultOptions() Options {
	return Options{DueWindow: 30 * day, RecentLimit: 5}
}

// Input is everything the dashboard is built from.
type Input struct {
	Assets       []models.Asset
	Liabilities  []models.Liability
	Goals        []models.Goal
	Transactions []models.Transaction
	Insights     []models.Insight
}

// DueStatus tags an upcoming payment.
type DueStatus string

const (
	DueStatusPending DueStatus = "pending"
	DueStatusOverdue DueStatus = "overdue"
)

// UpcomingDue is a liability payment falling inside the due window.
type UpcomingDue struct {
	LiabilityID  string               `json:"liability_id"`
	Name         string               `json:"name"`
	Type         models.LiabilityType `json:"type"`
	Amount       decimal.Decimal      `json:"amount"`
	DueDate      time.Time            `json:"due_date"`
	DaysUntilDue int                  `json:"days_until_due"`
	Status       DueStatus            `json:"status"`
}

// View is the dashboard view-model.
type View struct {
	NetWorth              decimal.Decimal                      `json:"net_worth"`
	TotalAssets           decimal.Decimal                      `json:"total_assets"`
	TotalLiabilities      decimal.Decimal                      `json:"total_liabilities"`
	AssetAllocation       map[models.AssetType]decimal.Decimal `json:"asset_allocation"`
	AllocationPercentages map[models.AssetType]float64         `json:"allocation_percentages"`
	UpcomingDues          []UpcomingDue                        `json:"upcoming_dues"`
	Goals                 []models.Goal                        `json:"goals"`
	RecentTransactions    []models.Transaction                 `json:"recent_transactions"`
	Insights              []models.Insight                     `json:"insights"`
	GeneratedAt           time.Time                            `json:"generated_at"`
}

// Build assembles the view-model.
func Build(in Input, now time.Time, opts Options) View {
	allocation := Allocation(in.Assets)

	goals := make([]models.Goal, len(in.Goals))
	for i := range in.Goals {
		goals[i] = in.Goals[i]
		goals[i].Progress = GoalProgress(&goals[i])
	}

	insights := in.Insights
	if insights == nil {
		insights = []models.Insight{}
	}

	return View{
		NetWorth:              NetWorth(in.Assets, in.Liabilities),
		TotalAssets:           TotalAssets(in.Assets),
		TotalLiabilities:      TotalLiabilities(in.Liabilities),
		AssetAllocation:       allocation,
		AllocationPercentages: AllocationPercentages(allocation),
		UpcomingDues:          UpcomingDues(in.Liabilities, now, opts.DueWindow),
		Goals:                 goals,
		RecentTransactions:    RecentTransactions(in.Transactions, opts.RecentLimit),
		Insights:              insights,
		GeneratedAt:           now,
	}
}

// TotalAssets sums current_value over assets.
func TotalAssets(assets []models.Asset) decimal.Decimal {
	total := decimal.Zero
	for i := range assets {
		total = total.Add(assets[i].CurrentValue)
	}
	return total
}

// TotalLiabilities sums outstanding_amount over liabilities.
func TotalLiabilities(liabilities []models.Liability) decimal.Decimal {
	total := decimal.Zero
	for i := range liabilities {
		total = total.Add(liabilities[i].OutstandingAmount)
	}
	return total
}

// NetWorth is total asset value minus total outstanding liabilities.
func NetWorth(assets []models.Asset, liabilities []models.Liability) decimal.Decimal {
	return TotalAssets(assets).Sub(TotalLiabilities(liabilities))
}

// Allocation buckets current_value by asset type. Every known type is
// present; an unknown type gets its own key so the values always sum to
// TotalAssets.
func Allocation(assets []models.Asset) map[models.AssetType]decimal.Decimal {
	out := make(map[models.AssetType]decimal.Decimal, len(models.AssetTypes))
	for _, t := range models.AssetTypes {
		out[t] = decimal.Zero
	}
	for i := range assets {
		t := assets[i].Type
		prev, ok := out[t]
		if !ok {
			prev = decimal.Zero
		}
		out[t] = prev.Add(assets[i].CurrentValue)
	}
	return out
}

// AllocationPercentages converts an allocation into percentage shares
// rounded to two places. All shares are zero when the total is zero.
func AllocationPercentages(allocation map[models.AssetType]decimal.Decimal) map[models.AssetType]float64 {
	total := decimal.Zero
	for _, v := range allocation {
		total = total.Add(v)
	}

	out := make(map[models.AssetType]float64, len(allocation))
	for t, v := range allocation {
		if total.IsZero() {
			out[t] = 0
			continue
		}
		out[t] = v.Div(total).Mul(models.Hundred).Round(2).InexactFloat64()
	}
	return out
}

// UpcomingDues lists liabilities whose next due date is no later than
// window days after today, earliest first. Dates compare by UTC calendar day:
// due today is pending, due yesterday is overdue.
func UpcomingDues(liabilities []models.Liability, now time.Time, window time.Duration) []UpcomingDue {
	today := calendarDay(now)
	horizon := today.AddDate(0, 0, int(window/day))

	dues := make([]UpcomingDue, 0)
	for i := range liabilities {
		l := &liabilities[i]
		if l.NextDueDate == nil {
			continue
		}
		dueDay := calendarDay(*l.NextDueDate)
		if dueDay.After(horizon) {
			continue
		}

		status := DueStatusPending
		if dueDay.Before(today) {
			status = DueStatusOverdue
		}

		amount := l.MonthlyPayment
		if amount.IsZero() {
			amount = l.OutstandingAmount
		}

		dues = append(dues, UpcomingDue{
			LiabilityID:  l.ID,
			Name:         l.Name,
			Type:         l.Type,
			Amount:       amount,
			DueDate:      *l.NextDueDate,
			DaysUntilDue: int(math.Round(dueDay.Sub(today).Hours() / 24)),
			Status:       status,
		})
	}

	sort.SliceStable(dues, func(i, j int) bool {
		return dues[i].DueDate.Before(dues[j].DueDate)
	})
	return dues
}

// GoalProgress is current/target × 100, unclamped; zero when the target is zero.
func GoalProgress(goal *models.Goal) float64 {
	return goal.ProgressPercent()
}

// RecentTransactions returns the n most recent transactions, newest first.
// Rows are copied unchanged except that a blank description is replaced by
// "<Type> transaction".
func RecentTransactions(txs []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	for i := range sorted {
		if strings.TrimSpace(sorted[i].Description) == "" {
			sorted[i].Description = FallbackDescription(sorted[i].Type)
		}
	}
	return sorted
}

// FallbackDescription labels a transaction that was saved without one.
func FallbackDescription(t models.TransactionType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	if label == "" {
		return "Transaction"
	}
	return strings.ToUpper(label[:1]) + label[1:] + " transaction"
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
