package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wealthtracker/internal/models"
)

var now = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dayOffset(days int) *time.Time {
	t := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &t
}

func asset(t models.AssetType, value string) models.Asset {
	return models.Asset{Type: t, CurrentValue: dec(value)}
}

func liability(name, outstanding string, due *time.Time) models.Liability {
	return models.Liability{Base: models.Base{ID: name}, Name: name, OutstandingAmount: dec(outstanding), NextDueDate: due}
}

func TestNetWorth(t *testing.T) {
	t.Run("example", func(t *testing.T) {
		got := NetWorth(
			[]models.Asset{asset(models.AssetTypeStocks, "100000")},
			[]models.Liability{liability("car", "40000", nil)},
		)
		if !got.Equal(dec("60000")) {
			t.Errorf("expected 60000, got %s", got)
		}
	})

	t.Run("sums_every_row", func(t *testing.T) {
		assets := []models.Asset{
			asset(models.AssetTypeStocks, "1500.50"),
			asset(models.AssetTypeGold, "2499.50"),
			asset(models.AssetTypeCrypto, "0.01"),
		}
		liabilities := []models.Liability{
			liability("a", "1000", nil),
			liability("b", "500.25", nil),
		}
		got := NetWorth(assets, liabilities)
		want := TotalAssets(assets).Sub(TotalLiabilities(liabilities))
		if !got.Equal(want) || !got.Equal(dec("2499.76")) {
			t.Errorf("expected 2499.76, got %s", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := NetWorth(nil, nil); !got.IsZero() {
			t.Errorf("expected 0, got %s", got)
		}
	})

	t.Run("negative", func(t *testing.T) {
		got := NetWorth(nil, []models.Liability{liability("loan", "250000", nil)})
		if !got.Equal(dec("-250000")) {
			t.Errorf("expected -250000, got %s", got)
		}
	})
}

func TestAllocation(t *testing.T) {
	t.Run("zero_fills_all_types", func(t *testing.T) {
		alloc := Allocation(nil)
		if len(alloc) != 8 {
			t.Fatalf("expected 8 keys, got %d", len(alloc))
		}
		for _, typ := range models.AssetTypes {
			v, ok := alloc[typ]
			if !ok {
				t.Errorf("missing key %s", typ)
			}
			if !v.IsZero() {
				t.Errorf("expected zero for %s, got %s", typ, v)
			}
		}
	})

	t.Run("sum_matches_total", func(t *testing.T) {
		assets := []models.Asset{
			asset(models.AssetTypeStocks, "100"),
			asset(models.AssetTypeStocks, "250"),
			asset(models.AssetTypePPF, "1000"),
			asset(models.AssetTypeRealEstate, "5000000"),
		}
		alloc := Allocation(assets)
		if !alloc[models.AssetTypeStocks].Equal(dec("350")) {
			t.Errorf("expected stocks 350, got %s", alloc[models.AssetTypeStocks])
		}
		sum := decimal.Zero
		for _, v := range alloc {
			sum = sum.Add(v)
		}
		if !sum.Equal(TotalAssets(assets)) {
			t.Errorf("allocation sum %s != total %s", sum, TotalAssets(assets))
		}
	})

	t.Run("unknown_type_kept_for_sum", func(t *testing.T) {
		assets := []models.Asset{asset("art", "700"), asset(models.AssetTypeGold, "300")}
		alloc := Allocation(assets)
		if len(alloc) != 9 {
			t.Errorf("expected 9 keys, got %d", len(alloc))
		}
		if !alloc["art"].Equal(dec("700")) {
			t.Errorf("expected art 700, got %s", alloc["art"])
		}
	})
}

func TestAllocationPercentages(t *testing.T) {
	alloc := Allocation([]models.Asset{
		asset(models.AssetTypeStocks, "300"),
		asset(models.AssetTypeBonds, "100"),
	})
	pct := AllocationPercentages(alloc)
	if pct[models.AssetTypeStocks] != 75 || pct[models.AssetTypeBonds] != 25 {
		t.Errorf("unexpected percentages: %v", pct)
	}
	if pct[models.AssetTypeGold] != 0 {
		t.Errorf("expected 0 for gold, got %v", pct[models.AssetTypeGold])
	}

	empty := AllocationPercentages(Allocation(nil))
	for typ, v := range empty {
		if v != 0 {
			t.Errorf("expected 0 for %s, got %v", typ, v)
		}
	}
}

func TestUpcomingDues(t *testing.T) {
	window := 30 * 24 * time.Hour

	t.Run("today_is_pending_yesterday_is_overdue", func(t *testing.T) {
		dues := UpcomingDues([]models.Liability{
			liability("today", "1000", dayOffset(0)),
			liability("yesterday", "1000", dayOffset(-1)),
		}, now, window)
		if len(dues) != 2 {
			t.Fatalf("expected 2 dues, got %d", len(dues))
		}
		byID := map[string]UpcomingDue{}
		for _, d := range dues {
			byID[d.LiabilityID] = d
		}
		if byID["today"].Status != DueStatusPending {
			t.Errorf("due today should be pending, got %s", byID["today"].Status)
		}
		if byID["today"].DaysUntilDue != 0 {
			t.Errorf("expected 0 days, got %d", byID["today"].DaysUntilDue)
		}
		if byID["yesterday"].Status != DueStatusOverdue {
			t.Errorf("due yesterday should be overdue, got %s", byID["yesterday"].Status)
		}
		if byID["yesterday"].DaysUntilDue != -1 {
			t.Errorf("expected -1 days, got %d", byID["yesterday"].DaysUntilDue)
		}
	})

	t.Run("non_utc_zones_compare_by_utc_day", func(t *testing.T) {
		newYork := time.FixedZone("EST", -5*60*60)
		tokyo := time.FixedZone("JST", 9*60*60)
		today := dayOffset(0).In(newYork)
		yesterday := dayOffset(-1).In(tokyo)

		for _, clock := range []time.Time{now, now.In(newYork), time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC).In(newYork)} {
			dues := UpcomingDues([]models.Liability{
				liability("today", "1000", &today),
				liability("yesterday", "1000", &yesterday),
			}, clock, window)
			byID := map[string]UpcomingDue{}
			for _, d := range dues {
				byID[d.LiabilityID] = d
			}
			if got := byID["today"]; got.Status != DueStatusPending || got.DaysUntilDue != 0 {
				t.Errorf("clock %s: due today = %s/%d, want pending/0", clock, got.Status, got.DaysUntilDue)
			}
			if got := byID["yesterday"]; got.Status != DueStatusOverdue || got.DaysUntilDue != -1 {
				t.Errorf("clock %s: due yesterday = %s/%d, want overdue/-1", clock, got.Status, got.DaysUntilDue)
			}
		}
	})

	t.Run("window_boundary", func(t *testing.T) {
		dues := UpcomingDues([]models.Liability{
			liability("edge", "1", dayOffset(30)),
			liability("beyond", "1", dayOffset(31)),
			liability("undated", "1", nil),
		}, now, window)
		if len(dues) != 1 || dues[0].LiabilityID != "edge" {
			t.Fatalf("expected only the day-30 liability, got %+v", dues)
		}
		if dues[0].Status != DueStatusPending {
			t.Errorf("expected pending, got %s", dues[0].Status)
		}
	})

	t.Run("sorted_and_amount_fallback", func(t *testing.T) {
		withEMI := liability("emi", "500000", dayOffset(10))
		withEMI.MonthlyPayment = dec("12000")
		dues := UpcomingDues([]models.Liability{
			withEMI,
			liability("card", "4500", dayOffset(2)),
		}, now, window)
		if len(dues) != 2 {
			t.Fatalf("expected 2 dues, got %d", len(dues))
		}
		if dues[0].LiabilityID != "card" || dues[1].LiabilityID != "emi" {
			t.Errorf("expected earliest first, got %s then %s", dues[0].LiabilityID, dues[1].LiabilityID)
		}
		if !dues[0].Amount.Equal(dec("4500")) {
			t.Errorf("expected outstanding fallback 4500, got %s", dues[0].Amount)
		}
		if !dues[1].Amount.Equal(dec("12000")) {
			t.Errorf("expected monthly payment 12000, got %s", dues[1].Amount)
		}
	})

	t.Run("empty_is_non_nil", func(t *testing.T) {
		dues := UpcomingDues(nil, now, window)
		if dues == nil || len(dues) != 0 {
			t.Errorf("expected empty slice, got %v", dues)
		}
	})
}

func TestGoalProgress(t *testing.T) {
	full := &models.Goal{TargetAmount: dec("50000"), CurrentAmount: dec("50000")}
	if got := GoalProgress(full); got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
	empty := &models.Goal{TargetAmount: dec("50000"), CurrentAmount: decimal.Zero}
	if got := GoalProgress(empty); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestRecentTransactions(t *testing.T) {
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{Base: models.Base{ID: "oldest"}, Type: models.TransactionTypeBuy, Date: base, Description: "Bought INFY"},
		{Base: models.Base{ID: "newest"}, Type: models.TransactionTypeDividend, Date: base.AddDate(0, 0, 3)},
		{Base: models.Base{ID: "middle"}, Type: models.TransactionTypeSell, Date: base.AddDate(0, 0, 1), Description: "  "},
	}

	got := RecentTransactions(txs, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(got))
	}
	if got[0].ID != "newest" || got[1].ID != "middle" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Description != "Dividend transaction" {
		t.Errorf("expected fallback description, got %q", got[0].Description)
	}
	if got[1].Description != "Sell transaction" {
		t.Errorf("expected fallback description, got %q", got[1].Description)
	}
	if txs[1].Description != "" {
		t.Error("input slice must not be modified")
	}

	all := RecentTransactions(txs, 0)
	if len(all) != 3 {
		t.Errorf("expected no cap with n=0, got %d", len(all))
	}
	if all[2].Description != "Bought INFY" {
		t.Errorf("existing description should pass through, got %q", all[2].Description)
	}
}

func TestBuild(t *testing.T) {
	in := Input{
		Assets: []models.Asset{
			asset(models.AssetTypeMutualFunds, "80000"),
			asset(models.AssetTypeFixedDeposits, "20000"),
		},
		Liabilities: []models.Liability{liability("card", "40000", dayOffset(5))},
		Goals: []models.Goal{
			{Name: "Vacation", TargetAmount: dec("10000"), CurrentAmount: dec("2500")},
		},
		Transactions: []models.Transaction{{Type: models.TransactionTypeDeposit, Date: now}},
	}

	v := Build(in, now, DefaultOptions())

	if !v.NetWorth.Equal(dec("60000")) {
		t.Errorf("expected net worth 60000, got %s", v.NetWorth)
	}
	if !v.TotalAssets.Equal(dec("100000")) || !v.TotalLiabilities.Equal(dec("40000")) {
		t.Errorf("unexpected totals %s / %s", v.TotalAssets, v.TotalLiabilities)
	}
	if v.AllocationPercentages[models.AssetTypeMutualFunds] != 80 {
		t.Errorf("expected 80%% mutual funds, got %v", v.AllocationPercentages[models.AssetTypeMutualFunds])
	}
	if len(v.UpcomingDues) != 1 || v.UpcomingDues[0].DaysUntilDue != 5 {
		t.Errorf("unexpected dues %+v", v.UpcomingDues)
	}
	if len(v.Goals) != 1 || v.Goals[0].Progress != 25 {
		t.Errorf("expected goal progress 25, got %+v", v.Goals)
	}
	if in.Goals[0].Progress != 0 {
		t.Error("Build must not modify input goals")
	}
	if len(v.RecentTransactions) != 1 || v.RecentTransactions[0].Description != "Deposit transaction" {
		t.Errorf("unexpected recent transactions %+v", v.RecentTransactions)
	}
	if v.Insights == nil {
		t.Error("insights should be an empty slice, not nil")
	}
	if !v.GeneratedAt.Equal(now) {
		t.Errorf("expected generated_at %v, got %v", now, v.GeneratedAt)
	}
}

func TestPortfolio(t *testing.T) {
	assets := []models.Asset{
		{Type: models.AssetTypeStocks, RiskLevel: models.RiskLevelHigh, Quantity: dec("10"), AveragePrice: dec("100"), CurrentValue: dec("1500")},
		{Type: models.AssetTypeStocks, RiskLevel: models.RiskLevelHigh, Quantity: dec("5"), AveragePrice: dec("200"), CurrentValue: dec("900")},
		{Type: models.AssetTypeGold, RiskLevel: models.RiskLevelLow, Quantity: dec("1"), AveragePrice: dec("600"), CurrentValue: dec("600")},
	}
	s := Portfolio(assets)
	if !s.TotalValue.Equal(dec("3000")) {
		t.Errorf("expected total value 3000, got %s", s.TotalValue)
	}
	if !s.TotalInvested.Equal(dec("2600")) {
		t.Errorf("expected invested 2600, got %s", s.TotalInvested)
	}
	if !s.UnrealizedChange.Equal(dec("400")) {
		t.Errorf("expected change 400, got %s", s.UnrealizedChange)
	}
	if s.UnrealizedChangePct != 15.38 {
		t.Errorf("expected 15.38%%, got %v", s.UnrealizedChangePct)
	}
	stocks := s.HoldingsByType[models.AssetTypeStocks]
	if stocks.Count != 2 || !stocks.Value.Equal(dec("2400")) {
		t.Errorf("unexpected stocks summary %+v", stocks)
	}
	if s.HoldingsByRiskLevel[models.RiskLevelLow].Count != 1 {
		t.Errorf("expected one low-risk holding")
	}
}
