package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"

	"wealthtracker/internal/models"
)

// concentrationLimit is the share of assets above which one type is flagged.
var concentrationLimit = decimal.NewFromInt(50)

// insightRule inspects a view and returns zero or more insights.
type insightRule func(v *View) []models.Insight

var insightRules = []insightRule{
	overdueRule,
	negativeNetWorthRule,
	concentrationRule,
	goalAchievedRule,
	emergencyFundRule,
}

// GenerateInsights evaluates the template rules against a built view. The
// returned insights have Source set to generated and no owner or ID.
func GenerateInsights(v View) []models.Insight {
	out := make([]models.Insight, 0)
	for _, rule := range insightRules {
		out = append(out, rule(&v)...)
	}
	for i := range out {
		out[i].Source = models.InsightSourceGenerated
	}
	return out
}

func overdueRule(v *View) []models.Insight {
	var out []models.Insight
	for _, due := range v.UpcomingDues {
		if due.Status != DueStatusOverdue {
			continue
		}
		out = append(out, models.Insight{
			Type:        models.InsightTypeWarning,
			Priority:    models.PriorityHigh,
			Title:       fmt.Sprintf("%s payment is overdue", due.Name),
			Description: fmt.Sprintf("A payment of %s was due on %s. Paying late can add penalties and hurt your credit score.", due.Amount.StringFixed(2), due.DueDate.Format("02 Jan 2006")),
		})
	}
	return out
}

func negativeNetWorthRule(v *View) []models.Insight {
	if !v.NetWorth.IsNegative() {
		return nil
	}
	return []models.Insight{{
		Type:        models.InsightTypeWarning,
		Priority:    models.PriorityHigh,
		Title:       "Liabilities exceed assets",
		Description: fmt.Sprintf("Your outstanding debt is %s more than the value of your assets. Consider prioritising high-interest loans.", v.NetWorth.Abs().StringFixed(2)),
	}}
}

func concentrationRule(v *View) []models.Insight {
	if v.TotalAssets.IsZero() {
		return nil
	}
	var out []models.Insight
	for _, t := range models.AssetTypes {
		share := v.AssetAllocation[t].Div(v.TotalAssets).Mul(models.Hundred)
		if share.GreaterThan(concentrationLimit) {
			out = append(out, models.Insight{
				Type:        models.InsightTypeWarning,
				Priority:    models.PriorityMedium,
				Title:       fmt.Sprintf("Portfolio concentrated in %s", assetTypeLabel(t)),
				Description: fmt.Sprintf("%s%% of your assets are in %s. Diversifying across asset classes lowers risk.", share.StringFixed(1), assetTypeLabel(t)),
			})
		}
	}
	return out
}

func goalAchievedRule(v *View) []models.Insight {
	var out []models.Insight
	for i := range v.Goals {
		if v.Goals[i].Progress < 100 {
			continue
		}
		out = append(out, models.Insight{
			Type:        models.InsightTypeAchievement,
			Priority:    models.PriorityLow,
			Title:       fmt.Sprintf("Goal reached: %s", v.Goals[i].Name),
			Description: "You have saved the full target amount for this goal.",
		})
	}
	return out
}

func emergencyFundRule(v *View) []models.Insight {
	for i := range v.Goals {
		if v.Goals[i].Category == models.GoalCategoryEmergencyFund {
			return nil
		}
	}
	return []models.Insight{{
		Type:        models.InsightTypeTip,
		Priority:    models.PriorityLow,
		Title:       "Set up an emergency fund",
		Description: "Keeping three to six months of expenses aside protects your investments from forced selling.",
	}}
}

var assetTypeLabels = map[models.AssetType]string{
	models.AssetTypeStocks:        "stocks",
	models.AssetTypeMutualFunds:   "mutual funds",
	models.AssetTypeFixedDeposits: "fixed deposits",
	models.AssetTypeGold:          "gold",
	models.AssetTypeCrypto:        "crypto",
	models.AssetTypeRealEstate:    "real estate",
	models.AssetTypePPF:           "PPF",
	models.AssetTypeBonds:         "bonds",
}

func assetTypeLabel(t models.AssetType) string {
	if label, ok := assetTypeLabels[t]; ok {
		return label
	}
	return string(t)
}
