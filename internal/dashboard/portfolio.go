package dashboard

import (
	"github.com/shopspring/decimal"

	"wealthtracker/internal/models"
)

// TypeSummary contains summary data for a single asset type.
type TypeSummary struct {
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
}

// PortfolioSummary aggregates a user's holdings.
type PortfolioSummary struct {
	TotalValue          decimal.Decimal                  `json:"total_value"`
	TotalInvested       decimal.Decimal                  `json:"total_invested"`
	UnrealizedChange    decimal.Decimal                  `json:"unrealized_change"`
	UnrealizedChangePct float64                          `json:"unrealized_change_pct"`
	HoldingsByType      map[models.AssetType]TypeSummary `json:"holdings_by_type"`
	HoldingsByRiskLevel map[models.RiskLevel]TypeSummary `json:"holdings_by_risk_level"`
}

// Portfolio summarises value, cost and unrealized change across assets.
func Portfolio(assets []models.Asset) PortfolioSummary {
	summary := PortfolioSummary{
		TotalValue:          decimal.Zero,
		TotalInvested:       decimal.Zero,
		HoldingsByType:      make(map[models.AssetType]TypeSummary),
		HoldingsByRiskLevel: make(map[models.RiskLevel]TypeSummary),
	}

	for i := range assets {
		a := &assets[i]
		summary.TotalValue = summary.TotalValue.Add(a.CurrentValue)
		summary.TotalInvested = summary.TotalInvested.Add(a.InvestedAmount())

		byType := summary.HoldingsByType[a.Type]
		byType.Value = byType.Value.Add(a.CurrentValue)
		byType.Count++
		summary.HoldingsByType[a.Type] = byType

		byRisk := summary.HoldingsByRiskLevel[a.RiskLevel]
		byRisk.Value = byRisk.Value.Add(a.CurrentValue)
		byRisk.Count++
		summary.HoldingsByRiskLevel[a.RiskLevel] = byRisk
	}

	summary.UnrealizedChange = summary.TotalValue.Sub(summary.TotalInvested)
	if !summary.TotalInvested.IsZero() {
		summary.UnrealizedChangePct = summary.UnrealizedChange.
			Div(summary.TotalInvested).Mul(models.Hundred).Round(2).InexactFloat64()
	}
	return summary
}
