package service

import (
	"sort"
	"time"

	"github.com/mfolio/mf-portfolio-tracker/internal/model"
	"github.com/mfolio/mf-portfolio-tracker/internal/returns"
)

// PortfolioSummary aggregates the whole portfolio: per-instrument holdings
// plus totals, absolute return, and a portfolio-wide XIRR. XIRRPct is nil
// when the rate could not be computed (insufficient flows or
// non-convergence), never zero by accident.
type PortfolioSummary struct {
	TotalInstruments        int             `json:"total_instruments"`
	TotalInvested           float64         `json:"total_invested"`
	CurrentValue            float64         `json:"current_value"`
	TotalGainLoss           float64         `json:"total_gain_loss"`
	TotalGainLossPercentage float64         `json:"total_gain_loss_percentage"`
	XIRRPct                 *float64        `json:"xirr,omitempty"`
	Holdings                []model.Holding `json:"holdings"`
}

// ComputeSummary builds the portfolio summary as of the given date. The
// portfolio XIRR is solved over every transaction as a signed cash flow
// (buys negative, sells positive) plus a synthetic terminal inflow equal to
// the total current value at asOf.
func ComputeSummary(transactions []model.Transaction, prices map[string]float64, names map[string]string, asOf time.Time) PortfolioSummary {
	holdings := ComputeHoldings(transactions, prices, names)

	var totalInvested, totalCurrent float64
	for _, h := range holdings {
		totalInvested += h.InvestedAmount
		totalCurrent += h.CurrentValue
	}

	summary := PortfolioSummary{
		TotalInstruments:        len(holdings),
		TotalInvested:           round(totalInvested),
		CurrentValue:            round(totalCurrent),
		TotalGainLoss:           round(totalCurrent - totalInvested),
		TotalGainLossPercentage: round(returns.AbsoluteReturn(totalInvested, totalCurrent)),
		Holdings:                holdings,
	}

	flows := make([]model.CashFlow, 0, len(transactions)+1)
	for _, t := range transactions {
		flows = append(flows, model.CashFlow{Date: t.Date, Amount: t.SignedAmount()})
	}
	flows = append(flows, model.CashFlow{Date: asOf, Amount: totalCurrent})

	if rate, err := returns.XIRR(flows, returns.DefaultGuess); err == nil {
		pct := round(rate * 100)
		summary.XIRRPct = &pct
	}

	return summary
}

// TopPerformers returns up to limit holdings ranked by gain/loss percentage
// descending. Holdings without a positive invested amount or current value
// are excluded since their return percentage is meaningless.
func TopPerformers(holdings []model.Holding, limit int) []model.Holding {
	var valid []model.Holding
	for _, h := range holdings {
		if h.InvestedAmount > 0 && h.CurrentValue > 0 {
			valid = append(valid, h)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].GainLossPercentage > valid[j].GainLossPercentage
	})

	if limit > 0 && len(valid) > limit {
		valid = valid[:limit]
	}
	return valid
}
