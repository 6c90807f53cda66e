package returns

import (
	"time"

	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

// SIPMetrics aggregates the outcome of a systematic investment plan: a fixed
// amount invested every month, valued today.
type SIPMetrics struct {
	TotalInvested     float64  `json:"total_invested"`
	CurrentValue      float64  `json:"current_value"`
	AbsoluteReturn    float64  `json:"absolute_return"`
	AbsoluteReturnPct float64  `json:"absolute_return_pct"`
	XIRRPct           *float64 `json:"xirr,omitempty"`
}

// SIPReturns computes invested total, absolute return, and XIRR for a SIP of
// monthly installments ending at asOf. Installments are modelled as monthly
// outflows 30 days apart, with the final value as a single inflow at asOf.
// The XIRR field is nil when the rate cannot be computed.
func SIPReturns(monthlyInvestment float64, months int, finalValue float64, asOf time.Time) SIPMetrics {
	totalInvested := monthlyInvestment * float64(months)

	flows := make([]model.CashFlow, 0, months+1)
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	for i := 0; i < months; i++ {
		flows = append(flows, model.CashFlow{
			Date:   monthStart.AddDate(0, 0, -30*i),
			Amount: -monthlyInvestment,
		})
	}
	flows = append(flows, model.CashFlow{Date: asOf, Amount: finalValue})

	metrics := SIPMetrics{
		TotalInvested:     totalInvested,
		CurrentValue:      finalValue,
		AbsoluteReturn:    finalValue - totalInvested,
		AbsoluteReturnPct: AbsoluteReturn(totalInvested, finalValue),
	}

	if rate, err := XIRR(flows, DefaultGuess); err == nil {
		pct := rate * 100
		metrics.XIRRPct = &pct
	}

	return metrics
}
