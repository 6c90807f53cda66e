package service

import (
	"sort"

	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

// ComputeHoldings derives the current position per instrument by replaying
// the transaction log in date order. Buys add quantity and invested amount;
// sells reduce quantity and shrink the invested amount proportionally at the
// average cost in effect at the time of sale.
//
// This is the average-cost holdings view. It deliberately diverges from the
// FIFO lot accounting in the gains package, which drives tax reporting; the
// two models answer different questions and are kept separate.
//
// Instruments whose quantity has reached zero or below are dropped. The
// result is sorted by current value descending. The input slice is not
// modified.
func ComputeHoldings(transactions []model.Transaction, prices map[string]float64, names map[string]string) []model.Holding {
	ordered := make([]model.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	type position struct {
		quantity float64
		invested float64
	}
	positions := make(map[string]*position)
	var order []string

	for _, t := range ordered {
		pos, ok := positions[t.InstrumentID]
		if !ok {
			pos = &position{}
			positions[t.InstrumentID] = pos
			order = append(order, t.InstrumentID)
		}

		switch t.Direction {
		case model.Buy:
			pos.quantity += t.Quantity
			pos.invested += t.Amount
		case model.Sell:
			pos.quantity -= t.Quantity
			if pos.quantity > 0 {
				averageCost := pos.invested / (pos.quantity + t.Quantity)
				pos.invested -= t.Quantity * averageCost
			} else {
				pos.invested = 0
			}
		}
	}

	var holdings []model.Holding
	for _, id := range order {
		pos := positions[id]
		if pos.quantity <= 0 {
			continue
		}

		currentPrice := prices[id]
		averageCost := 0.0
		if pos.quantity > 0 {
			averageCost = pos.invested / pos.quantity
		}
		currentValue := pos.quantity * currentPrice
		gainLoss := currentValue - pos.invested
		gainLossPct := 0.0
		if pos.invested > 0 {
			gainLossPct = gainLoss / pos.invested * 100
		}

		holdings = append(holdings, model.Holding{
			InstrumentID:       id,
			Name:               names[id],
			TotalQuantity:      roundTo(pos.quantity, 3),
			AverageCost:        roundTo(averageCost, 4),
			InvestedAmount:     round(pos.invested),
			CurrentPrice:       roundTo(currentPrice, 4),
			CurrentValue:       round(currentValue),
			GainLoss:           round(gainLoss),
			GainLossPercentage: round(gainLossPct),
		})
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].CurrentValue > holdings[j].CurrentValue
	})
	return holdings
}
