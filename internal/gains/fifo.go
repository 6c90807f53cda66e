// Package gains implements the FIFO capital-gains engine: sells are matched
// against the oldest open buy lots per instrument, producing one realized
// gain record per lot consumption, classified short or long term by holding
// period. Matching operates on private lot copies; the caller's transaction
// log is never mutated.
package gains

import (
	"fmt"
	"sort"
	"time"

	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

// Long-term holding thresholds in days, by asset class.
const (
	EquityLongTermDays = 365
	DebtLongTermDays   = 1095
)

// lot is a working copy of a buy transaction inside a FIFO queue. Only the
// remaining quantity is mutated as sells consume it.
type lot struct {
	date      time.Time
	unitPrice float64
	remaining float64
}

// Realized matches every sell against the oldest open buy lots for its
// instrument and returns one CapitalGain record per (sell, lot) pairing,
// in sell-date order per instrument. longTermDays is the holding-period
// threshold at or above which a gain classifies as long term.
//
// A sell that exceeds the total open lot quantity for its instrument is a
// data-consistency violation and returns apperrors.ErrSellExceedsHoldings
// with no partial result.
func Realized(transactions []model.Transaction, longTermDays int) ([]model.CapitalGain, error) {
	var records []model.CapitalGain

	for _, instrumentID := range instrumentOrder(transactions) {
		buys, sells := partition(transactions, instrumentID)

		queue := make([]lot, len(buys))
		for i, b := range buys {
			queue[i] = lot{date: b.Date, unitPrice: b.UnitPrice, remaining: b.Quantity}
		}

		for _, sell := range sells {
			outstanding := sell.Quantity

			for outstanding > 0 && len(queue) > 0 {
				head := &queue[0]
				matched := min(outstanding, head.remaining)

				records = append(records, matchRecord(instrumentID, head, sell, matched, sell.Date, longTermDays))

				outstanding -= matched
				head.remaining -= matched
				if head.remaining <= 0 {
					queue = queue[1:]
				}
			}

			if outstanding > 0 {
				return nil, fmt.Errorf("%w: instrument %s sold %v units on %s with %v unmatched",
					apperrors.ErrSellExceedsHoldings, instrumentID, sell.Quantity,
					sell.Date.Format("2006-01-02"), outstanding)
			}
		}
	}

	return records, nil
}

// Unrealized values the lots still open after replaying all sells against
// the given current price, as of the given date. Each remaining lot yields
// one record classified by its holding period at asOf; the record's sale
// date is asOf and its sale price the current price. Open sells exceeding
// the lots are reported the same way as in Realized.
func Unrealized(transactions []model.Transaction, currentPrice float64, asOf time.Time, longTermDays int) ([]model.CapitalGain, error) {
	var records []model.CapitalGain

	for _, instrumentID := range instrumentOrder(transactions) {
		buys, sells := partition(transactions, instrumentID)

		queue := make([]lot, len(buys))
		for i, b := range buys {
			queue[i] = lot{date: b.Date, unitPrice: b.UnitPrice, remaining: b.Quantity}
		}

		for _, sell := range sells {
			outstanding := sell.Quantity
			for outstanding > 0 && len(queue) > 0 {
				head := &queue[0]
				matched := min(outstanding, head.remaining)
				outstanding -= matched
				head.remaining -= matched
				if head.remaining <= 0 {
					queue = queue[1:]
				}
			}
			if outstanding > 0 {
				return nil, fmt.Errorf("%w: instrument %s sold %v units on %s with %v unmatched",
					apperrors.ErrSellExceedsHoldings, instrumentID, sell.Quantity,
					sell.Date.Format("2006-01-02"), outstanding)
			}
		}

		for i := range queue {
			if queue[i].remaining <= 0 {
				continue
			}
			records = append(records, matchRecord(instrumentID, &queue[i], model.Transaction{
				UnitPrice: currentPrice,
				Date:      asOf,
			}, queue[i].remaining, asOf, longTermDays))
		}
	}

	return records, nil
}

// matchRecord builds the gain record for quantity units taken from a lot at
// the sell price on saleDate.
func matchRecord(instrumentID string, l *lot, sell model.Transaction, quantity float64, saleDate time.Time, longTermDays int) model.CapitalGain {
	holdingDays := int(saleDate.Sub(l.date).Hours() / 24)

	purchaseAmount := quantity * l.unitPrice
	gain := quantity * (sell.UnitPrice - l.unitPrice)

	gainPct := 0.0
	if purchaseAmount > 0 {
		gainPct = gain / purchaseAmount * 100
	}

	classification := model.ShortTerm
	if holdingDays >= longTermDays {
		classification = model.LongTerm
	}

	return model.CapitalGain{
		SaleDate:           saleDate,
		InstrumentID:       instrumentID,
		Quantity:           quantity,
		BuyDate:            l.date,
		BuyPrice:           l.unitPrice,
		SellPrice:          sell.UnitPrice,
		GainLoss:           gain,
		GainLossPercentage: gainPct,
		HoldingPeriodDays:  holdingDays,
		Classification:     classification,
	}
}

// partition splits one instrument's transactions into buys and sells, each
// sorted by date ascending with ties kept in input order.
func partition(transactions []model.Transaction, instrumentID string) (buys, sells []model.Transaction) {
	for _, t := range transactions {
		if t.InstrumentID != instrumentID {
			continue
		}
		switch t.Direction {
		case model.Buy:
			buys = append(buys, t)
		case model.Sell:
			sells = append(sells, t)
		}
	}
	sort.SliceStable(buys, func(i, j int) bool { return buys[i].Date.Before(buys[j].Date) })
	sort.SliceStable(sells, func(i, j int) bool { return sells[i].Date.Before(sells[j].Date) })
	return buys, sells
}

// instrumentOrder returns the distinct instrument IDs in first-appearance
// order, keeping output deterministic without relying on map iteration.
func instrumentOrder(transactions []model.Transaction) []string {
	seen := make(map[string]bool)
	var order []string
	for _, t := range transactions {
		if !seen[t.InstrumentID] {
			seen[t.InstrumentID] = true
			order = append(order, t.InstrumentID)
		}
	}
	return order
}
