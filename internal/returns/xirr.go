// Package returns implements the return-metrics engine: XIRR over irregular
// dated cash flows, absolute return, CAGR, and SIP aggregates. All functions
// are pure and deterministic over their inputs.
package returns

import (
	"math"
	"sort"

	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

// DefaultGuess is the initial rate used when callers have no better estimate.
const DefaultGuess = 0.10

const (
	maxIterations   = 100
	tolerance       = 1e-6
	derivativeFloor = 1e-10
	looseTolerance  = 0.01
	daysPerYear     = 365.0

	// Rate bounds applied after each Newton-Raphson step. Rates below -1
	// put a negative base under a fractional power; rates above 10 only
	// occur while the iteration is overshooting.
	minRate = -0.99
	maxRate = 10.0
)

// XIRR computes the annualized internal rate of return for a list of dated
// cash flows using Newton-Raphson iteration with an Actual/365 day count.
// Investments must be negative, redemptions and the terminal valuation
// positive. The result is a decimal rate (0.12 = 12%).
//
// Returns apperrors.ErrInsufficientCashFlows for fewer than two flows, and
// apperrors.ErrNonConvergence when no root is found within the iteration and
// tolerance bounds.
func XIRR(flows []model.CashFlow, guess float64) (float64, error) {
	if len(flows) < 2 {
		return 0, apperrors.ErrInsufficientCashFlows
	}

	// Sort a copy by date only; ties keep their input order so results are
	// deterministic for identical inputs.
	sorted := make([]model.CashFlow, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	base := sorted[0].Date
	type flow struct {
		years  float64
		amount float64
	}
	dated := make([]flow, len(sorted))
	for i, f := range sorted {
		days := f.Date.Sub(base).Hours() / 24
		dated[i] = flow{years: days / daysPerYear, amount: f.Amount}
	}

	rate := guess
	var npv float64

	for iter := 0; iter < maxIterations; iter++ {
		npv = 0
		dnpv := 0.0

		for _, f := range dated {
			factor := math.Pow(1+rate, f.years)
			npv += f.amount / factor
			dnpv -= f.years * f.amount / (factor * (1 + rate))
		}

		if math.Abs(npv) < tolerance {
			return rate, nil
		}

		// Derivative vanished: a further step would divide by ~zero. Accept
		// the current rate only if it is already close to a root.
		if math.Abs(dnpv) < derivativeFloor {
			if math.Abs(npv) < looseTolerance {
				return rate, nil
			}
			return 0, apperrors.ErrNonConvergence
		}

		rate = rate - npv/dnpv

		if rate < minRate {
			rate = minRate
		} else if rate > maxRate {
			rate = maxRate
		}
	}

	if math.Abs(npv) < looseTolerance {
		return rate, nil
	}
	return 0, apperrors.ErrNonConvergence
}
