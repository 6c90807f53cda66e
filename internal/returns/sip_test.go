package returns_test

import (
	"math"
	"testing"

	"github.com/mfolio/mf-portfolio-tracker/internal/returns"
	"github.com/mfolio/mf-portfolio-tracker/internal/testutil"
)

// TestSIPReturns tests the systematic investment plan aggregates.
//
// WHY: SIP metrics combine the simple totals with an XIRR over generated
// monthly flows. The totals are exact arithmetic; the XIRR must land above
// the absolute return's naive annualization because later installments were
// invested for less than the full period.
func TestSIPReturns(t *testing.T) {
	t.Run("totals and absolute return", func(t *testing.T) {
		// Setup
		asOf := testutil.Date(2024, 6, 1)

		// Execute
		metrics := returns.SIPReturns(5000, 12, 66000, asOf)

		// Assert
		if metrics.TotalInvested != 60000 {
			t.Errorf("Expected TotalInvested 60000, got %v", metrics.TotalInvested)
		}
		if metrics.CurrentValue != 66000 {
			t.Errorf("Expected CurrentValue 66000, got %v", metrics.CurrentValue)
		}
		if metrics.AbsoluteReturn != 6000 {
			t.Errorf("Expected AbsoluteReturn 6000, got %v", metrics.AbsoluteReturn)
		}
		if math.Abs(metrics.AbsoluteReturnPct-10) > 1e-9 {
			t.Errorf("Expected AbsoluteReturnPct 10, got %v", metrics.AbsoluteReturnPct)
		}
	})

	t.Run("xirr exceeds the absolute return for a gaining SIP", func(t *testing.T) {
		// Setup: the average installment is invested for only about half the
		// plan duration, so the annualized rate must beat the 10% absolute.
		asOf := testutil.Date(2024, 6, 1)

		// Execute
		metrics := returns.SIPReturns(5000, 12, 66000, asOf)

		// Assert
		if metrics.XIRRPct == nil {
			t.Fatal("Expected XIRR to be computed, got nil")
		}
		if *metrics.XIRRPct <= metrics.AbsoluteReturnPct {
			t.Errorf("Expected XIRR %v to exceed absolute return %v", *metrics.XIRRPct, metrics.AbsoluteReturnPct)
		}
	})

	t.Run("xirr is nil when it cannot be computed", func(t *testing.T) {
		// Setup: a final value of zero gives flows with no sign change, so
		// the solver has no root to find.
		asOf := testutil.Date(2024, 6, 1)

		// Execute
		metrics := returns.SIPReturns(5000, 1, 0, asOf)

		// Assert
		if metrics.XIRRPct != nil {
			t.Errorf("Expected nil XIRR, got %v", *metrics.XIRRPct)
		}
		if metrics.AbsoluteReturn != -5000 {
			t.Errorf("Expected AbsoluteReturn -5000, got %v", metrics.AbsoluteReturn)
		}
	})
}
