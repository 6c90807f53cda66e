package returns

import (
	"math"

	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
)

// AbsoluteReturn calculates the simple return percentage between the
// invested amount and the current value. Returns 0 when nothing was
// invested; zero is a valid return here, unlike CAGR where absence is
// signalled with an error.
func AbsoluteReturn(invested, current float64) float64 {
	if invested == 0 {
		return 0
	}
	return (current - invested) / invested * 100
}

// CAGR calculates the compound annual growth rate as a percentage for an
// investment held over the given number of days.
//
// Returns apperrors.ErrInvalidPeriod when invested or current are not
// positive, days is not positive, or the period is under 0.01 years
// (roughly 3-4 days), too short for meaningful annualization.
func CAGR(invested, current float64, days int) (float64, error) {
	if invested <= 0 || current <= 0 || days <= 0 {
		return 0, apperrors.ErrInvalidPeriod
	}

	years := float64(days) / daysPerYear
	if years < 0.01 {
		return 0, apperrors.ErrInvalidPeriod
	}

	return (math.Pow(current/invested, 1/years) - 1) * 100, nil
}
