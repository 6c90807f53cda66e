package apperrors

import "errors"

// Calculation errors represent conditions under which the return-metrics
// engine cannot produce a value. They are recoverable from the caller's
// perspective: the result is absent, never silently wrong.
var (
	// ErrInsufficientCashFlows indicates that XIRR was asked to solve over
	// fewer than two cash flows.
	ErrInsufficientCashFlows = errors.New("xirr requires at least two cash flows")

	// ErrNonConvergence indicates that the XIRR Newton-Raphson iteration did
	// not converge within the iteration and tolerance bounds.
	ErrNonConvergence = errors.New("xirr did not converge")

	// ErrInvalidPeriod indicates that CAGR inputs do not describe a
	// meaningful annualization period (non-positive amounts or duration, or
	// a period shorter than ~3-4 days).
	ErrInvalidPeriod = errors.New("period not applicable for annualized return")
)

// Data integrity errors represent inconsistencies in the transaction log.
var (
	// ErrSellExceedsHoldings indicates that a sell transaction consumes more
	// units than all open FIFO lots hold for that instrument. The gains
	// engine refuses to under-report rather than letting the lot queue
	// silently empty out.
	ErrSellExceedsHoldings = errors.New("sell quantity exceeds available lots")
)

// Domain entity errors represent missing entities in the store.
var (
	// ErrInstrumentNotFound indicates that no instrument with the given ID
	// is registered in the portfolio.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID
	// does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Collaborator errors represent failures at the boundaries of the system.
var (
	// ErrNAVUnavailable indicates that the NAV provider returned no usable
	// price for an instrument.
	ErrNAVUnavailable = errors.New("nav unavailable")

	// ErrInvalidCSVHeaders indicates that an imported CSV file does not
	// carry the expected column headers.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")
)
