package model

import "time"

// Direction identifies whether a transaction adds units to a holding or
// removes them.
type Direction string

// Valid transaction directions.
const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Transaction represents a single buy or sell of an instrument.
// The transaction log is append-only from the engine's point of view:
// calculations operate on copies and never mutate these records.
type Transaction struct {
	ID           string    `json:"id" csv:"id"`
	InstrumentID string    `json:"instrument_id" csv:"instrument_id"`
	Date         time.Time `json:"date" csv:"-"`
	Direction    Direction `json:"direction" csv:"direction"`
	Quantity     float64   `json:"quantity" csv:"quantity"`
	UnitPrice    float64   `json:"unit_price" csv:"unit_price"`
	Amount       float64   `json:"amount" csv:"amount"`
	CreatedAt    time.Time `json:"createdAt,omitempty" csv:"-"`
}

// SignedAmount returns the transaction amount as a cash flow from the
// investor's perspective: buys are outflows (negative), sells inflows.
func (t Transaction) SignedAmount() float64 {
	if t.Direction == Buy {
		return -t.Amount
	}
	return t.Amount
}
