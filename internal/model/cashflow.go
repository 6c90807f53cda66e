package model

import "time"

// CashFlow is a dated, signed amount used for XIRR: negative for
// investments, positive for redemptions and the synthetic terminal flow at
// current valuation.
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}
