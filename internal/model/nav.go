package model

import "time"

// NAV is a dated per-unit price for an instrument, as reported by the
// price provider.
type NAV struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"nav"`
}
