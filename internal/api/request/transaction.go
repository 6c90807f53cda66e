// Package request defines the JSON request bodies accepted by the API.
package request

// CreateTransactionRequest is the body for POST /api/transactions.
// Name and AssetClass are optional; when present they register or update the
// instrument's metadata alongside the transaction.
type CreateTransactionRequest struct {
	InstrumentID string  `json:"instrument_id"`
	Name         string  `json:"name,omitempty"`
	AssetClass   string  `json:"asset_class,omitempty"`
	Date         string  `json:"date"`
	Direction    string  `json:"direction"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
}
