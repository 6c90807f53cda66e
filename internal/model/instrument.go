package model

// AssetClass groups instruments for holding-period tax classification.
// Equity-like instruments turn long-term after one year, debt-like after
// three years.
type AssetClass string

// Known asset classes.
const (
	AssetClassEquity AssetClass = "equity"
	AssetClassDebt   AssetClass = "debt"
)

// Instrument holds the static metadata for a mutual fund scheme or stock:
// the identifier used on transactions, a display name, and the asset class
// that selects the long-term threshold for capital gains.
type Instrument struct {
	ID         string     `json:"instrument_id"`
	Name       string     `json:"name"`
	AssetClass AssetClass `json:"asset_class"`
}
