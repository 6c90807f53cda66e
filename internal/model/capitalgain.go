package model

import "time"

// GainClassification tags a capital gain as short or long term based on the
// holding period of the matched lot.
type GainClassification string

// Gain classifications.
const (
	ShortTerm GainClassification = "STCG"
	LongTerm  GainClassification = "LTCG"
)

// CapitalGain records one lot-consumption event: a quantity sold (or valued,
// for unrealized gains) against a single FIFO buy lot.
type CapitalGain struct {
	SaleDate           time.Time          `json:"sale_date" csv:"-"`
	InstrumentID       string             `json:"instrument_id" csv:"instrument_id"`
	Quantity           float64            `json:"quantity" csv:"quantity"`
	BuyDate            time.Time          `json:"buy_date" csv:"-"`
	BuyPrice           float64            `json:"buy_price" csv:"buy_price"`
	SellPrice          float64            `json:"sell_price" csv:"sell_price"`
	GainLoss           float64            `json:"gain_loss" csv:"gain_loss"`
	GainLossPercentage float64            `json:"gain_loss_percentage" csv:"gain_loss_percentage"`
	HoldingPeriodDays  int                `json:"holding_period_days" csv:"holding_period_days"`
	Classification     GainClassification `json:"gain_classification" csv:"gain_classification"`
}
