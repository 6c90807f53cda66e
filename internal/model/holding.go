package model

// Holding is the current net position in one instrument, derived by
// replaying all of its transactions. Cost basis uses the weighted-average
// method: each sell reduces the invested amount proportionally at the
// average cost in effect at the time of sale. This intentionally differs
// from the FIFO lot accounting used for realized capital gains.
type Holding struct {
	InstrumentID       string  `json:"instrument_id" csv:"instrument_id"`
	Name               string  `json:"name,omitempty" csv:"name"`
	TotalQuantity      float64 `json:"total_quantity" csv:"total_quantity"`
	AverageCost        float64 `json:"average_cost" csv:"average_cost"`
	InvestedAmount     float64 `json:"invested_amount" csv:"invested_amount"`
	CurrentPrice       float64 `json:"current_price" csv:"current_price"`
	CurrentValue       float64 `json:"current_value" csv:"current_value"`
	GainLoss           float64 `json:"gain_loss" csv:"gain_loss"`
	GainLossPercentage float64 `json:"gain_loss_percentage" csv:"gain_loss_percentage"`
}
