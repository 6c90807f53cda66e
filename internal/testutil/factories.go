package testutil

import (
	"time"

	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test
// transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	tx := testutil.NewTransaction("120503").Build()
//
//	// Customized transaction
//	tx := testutil.NewTransaction("120503").
//	    Sell().
//	    WithQuantity(50).
//	    WithUnitPrice(75).
//	    OnDate(testutil.Date(2023, 6, 1)).
//	    Build()
type TransactionBuilder struct {
	ID           string
	InstrumentID string
	Date         time.Time
	Direction    model.Direction
	Quantity     float64
	UnitPrice    float64
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(instrumentID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:           MakeID(),
		InstrumentID: instrumentID,
		Date:         Date(2023, 1, 1),
		Direction:    model.Buy,
		Quantity:     100.0,
		UnitPrice:    10.0,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// OnDate sets the transaction date.
func (b *TransactionBuilder) OnDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// Sell marks the transaction as a sale.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Direction = model.Sell
	return b
}

// WithQuantity sets the number of units.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithUnitPrice sets the price per unit.
func (b *TransactionBuilder) WithUnitPrice(price float64) *TransactionBuilder {
	b.UnitPrice = price
	return b
}

// Build returns the transaction. The amount is derived from quantity and
// unit price the same way the service layer derives it.
func (b *TransactionBuilder) Build() model.Transaction {
	return model.Transaction{
		ID:           b.ID,
		InstrumentID: b.InstrumentID,
		Date:         b.Date,
		Direction:    b.Direction,
		Quantity:     b.Quantity,
		UnitPrice:    b.UnitPrice,
		Amount:       b.Quantity * b.UnitPrice,
		CreatedAt:    time.Now(),
	}
}

// Convenience functions

// BuyTransaction creates a buy with the given instrument, date, quantity and
// unit price.
//
// Example usage:
//
//	tx := testutil.BuyTransaction("120503", testutil.Date(2023, 1, 1), 100, 50)
func BuyTransaction(instrumentID string, date time.Time, quantity, unitPrice float64) model.Transaction {
	return NewTransaction(instrumentID).
		OnDate(date).
		WithQuantity(quantity).
		WithUnitPrice(unitPrice).
		Build()
}

// SellTransaction creates a sale with the given instrument, date, quantity
// and unit price.
func SellTransaction(instrumentID string, date time.Time, quantity, unitPrice float64) model.Transaction {
	return NewTransaction(instrumentID).
		Sell().
		OnDate(date).
		WithQuantity(quantity).
		WithUnitPrice(unitPrice).
		Build()
}

// InstrumentBuilder provides a fluent interface for creating test
// instruments.
type InstrumentBuilder struct {
	ID         string
	Name       string
	AssetClass model.AssetClass
}

// NewInstrument creates an InstrumentBuilder with sensible defaults.
func NewInstrument(id string) *InstrumentBuilder {
	return &InstrumentBuilder{
		ID:         id,
		Name:       MakeInstrumentName("Test Fund"),
		AssetClass: model.AssetClassEquity,
	}
}

// WithName sets a custom name.
func (b *InstrumentBuilder) WithName(name string) *InstrumentBuilder {
	b.Name = name
	return b
}

// Debt marks the instrument as a debt fund.
func (b *InstrumentBuilder) Debt() *InstrumentBuilder {
	b.AssetClass = model.AssetClassDebt
	return b
}

// Build returns the instrument.
func (b *InstrumentBuilder) Build() model.Instrument {
	return model.Instrument{
		ID:         b.ID,
		Name:       b.Name,
		AssetClass: b.AssetClass,
	}
}
