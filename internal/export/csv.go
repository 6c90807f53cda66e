// Package export renders the engine's output records (transactions,
// holdings, capital gains) as CSV, and imports transaction logs from CSV.
// Column names follow the stable field names the rest of the API uses.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

const dateLayout = "2006-01-02"

// transactionRow is the CSV projection of a transaction. Dates are
// formatted as YYYY-MM-DD strings rather than marshalled time values.
type transactionRow struct {
	Date         string  `csv:"date"`
	InstrumentID string  `csv:"instrument_id"`
	Direction    string  `csv:"direction"`
	Quantity     float64 `csv:"quantity"`
	UnitPrice    float64 `csv:"unit_price"`
	Amount       float64 `csv:"amount"`
}

// gainRow is the CSV projection of a capital gain record.
type gainRow struct {
	SaleDate           string  `csv:"sale_date"`
	InstrumentID       string  `csv:"instrument_id"`
	Quantity           float64 `csv:"quantity"`
	BuyDate            string  `csv:"buy_date"`
	BuyPrice           float64 `csv:"buy_price"`
	SellPrice          float64 `csv:"sell_price"`
	GainLoss           float64 `csv:"gain_loss"`
	GainLossPercentage float64 `csv:"gain_loss_percentage"`
	HoldingPeriodDays  int     `csv:"holding_period_days"`
	GainClassification string  `csv:"gain_classification"`
}

// requiredTransactionHeaders are the columns a transaction import must
// carry. Extra columns are ignored.
var requiredTransactionHeaders = []string{"date", "instrument_id", "direction", "quantity", "unit_price"}

// WriteTransactions renders the transaction log as CSV, oldest first.
func WriteTransactions(w io.Writer, transactions []model.Transaction) error {
	rows := make([]transactionRow, len(transactions))
	for i, t := range transactions {
		rows[i] = transactionRow{
			Date:         t.Date.Format(dateLayout),
			InstrumentID: t.InstrumentID,
			Direction:    string(t.Direction),
			Quantity:     t.Quantity,
			UnitPrice:    t.UnitPrice,
			Amount:       t.Amount,
		}
	}
	return gocsv.Marshal(&rows, w)
}

// WriteHoldings renders the current holdings snapshot as CSV.
func WriteHoldings(w io.Writer, holdings []model.Holding) error {
	rows := make([]model.Holding, len(holdings))
	copy(rows, holdings)
	return gocsv.Marshal(&rows, w)
}

// WriteGains renders capital gain records as CSV.
func WriteGains(w io.Writer, records []model.CapitalGain) error {
	rows := make([]gainRow, len(records))
	for i, r := range records {
		rows[i] = gainRow{
			SaleDate:           r.SaleDate.Format(dateLayout),
			InstrumentID:       r.InstrumentID,
			Quantity:           r.Quantity,
			BuyDate:            r.BuyDate.Format(dateLayout),
			BuyPrice:           r.BuyPrice,
			SellPrice:          r.SellPrice,
			GainLoss:           r.GainLoss,
			GainLossPercentage: r.GainLossPercentage,
			HoldingPeriodDays:  r.HoldingPeriodDays,
			GainClassification: string(r.Classification),
		}
	}
	return gocsv.Marshal(&rows, w)
}

// ReadTransactions parses a CSV transaction log. The header row must carry
// the required columns (apperrors.ErrInvalidCSVHeaders otherwise) and every
// row must parse into a valid transaction. IDs are left empty for the
// caller to assign; a missing amount column derives from quantity × price.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if err := validateHeaders(raw); err != nil {
		return nil, err
	}

	var rows []transactionRow
	if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i+1, row.Date, err)
		}

		direction := model.Direction(row.Direction)
		if direction != model.Buy && direction != model.Sell {
			return nil, fmt.Errorf("row %d: invalid direction %q", i+1, row.Direction)
		}

		if row.Quantity <= 0 || row.UnitPrice <= 0 {
			return nil, fmt.Errorf("row %d: quantity and unit_price must be positive", i+1)
		}

		amount := row.Amount
		if amount == 0 {
			amount = row.Quantity * row.UnitPrice
		}

		transactions = append(transactions, model.Transaction{
			InstrumentID: row.InstrumentID,
			Date:         date,
			Direction:    direction,
			Quantity:     row.Quantity,
			UnitPrice:    row.UnitPrice,
			Amount:       amount,
		})
	}
	return transactions, nil
}

// validateHeaders checks that the first CSV record carries every required
// column name.
func validateHeaders(raw []byte) error {
	header, err := csv.NewReader(bytes.NewReader(raw)).Read()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVHeaders, err)
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	for _, required := range requiredTransactionHeaders {
		if !present[required] {
			return fmt.Errorf("%w: missing column %q", apperrors.ErrInvalidCSVHeaders, required)
		}
	}
	return nil
}
