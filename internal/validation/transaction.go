package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/request"
)

// ValidDirection contains the allowed transaction direction values.
var ValidDirection = map[string]bool{
	"BUY": true, "SELL": true,
}

// ValidAssetClass contains the allowed asset class values.
var ValidAssetClass = map[string]bool{
	"equity": true, "debt": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - instrument_id: Must be non-empty
//   - date: Must be in YYYY-MM-DD format
//   - direction: Must be BUY or SELL
//   - quantity: Must be positive
//   - unit_price: Must be positive
//
// Returns a validation Error with field-specific error messages if
// validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.InstrumentID) == "" {
		errors["instrumentId"] = "instrument_id is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Direction) == "" {
		errors["direction"] = "direction is required"
	} else if !ValidDirection[req.Direction] {
		errors["direction"] = fmt.Sprintf("invalid direction: %s", req.Direction)
	}

	if req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.UnitPrice <= 0.0 {
		errors["unitPrice"] = "unit_price must be positive"
	}

	if req.AssetClass != "" && !ValidAssetClass[req.AssetClass] {
		errors["assetClass"] = fmt.Sprintf("invalid asset class: %s", req.AssetClass)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
