package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/request"
	"github.com/mfolio/mf-portfolio-tracker/internal/api/response"
	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/export"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
	"github.com/mfolio/mf-portfolio-tracker/internal/service"
	"github.com/mfolio/mf-portfolio-tracker/internal/validation"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	portfolioService *service.PortfolioService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(portfolioService *service.PortfolioService) *TransactionHandler {
	return &TransactionHandler{
		portfolioService: portfolioService,
	}
}

// List returns the transaction log, optionally filtered by instrument_id.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions := h.portfolioService.Transactions(r.URL.Query().Get("instrument_id"))
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	response.RespondJSON(w, http.StatusOK, transactions)
}

// Create records a new buy or sell transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "Validation failed", validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	transaction, err := h.portfolioService.CreateTransaction(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// Delete removes a transaction by ID.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.portfolioService.DeleteTransaction(id); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, "Transaction not found", id)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "Failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Import ingests a CSV transaction log. Rows are validated before any of
// them are recorded; a bad row rejects the whole file.
func (h *TransactionHandler) Import(w http.ResponseWriter, r *http.Request) {
	transactions, err := export.ReadTransactions(r.Body)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			response.RespondError(w, http.StatusBadRequest, "Invalid CSV headers", err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, "Failed to parse CSV", err.Error())
		return
	}

	created := 0
	for _, t := range transactions {
		req := request.CreateTransactionRequest{
			InstrumentID: t.InstrumentID,
			Date:         t.Date.Format("2006-01-02"),
			Direction:    string(t.Direction),
			Quantity:     t.Quantity,
			UnitPrice:    t.UnitPrice,
		}
		if _, err := h.portfolioService.CreateTransaction(req); err != nil {
			response.RespondError(w, http.StatusInternalServerError, "Failed to record imported transaction", err.Error())
			return
		}
		created++
	}

	response.RespondJSON(w, http.StatusCreated, map[string]int{"imported": created})
}
