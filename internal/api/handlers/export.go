package handlers

import (
	"net/http"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/response"
	"github.com/mfolio/mf-portfolio-tracker/internal/export"
	"github.com/mfolio/mf-portfolio-tracker/internal/service"
)

// ExportHandler renders portfolio data as downloadable CSV.
type ExportHandler struct {
	portfolioService *service.PortfolioService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(portfolioService *service.PortfolioService) *ExportHandler {
	return &ExportHandler{
		portfolioService: portfolioService,
	}
}

// Transactions streams the transaction log as CSV.
func (h *ExportHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	setCSVHeaders(w, "transactions.csv")
	if err := export.WriteTransactions(w, h.portfolioService.Transactions("")); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to export transactions", err.Error())
	}
}

// Holdings streams the current holdings snapshot as CSV.
func (h *ExportHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.portfolioService.Holdings(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute holdings", err.Error())
		return
	}

	setCSVHeaders(w, "holdings.csv")
	if err := export.WriteHoldings(w, holdings); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to export holdings", err.Error())
	}
}

// Gains streams realized capital gain records as CSV.
func (h *ExportHandler) Gains(w http.ResponseWriter, r *http.Request) {
	records, _, err := h.portfolioService.RealizedGains(r.URL.Query().Get("instrument_id"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute capital gains", err.Error())
		return
	}

	setCSVHeaders(w, "capital_gains.csv")
	if err := export.WriteGains(w, records); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to export capital gains", err.Error())
	}
}

func setCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
}
