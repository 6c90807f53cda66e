package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/response"
	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/gains"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
	"github.com/mfolio/mf-portfolio-tracker/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Holdings returns the current average-cost holdings snapshot valued at the
// latest NAVs.
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.portfolioService.Holdings(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute holdings", err.Error())
		return
	}
	if holdings == nil {
		holdings = []model.Holding{}
	}
	response.RespondJSON(w, http.StatusOK, holdings)
}

// Summary returns portfolio totals, absolute return, and the portfolio XIRR.
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.Summary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute portfolio summary", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, summary)
}

// GainsResponse bundles capital gain records with their tax summary.
type GainsResponse struct {
	Records []model.CapitalGain `json:"records"`
	Summary gains.Summary       `json:"summary"`
}

// Gains returns realized capital gains by default, or unrealized gains with
// ?realized=false. An instrument_id query parameter restricts the
// computation to one instrument.
func (h *PortfolioHandler) Gains(w http.ResponseWriter, r *http.Request) {
	instrumentID := r.URL.Query().Get("instrument_id")
	realized := r.URL.Query().Get("realized") != "false"

	var (
		records []model.CapitalGain
		summary gains.Summary
		err     error
	)
	if realized {
		records, summary, err = h.portfolioService.RealizedGains(instrumentID)
	} else {
		records, summary, err = h.portfolioService.UnrealizedGains(r.Context(), instrumentID)
	}

	if err != nil {
		if errors.Is(err, apperrors.ErrSellExceedsHoldings) {
			response.RespondError(w, http.StatusUnprocessableEntity, "Transaction log is inconsistent", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute capital gains", err.Error())
		return
	}

	if records == nil {
		records = []model.CapitalGain{}
	}
	response.RespondJSON(w, http.StatusOK, GainsResponse{Records: records, Summary: summary})
}

// Performers returns the top holdings by return percentage. Default limit
// is 5.
func (h *PortfolioHandler) Performers(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	performers, err := h.portfolioService.Performers(r.Context(), limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute performers", err.Error())
		return
	}
	if performers == nil {
		performers = []model.Holding{}
	}
	response.RespondJSON(w, http.StatusOK, performers)
}

// ByAssetClass returns holdings grouped by asset class.
func (h *PortfolioHandler) ByAssetClass(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.portfolioService.HoldingsByAssetClass(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to group holdings", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, grouped)
}
