package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/response"
	"github.com/mfolio/mf-portfolio-tracker/internal/returns"
)

// ReturnsHandler exposes the standalone return calculators.
type ReturnsHandler struct{}

// NewReturnsHandler creates a new ReturnsHandler
func NewReturnsHandler() *ReturnsHandler {
	return &ReturnsHandler{}
}

// SIP computes SIP metrics for a monthly investment plan:
// GET /api/returns/sip?monthly=5000&months=24&value=135000
func (h *ReturnsHandler) SIP(w http.ResponseWriter, r *http.Request) {
	monthly, err := strconv.ParseFloat(r.URL.Query().Get("monthly"), 64)
	if err != nil || monthly <= 0 {
		response.RespondError(w, http.StatusBadRequest, "monthly must be a positive number", nil)
		return
	}

	months, err := strconv.Atoi(r.URL.Query().Get("months"))
	if err != nil || months <= 0 {
		response.RespondError(w, http.StatusBadRequest, "months must be a positive integer", nil)
		return
	}

	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil || value < 0 {
		response.RespondError(w, http.StatusBadRequest, "value must be a non-negative number", nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, returns.SIPReturns(monthly, months, value, time.Now()))
}
