package handlers

import (
	"net/http"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/response"
)

// SystemHandler handles system-level HTTP requests
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Health reports service liveness.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
