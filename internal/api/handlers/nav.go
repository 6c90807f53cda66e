package handlers

import (
	"net/http"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/response"
	"github.com/mfolio/mf-portfolio-tracker/internal/mfapi"
	"github.com/mfolio/mf-portfolio-tracker/internal/store"
)

// NAVHandler exposes NAV provider operations: cache refresh and scheme
// search.
type NAVHandler struct {
	client *mfapi.Client
	store  *store.Store
}

// NewNAVHandler creates a new NAVHandler
func NewNAVHandler(client *mfapi.Client, st *store.Store) *NAVHandler {
	return &NAVHandler{
		client: client,
		store:  st,
	}
}

// Refresh drops the NAV cache and refetches the latest NAV for every
// registered instrument.
func (h *NAVHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.client.ClearCache(); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to clear NAV cache", err.Error())
		return
	}

	instruments := h.store.Instruments()
	ids := make([]string, len(instruments))
	for i, inst := range instruments {
		ids[i] = inst.ID
	}

	navs, err := h.client.LatestNAVs(r.Context(), ids)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to refresh NAVs", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{
		"requested": len(ids),
		"refreshed": len(navs),
	})
}

// Search looks up schemes by name through the provider's full listing.
func (h *NAVHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.RespondError(w, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}

	schemes, err := h.client.SearchSchemes(r.Context(), query)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to search schemes", err.Error())
		return
	}
	if schemes == nil {
		schemes = []mfapi.SchemeSummary{}
	}
	response.RespondJSON(w, http.StatusOK, schemes)
}
