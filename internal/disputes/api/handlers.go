package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"publicapi/internal/apierror"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
	"publicapi/internal/disputes"
	"publicapi/internal/validation"
)

// Handler handles dispute HTTP requests
type Handler struct {
	service *disputes.Service
	logger  *slog.Logger
}

// NewHandler creates a new dispute handler
func NewHandler(service *disputes.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register adds the dispute routes to r
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/disputes", h.SearchDisputes)
}

// SearchDisputes handles GET /v1/disputes
func (h *Handler) SearchDisputes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if invalid := validation.Search(query, validation.DisputeSearch); len(invalid) > 0 {
		api.WriteError(w, apierror.SearchDisputes(invalid, nil))
		return
	}

	results, err := h.service.Search(r.Context(), middleware.GetAccountID(r.Context()), query)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.SearchDisputes(nil, err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, results)
}
