package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"publicapi/internal/apierror"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
	"publicapi/internal/mandates"
	"publicapi/internal/validation"
)

// Handler handles mandate HTTP requests
type Handler struct {
	service *mandates.Service
	logger  *slog.Logger
}

// NewHandler creates a new mandate handler
func NewHandler(service *mandates.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register adds the mandate routes to r
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/directdebit/mandates", h.CreateMandate)
	r.Get("/v1/directdebit/mandates", h.SearchMandates)
	r.Get("/v1/directdebit/mandates/{mandateId}", h.GetMandate)
}

// CreateMandate handles POST /v1/directdebit/mandates
func (h *Handler) CreateMandate(w http.ResponseWriter, r *http.Request) {
	body, err := api.ReadBody(r)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.CreateMandate(validation.Unparseable()), err)
		return
	}
	req, verr := validation.CreateMandate(body)
	if verr != nil {
		api.Fail(w, r, h.logger, apierror.CreateMandate(verr), verr)
		return
	}

	mandate, err := h.service.Create(r.Context(), middleware.GetAccountID(r.Context()), req)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.CreateMandate(err), err)
		return
	}

	api.Created(w, mandate.Links.Self.Href, mandate)
}

// GetMandate handles GET /v1/directdebit/mandates/{mandateId}
func (h *Handler) GetMandate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mandateId")
	if !validation.ResourceID(id) {
		api.WriteError(w, apierror.NewMandateError(apierror.GetMandateNotFound))
		return
	}

	mandate, err := h.service.Get(r.Context(), middleware.GetAccountID(r.Context()), id)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.GetMandate(err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, mandate)
}

// SearchMandates handles GET /v1/directdebit/mandates
func (h *Handler) SearchMandates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if invalid := validation.Search(query, validation.MandateSearch); len(invalid) > 0 {
		api.WriteError(w, apierror.SearchMandates(invalid, nil))
		return
	}

	results, err := h.service.Search(r.Context(), middleware.GetAccountID(r.Context()), query)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.SearchMandates(nil, err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, results)
}
