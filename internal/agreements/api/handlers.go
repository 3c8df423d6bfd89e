package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"publicapi/internal/agreements"
	"publicapi/internal/apierror"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
	"publicapi/internal/validation"
)

// Handler handles agreement HTTP requests
type Handler struct {
	service *agreements.Service
	logger  *slog.Logger
}

// NewHandler creates a new agreement handler
func NewHandler(service *agreements.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register adds the agreement routes to r
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/agreements", h.CreateAgreement)
	r.Get("/v1/agreements", h.SearchAgreements)
	r.Get("/v1/agreements/{agreementId}", h.GetAgreement)
	r.Post("/v1/agreements/{agreementId}/cancel", h.CancelAgreement)
}

// CreateAgreement handles POST /v1/agreements
func (h *Handler) CreateAgreement(w http.ResponseWriter, r *http.Request) {
	body, err := api.ReadBody(r)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.CreateAgreement(validation.Unparseable()), err)
		return
	}
	req, verr := validation.CreateAgreement(body)
	if verr != nil {
		api.Fail(w, r, h.logger, apierror.CreateAgreement(verr), verr)
		return
	}

	agreement, err := h.service.Create(r.Context(), middleware.GetAccountID(r.Context()), req)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.CreateAgreement(err), err)
		return
	}

	api.Created(w, agreement.Links.Self.Href, agreement)
}

// GetAgreement handles GET /v1/agreements/{agreementId}
func (h *Handler) GetAgreement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agreementId")
	if !validation.ResourceID(id) {
		api.WriteError(w, apierror.NewRequestError(apierror.GetAgreementNotFound))
		return
	}

	agreement, err := h.service.Get(r.Context(), middleware.GetAccountID(r.Context()), id)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.GetAgreement(err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, agreement)
}

// SearchAgreements handles GET /v1/agreements
func (h *Handler) SearchAgreements(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if invalid := validation.Search(query, validation.AgreementSearch); len(invalid) > 0 {
		api.WriteError(w, apierror.SearchAgreements(invalid, nil))
		return
	}

	results, err := h.service.Search(r.Context(), middleware.GetAccountID(r.Context()), query)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.SearchAgreements(nil, err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, results)
}

// CancelAgreement handles POST /v1/agreements/{agreementId}/cancel
func (h *Handler) CancelAgreement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agreementId")
	if !validation.ResourceID(id) {
		api.WriteError(w, apierror.NewRequestError(apierror.CancelAgreementNotFound))
		return
	}

	if err := h.service.Cancel(r.Context(), middleware.GetAccountID(r.Context()), id); err != nil {
		api.Fail(w, r, h.logger, apierror.CancelAgreement(err), err)
		return
	}

	api.NoContent(w)
}
