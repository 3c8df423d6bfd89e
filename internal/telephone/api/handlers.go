package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"publicapi/internal/apierror"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
	"publicapi/internal/telephone"
	"publicapi/internal/validation"
)

// Handler handles telephone payment notifications
type Handler struct {
	service *telephone.Service
	logger  *slog.Logger
}

// NewHandler creates a new telephone payment handler
func NewHandler(service *telephone.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register adds the telephone payment routes to r
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/payment_notification", h.Notify)
}

// Notify handles POST /v1/payment_notification
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	body, err := api.ReadBody(r)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.TelephonePayment(validation.Unparseable()), err)
		return
	}
	req, verr := validation.TelephonePayment(body)
	if verr != nil {
		api.Fail(w, r, h.logger, apierror.TelephonePayment(verr), verr)
		return
	}

	payment, existing, err := h.service.Notify(r.Context(), middleware.GetAccountID(r.Context()), req)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.TelephonePayment(err), err)
		return
	}

	if existing {
		api.WriteJSON(w, http.StatusOK, payment)
		return
	}
	api.WriteJSON(w, http.StatusCreated, payment)
}
