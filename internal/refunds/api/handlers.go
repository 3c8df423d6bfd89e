package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"publicapi/internal/apierror"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
	"publicapi/internal/refunds"
	"publicapi/internal/strategy"
	"publicapi/internal/validation"
)

// Handler handles refund HTTP requests
type Handler struct {
	service *refunds.Service
	logger  *slog.Logger
}

// NewHandler creates a new refund handler
func NewHandler(service *refunds.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register adds the refund routes to r
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/payments/{paymentId}/refunds", h.CreateRefund)
	r.Get("/v1/payments/{paymentId}/refunds", h.GetPaymentRefunds)
	r.Get("/v1/payments/{paymentId}/refunds/{refundId}", h.GetRefund)
	r.Get("/v1/refunds", h.SearchRefunds)
}

// CreateRefund handles POST /v1/payments/{paymentId}/refunds
func (h *Handler) CreateRefund(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")
	if !validation.ResourceID(paymentID) {
		api.WriteError(w, apierror.NewRefundError(apierror.CreateRefundPaymentNotFound))
		return
	}

	body, err := api.ReadBody(r)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.CreateRefund(validation.Unparseable()), err)
		return
	}
	req, verr := validation.CreateRefund(body)
	if verr != nil {
		api.Fail(w, r, h.logger, apierror.CreateRefund(verr), verr)
		return
	}

	refund, err := h.service.Create(r.Context(), middleware.GetAccountID(r.Context()), paymentID, req)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.CreateRefund(err), err)
		return
	}

	w.Header().Set("Location", refund.Links.Self.Href)
	api.WriteJSON(w, http.StatusAccepted, refund)
}

// GetPaymentRefunds handles GET /v1/payments/{paymentId}/refunds
func (h *Handler) GetPaymentRefunds(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")
	if !validation.ResourceID(paymentID) {
		api.WriteError(w, apierror.NewPaymentError(apierror.GetPaymentRefundsNotFound))
		return
	}

	list, err := h.service.List(r.Context(), middleware.GetAccountID(r.Context()), paymentID,
		strategy.FromHeader(r.Header.Get(strategy.Header)))
	if err != nil {
		api.Fail(w, r, h.logger, apierror.GetPaymentRefunds(err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, list)
}

// GetRefund handles GET /v1/payments/{paymentId}/refunds/{refundId}
func (h *Handler) GetRefund(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")
	refundID := chi.URLParam(r, "refundId")
	if !validation.ResourceID(paymentID) || !validation.ResourceID(refundID) {
		api.WriteError(w, apierror.NewRefundError(apierror.GetRefundNotFound))
		return
	}

	refund, err := h.service.Get(r.Context(), middleware.GetAccountID(r.Context()), paymentID, refundID,
		strategy.FromHeader(r.Header.Get(strategy.Header)))
	if err != nil {
		api.Fail(w, r, h.logger, apierror.GetRefund(err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, refund)
}

// SearchRefunds handles GET /v1/refunds
func (h *Handler) SearchRefunds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if invalid := validation.Search(query, validation.RefundSearch); len(invalid) > 0 {
		api.WriteError(w, apierror.SearchRefunds(invalid, nil))
		return
	}

	results, err := h.service.Search(r.Context(), middleware.GetAccountID(r.Context()), query)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.SearchRefunds(nil, err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, results)
}
