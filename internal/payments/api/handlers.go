package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"publicapi/internal/apierror"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
	"publicapi/internal/payments"
	"publicapi/internal/strategy"
	"publicapi/internal/validation"
)

// Handler handles payment HTTP requests
type Handler struct {
	service *payments.Service
	logger  *slog.Logger
}

// NewHandler creates a new payment handler
func NewHandler(service *payments.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register adds the payment routes to r
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/payments", h.CreatePayment)
	r.Get("/v1/payments", h.SearchPayments)
	r.Get("/v1/payments/{paymentId}", h.GetPayment)
	r.Get("/v1/payments/{paymentId}/events", h.GetPaymentEvents)
	r.Post("/v1/payments/{paymentId}/cancel", h.CancelPayment)
	r.Post("/v1/payments/{paymentId}/capture", h.CapturePayment)
}

// CreatePayment handles POST /v1/payments
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	values, present := r.Header[http.CanonicalHeaderKey(validation.IdempotencyKeyHeader)]
	var idempotencyKey string
	if present {
		idempotencyKey = values[0]
	}
	if verr := validation.IdempotencyKey(idempotencyKey, present); verr != nil {
		api.Fail(w, r, h.logger, apierror.CreatePayment(verr), verr)
		return
	}

	body, err := api.ReadBody(r)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.CreatePayment(validation.Unparseable()), err)
		return
	}
	req, verr := validation.CreatePayment(body)
	if verr != nil {
		api.Fail(w, r, h.logger, apierror.CreatePayment(verr), verr)
		return
	}

	payment, existing, err := h.service.Create(r.Context(), middleware.GetAccountID(r.Context()), req, idempotencyKey)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.CreatePayment(err), err)
		return
	}

	w.Header().Set("Location", payment.Links.Self.Href)
	if existing {
		api.WriteJSON(w, http.StatusOK, payment)
		return
	}
	api.WriteJSON(w, http.StatusCreated, payment)
}

// GetPayment handles GET /v1/payments/{paymentId}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "paymentId")
	if !validation.ResourceID(id) {
		api.WriteError(w, apierror.NewPaymentError(apierror.GetPaymentNotFound))
		return
	}

	payment, err := h.service.Get(r.Context(), middleware.GetAccountID(r.Context()), id,
		strategy.FromHeader(r.Header.Get(strategy.Header)))
	if err != nil {
		api.Fail(w, r, h.logger, apierror.GetPayment(err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, payment)
}

// GetPaymentEvents handles GET /v1/payments/{paymentId}/events
func (h *Handler) GetPaymentEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "paymentId")
	if !validation.ResourceID(id) {
		api.WriteError(w, apierror.NewPaymentError(apierror.GetPaymentEventsNotFound))
		return
	}

	history, err := h.service.Events(r.Context(), middleware.GetAccountID(r.Context()), id,
		strategy.FromHeader(r.Header.Get(strategy.Header)))
	if err != nil {
		api.Fail(w, r, h.logger, apierror.GetPaymentEvents(err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, history)
}

// SearchPayments handles GET /v1/payments
func (h *Handler) SearchPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if invalid := validation.Search(query, validation.PaymentSearch); len(invalid) > 0 {
		api.WriteError(w, apierror.SearchPayments(invalid, nil))
		return
	}

	results, err := h.service.Search(r.Context(), middleware.GetAccountID(r.Context()), query)
	if err != nil {
		api.Fail(w, r, h.logger, apierror.SearchPayments(nil, err), err)
		return
	}

	api.WriteJSON(w, http.StatusOK, results)
}

// CancelPayment handles POST /v1/payments/{paymentId}/cancel
func (h *Handler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "paymentId")
	if !validation.ResourceID(id) {
		api.WriteError(w, apierror.NewPaymentError(apierror.CancelPaymentNotFound))
		return
	}

	if err := h.service.Cancel(r.Context(), middleware.GetAccountID(r.Context()), id); err != nil {
		api.Fail(w, r, h.logger, apierror.CancelPayment(err), err)
		return
	}

	api.NoContent(w)
}

// CapturePayment handles POST /v1/payments/{paymentId}/capture
func (h *Handler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "paymentId")
	if !validation.ResourceID(id) {
		api.WriteError(w, apierror.NewPaymentError(apierror.CapturePaymentNotFound))
		return
	}

	if err := h.service.Capture(r.Context(), middleware.GetAccountID(r.Context()), id); err != nil {
		api.Fail(w, r, h.logger, apierror.CapturePayment(err), err)
		return
	}

	api.NoContent(w)
}
