// Package server assembles the gateway's HTTP router.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"publicapi/internal/auth"
	"publicapi/internal/backend/publicauth"
	"publicapi/internal/common/metrics"
	"publicapi/internal/common/middleware"
	"publicapi/internal/health"
	"publicapi/internal/idempotency"
	"publicapi/internal/ratelimit"
)

// Registrar adds a group of routes to a router.
type Registrar interface {
	Register(r chi.Router)
}

// Options wires the router.
type Options struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Health         *health.Checker
	AllowedOrigins []string

	Authenticator auth.Authenticator
	HMACSecret    string

	Limiter   ratelimit.Limiter
	RateLimit ratelimit.Config

	// IdempotencyStore is nil when replay is disabled.
	IdempotencyStore idempotency.Store
	IdempotencyTTL   time.Duration

	// Card routes require a CARD key. Idempotent card routes additionally
	// replay responses by Idempotency-Key.
	Card           []Registrar
	CardIdempotent []Registrar
	// DirectDebit routes require a DIRECT_DEBIT key.
	DirectDebit []Registrar
}

// NewRouter builds the gateway router.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CorrelationID)
	r.Use(middleware.Recoverer(opts.Logger))
	r.Use(middleware.Logger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(middleware.Instrument(opts.Metrics))
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}
	r.Use(chimw.Compress(5))

	if opts.Health != nil {
		r.Get("/healthcheck", opts.Health.Handler)
	}
	r.Get("/ready", health.Ready)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(opts.Authenticator, opts.HMACSecret, opts.Logger))
		if opts.Limiter != nil {
			var recorder ratelimit.Recorder
			if opts.Metrics != nil {
				recorder = opts.Metrics
			}
			r.Use(ratelimit.Middleware(opts.Limiter, opts.RateLimit, recorder, opts.Logger))
		}

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireTokenType(publicauth.TokenTypeCard))
			for _, h := range opts.Card {
				h.Register(r)
			}
			r.Group(func(r chi.Router) {
				if opts.IdempotencyStore != nil {
					r.Use(idempotency.Middleware(opts.IdempotencyStore, opts.IdempotencyTTL, opts.Logger))
				}
				for _, h := range opts.CardIdempotent {
					h.Register(r)
				}
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireTokenType(publicauth.TokenTypeDirectDebit))
			for _, h := range opts.DirectDebit {
				h.Register(r)
			}
		})
	})

	return r
}
