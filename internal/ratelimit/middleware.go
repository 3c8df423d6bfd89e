package ratelimit

import (
	"log/slog"
	"net/http"

	"publicapi/internal/apierror"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
)

// Method classes counted separately.
const (
	ClassPost  = "POST"
	ClassOther = "other"
)

// Recorder observes rejected requests.
type Recorder interface {
	ObserveRateLimited(methodClass string)
}

// Middleware rejects requests over the account's allowance with 429. It must
// run after authentication. A limiter error lets the request through.
func Middleware(limiter Limiter, cfg Config, recorder Recorder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class, limit := ClassOther, cfg.Value
			if r.Method == http.MethodPost {
				class, limit = ClassPost, cfg.ValuePost
			}
			key := middleware.GetAccountID(r.Context()) + ":" + class

			allowed, err := limiter.Allow(r.Context(), key, limit)
			if err != nil {
				logger.Error("rate limiter failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if recorder != nil {
					recorder.ObserveRateLimited(class)
				}
				logger.Info("rate limit exceeded",
					"account_id", middleware.GetAccountID(r.Context()),
					"method_class", class,
				)
				api.WriteError(w, apierror.RateLimited())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
