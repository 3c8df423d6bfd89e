package auth

import (
	"context"
	"log/slog"
	"net/http"

	"publicapi/internal/apierror"
	"publicapi/internal/backend/publicauth"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
)

// Authenticator resolves an API key to its account.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*publicauth.Account, error)
}

type accountKey struct{}

// AccountFrom returns the authenticated account of the request.
func AccountFrom(ctx context.Context) (*publicauth.Account, bool) {
	a, ok := ctx.Value(accountKey{}).(*publicauth.Account)
	return a, ok
}

// WithAccount stores the authenticated account in ctx.
func WithAccount(ctx context.Context, a *publicauth.Account) context.Context {
	ctx = middleware.RecordAccount(ctx, a.AccountID)
	return context.WithValue(ctx, accountKey{}, a)
}

// Middleware authenticates the bearer API key. Keys with a bad checksum are
// rejected without calling public auth.
func Middleware(authn Authenticator, secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey, ok := middleware.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				api.Unauthorized(w)
				return
			}
			if !ValidChecksum(apiKey, secret) {
				logger.Info("api key failed checksum", "correlation_id", middleware.GetCorrelationID(r.Context()))
				api.Unauthorized(w)
				return
			}

			account, err := authn.Authenticate(r.Context(), apiKey)
			if err != nil {
				logger.Warn("api key not authenticated",
					"error", err,
					"correlation_id", middleware.GetCorrelationID(r.Context()),
				)
				api.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
		})
	}
}

// RequireTokenType rejects keys of another token type with 403.
func RequireTokenType(tokenType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFrom(r.Context())
			if !ok {
				api.Unauthorized(w)
				return
			}
			if account.TokenType != tokenType {
				api.WriteError(w, apierror.TokenType())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
