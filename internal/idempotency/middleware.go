package idempotency

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"publicapi/internal/apierror"
	"publicapi/internal/common/api"
	"publicapi/internal/common/middleware"
	"publicapi/internal/validation"
)

// DefaultTTL is how long a response is replayable.
const DefaultTTL = 24 * time.Hour

// ReplayedHeader marks a response served from the store.
const ReplayedHeader = "X-Idempotency-Replayed"

// Middleware replays responses of POSTs carrying an Idempotency-Key. It must
// run after authentication so records are scoped to the account.
func Middleware(store Store, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			values, present := r.Header[http.CanonicalHeaderKey(validation.IdempotencyKeyHeader)]
			if !present {
				next.ServeHTTP(w, r)
				return
			}
			value := values[0]
			if verr := validation.IdempotencyKey(value, true); verr != nil {
				api.WriteError(w, apierror.Validation(verr))
				return
			}

			body, err := api.ReadBody(r)
			if err != nil {
				api.WriteError(w, apierror.Validation(validation.Unparseable()))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := Key{
				AccountID: middleware.GetAccountID(r.Context()),
				Method:    r.Method,
				Path:      r.URL.Path,
				Value:     value,
			}
			hash := requestHash(body)

			rec, found, err := store.Get(r.Context(), key)
			if err != nil {
				logger.Warn("idempotency lookup failed", "error", err, "path", key.Path)
				next.ServeHTTP(w, r)
				return
			}
			if found {
				if rec.RequestHash != hash {
					api.WriteError(w, apierror.NewRequestError(apierror.IdempotencyKeyReused))
					return
				}
				replay(w, rec)
				return
			}

			recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status < 200 || recorder.status > 299 {
				return
			}
			err = store.Save(r.Context(), key, Record{
				RequestHash: hash,
				StatusCode:  recorder.status,
				Location:    recorder.Header().Get("Location"),
				Body:        recorder.body.Bytes(),
			}, ttl)
			if err != nil {
				logger.Warn("idempotency save failed", "error", err, "path", key.Path)
			}
		})
	}
}

func replay(w http.ResponseWriter, rec *Record) {
	if rec.Location != "" {
		w.Header().Set("Location", rec.Location)
	}
	if len(rec.Body) > 0 {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(rec.StatusCode)
	_, _ = w.Write(rec.Body)
}

func requestHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
