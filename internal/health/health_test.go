package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		ledger Check
		status int
	}{
		{"all healthy", func(context.Context) error { return nil }, http.StatusOK},
		{"ledger down", func(context.Context) error { return errors.New("connection refused") }, http.StatusServiceUnavailable},
		{"ledger slow", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(50*time.Millisecond, logger)
			c.Add("connector", func(context.Context) error { return nil })
			c.Add("ledger", tt.ledger)

			rec := httptest.NewRecorder()
			c.Handler(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body map[string]Status
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if !body["connector"].Healthy {
				t.Error("connector reported unhealthy")
			}
			if body["ledger"].Healthy != (tt.status == http.StatusOK) {
				t.Errorf("ledger = %+v", body["ledger"])
			}
		})
	}
}
