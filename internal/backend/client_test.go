package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"publicapi/internal/common/middleware"
)

type recorded struct {
	backend string
	status  int
}

type fakeRecorder struct {
	calls []recorded
}

func (f *fakeRecorder) ObserveBackend(backend string, status int, _ time.Duration) {
	f.calls = append(f.calls, recorded{backend, status})
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient("connector", srv.URL+"/", Config{Timeout: 5 * time.Second}, logger, opts...)
}

func TestDoDecodesSuccess(t *testing.T) {
	var gotPath, gotQuery, gotRequestID, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get(middleware.RequestIDHeader)
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"charge_id":"ch_1"}`)
	})

	ctx := middleware.WithCorrelationID(context.Background(), "corr-1")
	var out struct {
		ChargeID string `json:"charge_id"`
	}
	status, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/v1/api/accounts/1/charges",
		Query:  url.Values{"a": {"b"}},
		Body:   map[string]int{"amount": 100},
	}, &out)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("status = %d", status)
	}
	if out.ChargeID != "ch_1" {
		t.Errorf("charge_id = %q", out.ChargeID)
	}
	if gotPath != "/v1/api/accounts/1/charges" || gotQuery != "a=b" {
		t.Errorf("request = %s?%s", gotPath, gotQuery)
	}
	if gotRequestID != "corr-1" {
		t.Errorf("request id = %q", gotRequestID)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
}

func TestDoDecodesErrorBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		identifier string
		message    string
		reason     string
	}{
		{"string message", `{"message":"boom","error_identifier":"GENERIC"}`, "GENERIC", "boom", ""},
		{"list message", `{"message":["first","second"],"error_identifier":"REFUND_NOT_AVAILABLE","reason":"full"}`,
			IdentifierRefundNotAvailable, "first", "full"},
		{"not json", `<html>`, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusPreconditionFailed)
				_, _ = io.WriteString(w, tt.body)
			})

			status, err := c.Get(context.Background(), "/x", nil, nil)
			if status != http.StatusPreconditionFailed {
				t.Errorf("status = %d", status)
			}
			var be *Error
			if !errors.As(err, &be) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if be.Identifier != tt.identifier {
				t.Errorf("identifier = %q, want %q", be.Identifier, tt.identifier)
			}
			if be.Message() != tt.message {
				t.Errorf("message = %q, want %q", be.Message(), tt.message)
			}
			if be.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", be.Reason, tt.reason)
			}
			if StatusOf(err) != http.StatusPreconditionFailed {
				t.Errorf("StatusOf = %d", StatusOf(err))
			}
		})
	}
}

func TestNotFoundMatchesErrNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Get(context.Background(), "/missing", nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(%v, ErrNotFound) = false", err)
	}
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	rec := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient("ledger", base, Config{Timeout: time.Second}, logger, WithRecorder(rec))

	status, err := c.Get(context.Background(), "/v1/transaction/x", nil, nil)
	if status != 0 {
		t.Errorf("status = %d", status)
	}
	if StatusOf(err) != 0 || err == nil {
		t.Errorf("err = %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("unreachable backend must not match ErrNotFound")
	}
	if len(rec.calls) != 1 || rec.calls[0].backend != "ledger" || rec.calls[0].status != 0 {
		t.Errorf("recorded = %+v", rec.calls)
	}
}

func TestEmptySuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	var out map[string]any
	status, err := c.Post(context.Background(), "/cancel", nil, &out)
	if err != nil || status != http.StatusNoContent {
		t.Fatalf("status = %d, err = %v", status, err)
	}
	if out != nil {
		t.Errorf("out = %v, want nil", out)
	}
}
