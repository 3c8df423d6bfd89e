package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"publicapi/internal/common/middleware"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(time.Second)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow(ctx, "1:POST", 3); !ok {
			t.Fatalf("request %d rejected", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "1:POST", 3); ok {
		t.Error("fourth request in window allowed")
	}
	if ok, _ := l.Allow(ctx, "2:POST", 3); !ok {
		t.Error("other account rejected")
	}

	now = now.Add(time.Second)
	if ok, _ := l.Allow(ctx, "1:POST", 3); !ok {
		t.Error("request in next window rejected")
	}
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ int) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func TestFallbackLimiter(t *testing.T) {
	primary := &stubLimiter{err: errors.New("redis down")}
	secondary := &stubLimiter{allowed: true}
	l := NewFallbackLimiter(primary, secondary, discard())

	ok, err := l.Allow(context.Background(), "k", 1)
	if err != nil || !ok {
		t.Fatalf("Allow = %v, %v", ok, err)
	}
	if len(secondary.keys) != 1 {
		t.Error("secondary not consulted")
	}

	primary.err = nil
	primary.allowed = false
	if ok, _ := l.Allow(context.Background(), "k", 1); ok {
		t.Error("primary decision ignored")
	}
	if len(secondary.keys) != 1 {
		t.Error("secondary consulted while primary healthy")
	}
}

type countingRecorder struct {
	classes []string
}

func (c *countingRecorder) ObserveRateLimited(class string) {
	c.classes = append(c.classes, class)
}

func TestMiddleware(t *testing.T) {
	cfg := Config{Value: 100, ValuePost: 15, PerMillis: 1000}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		method  string
		limiter *stubLimiter
		status  int
		key     string
	}{
		{"allowed get", http.MethodGet, &stubLimiter{allowed: true}, http.StatusOK, "7:other"},
		{"rejected post", http.MethodPost, &stubLimiter{allowed: false}, http.StatusTooManyRequests, "7:POST"},
		{"limiter error", http.MethodPost, &stubLimiter{err: errors.New("down")}, http.StatusOK, "7:POST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &countingRecorder{}
			h := Middleware(tt.limiter, cfg, rec, discard())(next)

			req := httptest.NewRequest(tt.method, "/v1/payments", nil)
			req = req.WithContext(middleware.WithAccountID(req.Context(), "7"))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if len(tt.limiter.keys) != 1 || tt.limiter.keys[0] != tt.key {
				t.Errorf("keys = %v, want [%s]", tt.limiter.keys, tt.key)
			}
			if tt.status == http.StatusTooManyRequests {
				if !strings.Contains(w.Body.String(), `"code":"P0900"`) {
					t.Errorf("body = %s", w.Body.String())
				}
				if len(rec.classes) != 1 || rec.classes[0] != ClassPost {
					t.Errorf("recorded = %v", rec.classes)
				}
			}
		})
	}
}

func TestConfigWindow(t *testing.T) {
	if got := (Config{PerMillis: 1500}).Window(); got != 1500*time.Millisecond {
		t.Errorf("Window = %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Config{Value: 100, ValuePost: 15, PerMillis: 1000}},
		{name: "zero window", cfg: Config{Value: 100, ValuePost: 15, PerMillis: 0}, wantErr: "RATE_LIMITER_PER_MILLIS"},
		{name: "negative window", cfg: Config{Value: 100, ValuePost: 15, PerMillis: -5}, wantErr: "RATE_LIMITER_PER_MILLIS"},
		{name: "zero limit", cfg: Config{Value: 0, ValuePost: 15, PerMillis: 1000}, wantErr: "RATE_LIMITER_VALUE "},
		{name: "zero post limit", cfg: Config{Value: 100, ValuePost: 0, PerMillis: 1000}, wantErr: "RATE_LIMITER_VALUE_POST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}
