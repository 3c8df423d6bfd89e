package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"publicapi/internal/backend/publicauth"
	"publicapi/internal/common/middleware"
)

const secret = "qwer9yuhgf"

func TestChecksum(t *testing.T) {
	token := "6ub7r7ml7b5o3okmhcnbkcpde8"
	sum := Checksum(token, secret)

	if len(sum) != ChecksumLength {
		t.Fatalf("len(checksum) = %d, want %d", len(sum), ChecksumLength)
	}
	if sum != strings.ToLower(sum) {
		t.Errorf("checksum %q is not lower case", sum)
	}
	if !ValidChecksum(token+sum, secret) {
		t.Error("valid key rejected")
	}
	if ValidChecksum(token+sum, "other-secret") {
		t.Error("key accepted with another secret")
	}
	if ValidChecksum(sum, secret) {
		t.Error("key without token accepted")
	}
	tampered := token + strings.Repeat("a", ChecksumLength)
	if ValidChecksum(tampered, secret) {
		t.Error("tampered key accepted")
	}
}

type fakeAuthenticator struct {
	account *publicauth.Account
	err     error
	calls   int
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, _ string) (*publicauth.Account, error) {
	f.calls++
	return f.account, f.err
}

func validKey(token string) string {
	return token + Checksum(token, secret)
}

func TestMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	card := &publicauth.Account{AccountID: "42", TokenType: publicauth.TokenTypeCard}

	tests := []struct {
		name      string
		header    string
		authn     *fakeAuthenticator
		status    int
		authCalls int
	}{
		{"no header", "", &fakeAuthenticator{account: card}, http.StatusUnauthorized, 0},
		{"not bearer", "Basic abc", &fakeAuthenticator{account: card}, http.StatusUnauthorized, 0},
		{"bad checksum", "Bearer " + strings.Repeat("x", 60), &fakeAuthenticator{account: card}, http.StatusUnauthorized, 0},
		{"unknown key", "Bearer " + validKey("token1"), &fakeAuthenticator{err: errors.New("401")}, http.StatusUnauthorized, 1},
		{"valid", "Bearer " + validKey("token1"), &fakeAuthenticator{account: card}, http.StatusOK, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				a, _ := AccountFrom(r.Context())
				seen = a.AccountID
				if middleware.GetAccountID(r.Context()) != "42" {
					t.Error("account id missing from context")
				}
			})
			h := Middleware(tt.authn, secret, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "/v1/payments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.authn.calls != tt.authCalls {
				t.Errorf("authenticate calls = %d, want %d", tt.authn.calls, tt.authCalls)
			}
			if tt.status == http.StatusOK && seen != "42" {
				t.Errorf("account = %q", seen)
			}
		})
	}
}

func TestRequireTokenType(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireTokenType(publicauth.TokenTypeDirectDebit)(next)

	tests := []struct {
		name      string
		tokenType string
		status    int
	}{
		{"matching", publicauth.TokenTypeDirectDebit, http.StatusNoContent},
		{"other type", publicauth.TokenTypeCard, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/directdebit/mandates", nil)
			ctx := WithAccount(req.Context(), &publicauth.Account{AccountID: "1", TokenType: tt.tokenType})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusForbidden && !strings.Contains(rec.Body.String(), `"P0920"`) {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d", rec.Code)
	}
}
