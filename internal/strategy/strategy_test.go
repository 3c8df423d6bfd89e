package strategy

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"publicapi/internal/backend"
)

func TestFromHeader(t *testing.T) {
	tests := map[string]Strategy{
		"":               Default,
		"ledger-only":    LedgerOnly,
		"connector-only": ConnectorOnly,
		"LEDGER-ONLY":    Default,
		"true":           Default,
	}
	for value, want := range tests {
		if got := FromHeader(value); got != want {
			t.Errorf("FromHeader(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestExecute(t *testing.T) {
	notFound := &backend.Error{Backend: "connector", StatusCode: http.StatusNotFound}
	failed := &backend.Error{Backend: "connector", StatusCode: http.StatusInternalServerError}

	tests := []struct {
		name         string
		strategy     Strategy
		connectorErr error
		want         string
		wantErr      bool
		ledgerCalled bool
	}{
		{"default found in connector", Default, nil, "connector", false, false},
		{"default falls back on not found", Default, notFound, "ledger", false, true},
		{"default keeps other errors", Default, failed, "", true, false},
		{"ledger only", LedgerOnly, nil, "ledger", false, true},
		{"connector only not found", ConnectorOnly, notFound, "", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledgerCalled := false
			fromConnector := func(context.Context) (string, error) {
				if tt.connectorErr != nil {
					return "", tt.connectorErr
				}
				return "connector", nil
			}
			fromLedger := func(context.Context) (string, error) {
				ledgerCalled = true
				return "ledger", nil
			}

			got, err := Execute(context.Background(), tt.strategy, fromConnector, fromLedger)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if ledgerCalled != tt.ledgerCalled {
				t.Errorf("ledger called = %v, want %v", ledgerCalled, tt.ledgerCalled)
			}
		})
	}
}

func TestConnectorUnlessLedger(t *testing.T) {
	fromConnector := func(context.Context) (string, error) { return "", errors.New("connector down") }
	fromLedger := func(context.Context) (string, error) { return "ledger", nil }

	if _, err := ConnectorUnlessLedger(context.Background(), Default, fromConnector, fromLedger); err == nil {
		t.Error("default must not fall back to ledger")
	}
	got, err := ConnectorUnlessLedger(context.Background(), LedgerOnly, fromConnector, fromLedger)
	if err != nil || got != "ledger" {
		t.Errorf("ledger only = %q, %v", got, err)
	}
}
