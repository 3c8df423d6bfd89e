// Package strategy chooses which backend serves a read.
package strategy

import (
	"context"
	"errors"

	"publicapi/internal/backend"
)

// Header selects the strategy of a request.
const Header = "X-Ledger"

// Strategy is the backend selection for a read.
type Strategy int

const (
	// Default reads connector and falls back to ledger when connector has no record.
	Default Strategy = iota
	LedgerOnly
	ConnectorOnly
)

// FromHeader parses the X-Ledger header value. Unknown values are Default.
func FromHeader(value string) Strategy {
	switch value {
	case "ledger-only":
		return LedgerOnly
	case "connector-only":
		return ConnectorOnly
	default:
		return Default
	}
}

// String is the header value that selects s.
func (s Strategy) String() string {
	switch s {
	case LedgerOnly:
		return "ledger-only"
	case ConnectorOnly:
		return "connector-only"
	default:
		return "default"
	}
}

// Execute runs the read selected by s.
func Execute[T any](ctx context.Context, s Strategy, fromConnector, fromLedger func(context.Context) (T, error)) (T, error) {
	switch s {
	case LedgerOnly:
		return fromLedger(ctx)
	case ConnectorOnly:
		return fromConnector(ctx)
	}

	result, err := fromConnector(ctx)
	if err != nil && errors.Is(err, backend.ErrNotFound) {
		return fromLedger(ctx)
	}
	return result, err
}

// ConnectorUnlessLedger runs fromLedger only when s is LedgerOnly.
func ConnectorUnlessLedger[T any](ctx context.Context, s Strategy, fromConnector, fromLedger func(context.Context) (T, error)) (T, error) {
	if s == LedgerOnly {
		return fromLedger(ctx)
	}
	return fromConnector(ctx)
}
