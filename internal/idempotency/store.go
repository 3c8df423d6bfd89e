// Package idempotency replays the stored response of a POST that is retried
// with the same Idempotency-Key.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"publicapi/internal/common/database"
)

// Key identifies a stored response.
type Key struct {
	AccountID string
	Method    string
	Path      string
	Value     string
}

// Record is a stored response.
type Record struct {
	RequestHash string
	StatusCode  int
	Location    string
	Body        []byte
}

// Store persists responses by key.
type Store interface {
	Get(ctx context.Context, key Key) (*Record, bool, error)
	Save(ctx context.Context, key Key, rec Record, ttl time.Duration) error
}

// PostgresStore keeps records in the idempotency_records table.
type PostgresStore struct {
	db database.Querier
}

// NewPostgresStore creates a store on db.
func NewPostgresStore(db database.Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get returns the unexpired record for key.
func (s *PostgresStore) Get(ctx context.Context, key Key) (*Record, bool, error) {
	var rec Record
	err := s.db.QueryRow(ctx, `
		SELECT request_hash, status_code, COALESCE(location, ''), body
		FROM idempotency_records
		WHERE account_id = $1 AND method = $2 AND path = $3 AND idempotency_key = $4
		  AND expires_at > now()
	`, key.AccountID, key.Method, key.Path, key.Value).Scan(
		&rec.RequestHash, &rec.StatusCode, &rec.Location, &rec.Body,
	)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting idempotency record: %w", err)
	}
	return &rec, true, nil
}

// Save stores rec for ttl. An existing unexpired record wins.
func (s *PostgresStore) Save(ctx context.Context, key Key, rec Record, ttl time.Duration) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO idempotency_records (
			account_id, method, path, idempotency_key,
			request_hash, status_code, location, body, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, now() + $9::interval)
		ON CONFLICT (account_id, method, path, idempotency_key) DO UPDATE SET
			request_hash = EXCLUDED.request_hash,
			status_code  = EXCLUDED.status_code,
			location     = EXCLUDED.location,
			body         = EXCLUDED.body,
			created_at   = now(),
			expires_at   = EXCLUDED.expires_at
		WHERE idempotency_records.expires_at <= now()
	`, key.AccountID, key.Method, key.Path, key.Value,
		rec.RequestHash, rec.StatusCode, rec.Location, rec.Body,
		fmt.Sprintf("%d milliseconds", ttl.Milliseconds()),
	)
	if err != nil {
		return fmt.Errorf("saving idempotency record: %w", err)
	}
	return nil
}
