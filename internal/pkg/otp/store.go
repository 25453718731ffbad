package otp

import (
	"context"
	"errors"
)

// ErrNoRecord indicates no record exists for the requested key.
var ErrNoRecord = errors.New("otp: no record for key")

// Store persists one-time password records keyed by Record.Key.
//
// Implementations must keep Get returning expired records for a while after
// expiry so callers can tell "expired" apart from "never issued".
type Store interface {
	// Put stores rec, replacing any existing record with the same key.
	Put(ctx context.Context, rec Record) error

	// Get returns the record for key, or ErrNoRecord when absent.
	Get(ctx context.Context, key string) (Record, error)

	// DeleteIfCode removes the record for key only when its stored digest
	// equals code, and reports whether a record was removed. Deleting an
	// absent key is not an error.
	DeleteIfCode(ctx context.Context, key string, code []byte) (bool, error)
}
