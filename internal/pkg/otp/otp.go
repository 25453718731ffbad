package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/hash"
)

// Outcome is the result of checking a presented code against a stored record.
type Outcome int

const (
	// OutcomeValid means the code matches a live record.
	OutcomeValid Outcome = iota
	// OutcomeNotFound means no record exists for the key.
	OutcomeNotFound
	// OutcomeExpired means a record existed but its lifetime has passed.
	OutcomeExpired
	// OutcomeMismatch means a live record exists but the code does not match.
	OutcomeMismatch
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeExpired:
		return "expired"
	case OutcomeMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Record is a stored one-time password. Code holds a keyed digest of the
// issued code, never the plaintext.
type Record struct {
	Key       string    `json:"key"`
	Code      []byte    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

const codeDigits = 6

// Manager issues and checks one-time passwords.
//
// Issuing a new code for a key replaces any previous record for that key, so
// at most one code is live per key at any time.
type Manager struct {
	store  Store
	hasher hash.Hash
	clock  clock.Clocker
	ttl    time.Duration
}

// NewManager constructs a Manager. ttl is the lifetime of issued codes.
func NewManager(store Store, hasher hash.Hash, clk clock.Clocker, ttl time.Duration) *Manager {
	return &Manager{store: store, hasher: hasher, clock: clk, ttl: ttl}
}

// TTL returns the lifetime applied to issued codes.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue generates a fresh 6 digit code for key, stores its digest, and
// returns the plaintext code for delivery to the user. Any previous code for
// the same key stops being valid.
func (m *Manager) Issue(ctx context.Context, key string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	digest, err := m.hasher.Hash(code)
	if err != nil {
		return "", err
	}

	now := m.clock.Now()
	rec := Record{
		Key:       key,
		Code:      digest,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Put(ctx, rec); err != nil {
		return "", err
	}

	return code, nil
}

// Verify checks code against the record for key without consuming it. The
// presented code must match the issued one exactly; any textual difference is
// a mismatch. An expired record is removed on sight.
func (m *Manager) Verify(ctx context.Context, key, code string) (Outcome, error) {
	_, outcome, err := m.check(ctx, key, code)

	return outcome, err
}

// Consume checks code against the record for key and, when it matches, runs
// commit and then deletes the record. The record is only removed after commit
// succeeds, so a failed commit leaves the code usable for a retry. The
// deletion is conditional on the record still holding the same digest, so a
// code issued concurrently is never clobbered.
func (m *Manager) Consume(ctx context.Context, key, code string, commit func(context.Context) error) (Outcome, error) {
	rec, outcome, err := m.check(ctx, key, code)
	if err != nil {
		return outcome, err
	}

	if outcome != OutcomeValid {
		return outcome, nil
	}

	if err := commit(ctx); err != nil {
		return OutcomeValid, err
	}

	if _, err := m.store.DeleteIfCode(ctx, key, rec.Code); err != nil {
		return OutcomeValid, err
	}

	return OutcomeValid, nil
}

func (m *Manager) check(ctx context.Context, key, code string) (Record, Outcome, error) {
	rec, err := m.store.Get(ctx, key)
	if err == ErrNoRecord {
		return Record{}, OutcomeNotFound, nil
	}
	if err != nil {
		return Record{}, OutcomeNotFound, err
	}

	if m.clock.Now().After(rec.ExpiresAt) {
		// Lazy cleanup, conditional on the digest so a record re-issued
		// between the read and the delete is left alone. A failure here
		// does not change the outcome.
		_, _ = m.store.DeleteIfCode(ctx, key, rec.Code)
		return Record{}, OutcomeExpired, nil
	}

	if !m.hasher.Verify(string(rec.Code), code) {
		return Record{}, OutcomeMismatch, nil
	}

	return rec, OutcomeValid, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
