package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/hash"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, *MemoryStore, *fakeClock) {
	t.Helper()

	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(clk, time.Hour)
	mgr := NewManager(store, hash.NewHMACSHA256("test-secret"), clk, ttl)

	return mgr, store, clk
}

func TestIssueAndVerify(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	code, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digit code, got %q", code)
	}

	outcome, err := mgr.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected valid, got %s", outcome)
	}

	// Verify does not consume; a second check still passes.
	outcome, err = mgr.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("second verify failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected valid on repeat verify, got %s", outcome)
	}
}

func TestVerifyUnknownKey(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10*time.Minute)

	outcome, err := mgr.Verify(context.Background(), "nobody@example.com", "123456")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeNotFound {
		t.Fatalf("expected not_found, got %s", outcome)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	code, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	outcome, err := mgr.Verify(ctx, "user@example.com", wrong)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeMismatch {
		t.Fatalf("expected mismatch, got %s", outcome)
	}
}

func TestVerifyRequiresExactMatch(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	code, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	for _, presented := range []string{" " + code, code + " ", code + "0", code[:5]} {
		outcome, err := mgr.Verify(ctx, "user@example.com", presented)
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if outcome != OutcomeMismatch {
			t.Fatalf("presented %q: expected mismatch, got %s", presented, outcome)
		}
	}
}

func TestVerifyExpired(t *testing.T) {
	mgr, store, clk := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	code, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	clk.now = clk.now.Add(10*time.Minute + time.Second)

	outcome, err := mgr.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeExpired {
		t.Fatalf("expected expired, got %s", outcome)
	}

	// The expired record is removed on sight; it is gone now.
	if _, err := store.Get(ctx, "user@example.com"); err != ErrNoRecord {
		t.Fatalf("expected record removed after expiry check, got %v", err)
	}

	outcome, err = mgr.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeNotFound {
		t.Fatalf("expected not_found after cleanup, got %s", outcome)
	}
}

func TestVerifyAtExactExpiry(t *testing.T) {
	mgr, _, clk := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	code, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// A record is live through expiresAt inclusive.
	clk.now = clk.now.Add(10 * time.Minute)
	outcome, err := mgr.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected valid at exact expiry instant, got %s", outcome)
	}

	clk.now = clk.now.Add(time.Nanosecond)
	outcome, err = mgr.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeExpired {
		t.Fatalf("expected expired past expiry instant, got %s", outcome)
	}
}

// reissueOnGetStore issues a fresh code between the manager's read of a record
// and whatever the manager does with it, mimicking a concurrent request.
type reissueOnGetStore struct {
	*MemoryStore
	issue func(ctx context.Context) error
	fired bool
}

func (s *reissueOnGetStore) Get(ctx context.Context, key string) (Record, error) {
	rec, err := s.MemoryStore.Get(ctx, key)
	if err == nil && s.issue != nil && !s.fired {
		s.fired = true
		if err := s.issue(ctx); err != nil {
			return Record{}, err
		}
	}

	return rec, err
}

func TestExpiredReapDoesNotClobberReissuedCode(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := &reissueOnGetStore{MemoryStore: NewMemoryStore(clk, time.Hour)}
	mgr := NewManager(store, hash.NewHMACSHA256("test-secret"), clk, 10*time.Minute)
	ctx := context.Background()

	stale, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	clk.now = clk.now.Add(10*time.Minute + time.Second)

	var fresh string
	store.issue = func(ctx context.Context) error {
		var err error
		fresh, err = mgr.Issue(ctx, "user@example.com")
		return err
	}

	// The stale code is seen expired while the re-issue lands in between.
	outcome, err := mgr.Verify(ctx, "user@example.com", stale)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeExpired {
		t.Fatalf("expected expired for stale code, got %s", outcome)
	}

	// The lazy reap must only remove the record it observed, never the
	// fresh one issued in between.
	outcome, err = mgr.Verify(ctx, "user@example.com", fresh)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected reissued code to survive the lazy reap, got %s", outcome)
	}
}

func TestIssueReplacesPreviousCode(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	first, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("first issue failed: %v", err)
	}

	second, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("second issue failed: %v", err)
	}

	if first != second {
		outcome, err := mgr.Verify(ctx, "user@example.com", first)
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if outcome != OutcomeMismatch {
			t.Fatalf("expected old code to mismatch, got %s", outcome)
		}
	}

	outcome, err := mgr.Verify(ctx, "user@example.com", second)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected new code to be valid, got %s", outcome)
	}
}

func TestConsumeDeletesAfterCommit(t *testing.T) {
	mgr, store, _ := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	code, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	committed := false
	outcome, err := mgr.Consume(ctx, "user@example.com", code, func(context.Context) error {
		committed = true
		return nil
	})
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected valid, got %s", outcome)
	}
	if !committed {
		t.Fatal("commit was not called")
	}

	if _, err := store.Get(ctx, "user@example.com"); err != ErrNoRecord {
		t.Fatalf("expected record removed after consume, got %v", err)
	}
}

func TestConsumeCommitFailureKeepsRecord(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	code, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	errBoom := errors.New("boom")
	outcome, err := mgr.Consume(ctx, "user@example.com", code, func(context.Context) error {
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected commit error, got %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected valid outcome with commit error, got %s", outcome)
	}

	// The code survives a failed commit and can be retried.
	outcome, err = mgr.Consume(ctx, "user@example.com", code, func(context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("retry consume failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected valid on retry, got %s", outcome)
	}
}

func TestConsumeDoesNotClobberReissuedCode(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	first, err := mgr.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	var second string
	outcome, err := mgr.Consume(ctx, "user@example.com", first, func(ctx context.Context) error {
		// A concurrent request issues a fresh code mid-commit.
		for second == "" || second == first {
			second, err = mgr.Issue(ctx, "user@example.com")
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected valid, got %s", outcome)
	}

	outcome, err = mgr.Verify(ctx, "user@example.com", second)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Fatalf("expected reissued code to survive consume, got %s", outcome)
	}
}

func TestConsumeNonValidOutcomeSkipsCommit(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10*time.Minute)
	ctx := context.Background()

	called := false
	outcome, err := mgr.Consume(ctx, "nobody@example.com", "123456", func(context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if outcome != OutcomeNotFound {
		t.Fatalf("expected not_found, got %s", outcome)
	}
	if called {
		t.Fatal("commit must not run without a valid code")
	}
}

func TestMemoryStoreJanitor(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(clk, time.Minute)
	ctx := context.Background()

	rec := Record{
		Key:       "user@example.com",
		Code:      []byte("digest"),
		IssuedAt:  clk.now,
		ExpiresAt: clk.now.Add(time.Minute),
	}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// Expired but still inside the grace window: kept.
	clk.now = clk.now.Add(90 * time.Second)
	store.sweep()
	if _, err := store.Get(ctx, rec.Key); err != nil {
		t.Fatalf("expected record inside grace window, got %v", err)
	}

	// Past expiry plus grace: reclaimed.
	clk.now = clk.now.Add(2 * time.Minute)
	store.sweep()
	if _, err := store.Get(ctx, rec.Key); err != ErrNoRecord {
		t.Fatalf("expected record reclaimed, got %v", err)
	}
}
