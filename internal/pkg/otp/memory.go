package otp

import (
	"bytes"
	"context"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
)

const memoryShards = 16

// MemoryStore is an in-process Store backed by sharded maps.
//
// Expired records are kept until the janitor removes them a grace period
// after expiry, so lookups can still report "expired" instead of "not found".
type MemoryStore struct {
	shards  [memoryShards]memoryShard
	clock   clock.Clocker
	grace   time.Duration
	running atomic.Bool
	stop    chan struct{}
	done    chan struct{}
}

type memoryShard struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryStore creates a MemoryStore. grace controls how long records
// linger after expiry before the janitor reclaims them.
func NewMemoryStore(clk clock.Clocker, grace time.Duration) *MemoryStore {
	s := &MemoryStore{
		clock: clk,
		grace: grace,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	for i := range s.shards {
		s.shards[i].records = make(map[string]Record)
	}

	return s
}

// StartJanitor begins periodic cleanup of long-expired records. It is a no-op
// when the janitor is already running.
func (s *MemoryStore) StartJanitor(interval time.Duration) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Close stops the janitor goroutine if it is running.
func (s *MemoryStore) Close() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	close(s.stop)
	<-s.done

	return nil
}

// Put stores rec, replacing any existing record with the same key.
func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	shard := s.shard(rec.Key)
	shard.mu.Lock()
	shard.records[rec.Key] = rec
	shard.mu.Unlock()

	return nil
}

// Get returns the record for key, or ErrNoRecord when absent.
func (s *MemoryStore) Get(_ context.Context, key string) (Record, error) {
	shard := s.shard(key)
	shard.mu.Lock()
	rec, ok := shard.records[key]
	shard.mu.Unlock()

	if !ok {
		return Record{}, ErrNoRecord
	}

	return rec, nil
}

// DeleteIfCode removes the record for key only when its stored digest equals
// code.
func (s *MemoryStore) DeleteIfCode(_ context.Context, key string, code []byte) (bool, error) {
	shard := s.shard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	rec, ok := shard.records[key]
	if !ok || !bytes.Equal(rec.Code, code) {
		return false, nil
	}

	delete(shard.records, key)

	return true, nil
}

func (s *MemoryStore) sweep() {
	cutoff := s.clock.Now().Add(-s.grace)
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		for key, rec := range shard.records {
			if rec.ExpiresAt.Before(cutoff) {
				delete(shard.records, key)
			}
		}
		shard.mu.Unlock()
	}
}

func (s *MemoryStore) shard(key string) *memoryShard {
	h := fnv.New32a()
	h.Write([]byte(key))

	return &s.shards[h.Sum32()%memoryShards]
}
