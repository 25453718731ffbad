package otp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys are compared against the base64 form the digest takes after JSON
// encoding, so the script never needs to re-hash anything.
var deleteIfCodeScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
local rec = cjson.decode(val)
if rec.code == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`)

// RedisStore is a Store backed by Redis. Records are JSON values whose Redis
// TTL exceeds the record lifetime by a grace period, so an expired record is
// still readable for a while and lookups can distinguish expired from absent.
type RedisStore struct {
	client *redis.Client
	prefix string
	grace  time.Duration
}

// NewRedisStore creates a RedisStore. grace controls how long Redis keeps a
// record beyond its own expiry.
func NewRedisStore(client *redis.Client, grace time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: "otp:", grace: grace}
}

// Put stores rec, replacing any existing record with the same key.
func (s *RedisStore) Put(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	ttl := time.Until(rec.ExpiresAt) + s.grace

	return s.client.Set(ctx, s.prefix+rec.Key, payload, ttl).Err()
}

// Get returns the record for key, or ErrNoRecord when absent.
func (s *RedisStore) Get(ctx context.Context, key string) (Record, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNoRecord
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(val, &rec); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// DeleteIfCode removes the record for key only when its stored digest equals
// code. The compare and delete run as one script so a record replaced in
// between is left alone.
func (s *RedisStore) DeleteIfCode(ctx context.Context, key string, code []byte) (bool, error) {
	encoded := base64.StdEncoding.EncodeToString(code)

	n, err := deleteIfCodeScript.Run(ctx, s.client, []string{s.prefix + key}, encoded).Int()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}
