// Package ratelimit provides fixed-window request limiting keyed by an
// arbitrary string, typically a client IP.
//
// Two implementations exist: an in-process limiter for single-instance
// deployments and a Redis limiter when the window must be shared between
// replicas.
package ratelimit

import "context"

// Limiter decides whether key may perform another action within the current
// window.
type Limiter interface {
	// Allow reports whether the action is permitted. It counts the attempt
	// either way.
	Allow(ctx context.Context, key string) (bool, error)
}
