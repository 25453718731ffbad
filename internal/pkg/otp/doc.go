// Package otp implements short-lived numeric one-time passwords keyed by an
// arbitrary string (typically an email address).
//
// A Manager issues codes, verifies presented codes without consuming them, and
// consumes a code atomically together with a caller-supplied commit action.
// Codes are never stored in plaintext; only a keyed digest is kept. Storage is
// pluggable: an in-process store for single-instance deployments and a Redis
// store when state must survive restarts or be shared between replicas.
package otp
