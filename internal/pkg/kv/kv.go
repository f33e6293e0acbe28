// Package kv provides the durable key-value storage used for client
// session snapshots.
package kv

import "context"

// Store is a minimal key-value interface. Implementations must treat a
// missing key as (nil, false, nil), not as an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
