// Package kvstore provides the narrow blob persistence interface the unlock
// registry and interaction store are built on. Each store owns one logical
// key (or key prefix) and treats its value as an opaque JSON snapshot.
package kvstore

import "context"

// Store is a durable key-value store of opaque blobs.
type Store interface {
	// Load returns the blob stored under key, or (nil, nil) when absent.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
