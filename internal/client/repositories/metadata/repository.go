// Package metadata is a small key/value store backing the CLI session.
package metadata

import "context"

type Repository interface {
	// Get returns nil and no error when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
