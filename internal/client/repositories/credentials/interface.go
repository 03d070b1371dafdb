// Package credentials stores the client's credential entries as namespaced
// key/value rows in the local SQLite database.
package credentials

import (
	"context"
)

// Repository is a key/value view over one namespace. Get returns
// (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
