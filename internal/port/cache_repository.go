package port

import (
	"context"
	"time"
)

type CacheRepository interface {
	// GetJSON unmarshals the cached value for key into dest; ok is false on a
	// cache miss.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)

	// SetJSON stores the JSON encoding of value under key with a TTL.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
}
