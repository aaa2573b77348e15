package cache

import (
	"context"
	"time"
)

// Cache is a small read-through cache for hot, cheap-to-rebuild lookups
// such as a user's favorite-ID set. A missing key is not an error: Get
// returns ("", nil).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
