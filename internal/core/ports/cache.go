package ports

import (
	"context"
	"time"
)

// ReadCache is a non-authoritative cache for public read models. A miss or
// an error always falls through to storage; nothing read from it is ever used
// for an authorization decision.
type ReadCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
