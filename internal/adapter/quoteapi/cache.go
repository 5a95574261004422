package quoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/service"
)

// CachedLookup wraps a QuoteLookup with a Redis cache. The cache is best
// effort: Redis failures fall through to the underlying source so a
// cache outage never breaks pricing.
type CachedLookup struct {
	next service.QuoteLookup
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedLookup(next service.QuoteLookup, rdb *redis.Client, ttl time.Duration) *CachedLookup {
	return &CachedLookup{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
	}
}

var _ service.QuoteLookup = (*CachedLookup)(nil)

func (c *CachedLookup) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	key := cacheKey(symbol)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var quote domain.Quote
		if err := json.Unmarshal([]byte(cached), &quote); err == nil {
			return &quote, nil
		}
		// Unreadable cache entry, refetch below
	}

	quote, err := c.next.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(quote); err == nil {
		_ = c.rdb.Set(ctx, key, data, c.ttl).Err()
	}

	return quote, nil
}

func cacheKey(symbol string) string {
	return fmt.Sprintf("quote:%s", symbol)
}
