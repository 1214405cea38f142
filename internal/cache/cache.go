// README: Time-bounded in-process cache for product lookups.
package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"giftgenie/internal/providers"
)

const (
	// DefaultTTL is how long a lookup result (including "not found") stays valid.
	DefaultTTL = 24 * time.Hour
	// sweepThreshold triggers expired-entry reclamation on write. This is
	// not LRU: only entries past their TTL are removed.
	sweepThreshold = 1000
)

// FetchFunc performs the upstream lookup on a cache miss. A nil product
// with nil error means "not found" and is memoized like any other result.
type FetchFunc func(ctx context.Context) (*providers.Product, error)

type entry struct {
	product   *providers.Product
	expiresAt time.Time
}

// ProductCache memoizes product lookups keyed by normalized query text
// plus price bounds. One instance is shared by all requests in the
// process; a coarse mutex guards the map (last write wins on a race).
type ProductCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

func New() *ProductCache {
	return &ProductCache{
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// GetOrFetch returns the cached result for (query, minPrice, maxPrice)
// when a live entry exists, otherwise calls fetch exactly once and
// stores its outcome. Fetch errors are not cached.
func (c *ProductCache) GetOrFetch(ctx context.Context, query string, minPrice, maxPrice float64, fetch FetchFunc) (*providers.Product, error) {
	key := cacheKey(query, minPrice, maxPrice)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.expiresAt.After(c.now()) {
		c.mu.Unlock()
		log.Printf("[cache] HIT %q", query)
		return e.product, nil
	}
	c.mu.Unlock()

	log.Printf("[cache] MISS %q", query)
	product, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{product: product, expiresAt: c.now().Add(c.ttl)}
	if len(c.entries) > sweepThreshold {
		c.sweepLocked()
	}
	c.mu.Unlock()

	return product, nil
}

// Len reports the current entry count.
func (c *ProductCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweepLocked drops every expired entry. Caller holds c.mu.
func (c *ProductCache) sweepLocked() {
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if !e.expiresAt.After(now) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[cache] swept %d expired entries, %d remain", removed, len(c.entries))
	}
}

func cacheKey(query string, minPrice, maxPrice float64) string {
	return fmt.Sprintf("%s|%s|%s",
		strings.ToLower(strings.TrimSpace(query)),
		formatBound(minPrice),
		formatBound(maxPrice),
	)
}

// formatBound renders a price bound, empty for "unset" to match keys
// produced before a bound was introduced.
func formatBound(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
