package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// cacheKey identifies one (customer, content) price lookup.
type cacheKey struct {
	customerUUID uuid.UUID
	contentKey   string
}

// Resolver prices content for a customer by consulting the catalog service,
// memoizing results per (customer, content) pair for the lifetime of the
// resolver instance. The cache is an explicit, bounded, injectable component
// rather than hidden memoization: it can be cleared for tests and for
// price-change scenarios, and it is safe for concurrent use.
type Resolver struct {
	fetcher    MetadataFetcher
	maxEntries int

	mu    sync.Mutex
	cache map[cacheKey]int64
}

// DefaultCacheSize bounds the resolver cache when no explicit size is given.
const DefaultCacheSize = 512

// NewResolver creates a Resolver on top of a MetadataFetcher. maxEntries
// bounds the cache; zero or negative selects DefaultCacheSize.
func NewResolver(fetcher MetadataFetcher, maxEntries int) *Resolver {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	return &Resolver{
		fetcher:    fetcher,
		maxEntries: maxEntries,
		cache:      make(map[cacheKey]int64),
	}
}

// PriceForContent returns the price of the content for the customer, in
// integer minor-currency units. Successful lookups are cached; NotFound and
// transport errors are never cached, so a transient catalog failure does
// not poison later calls.
func (r *Resolver) PriceForContent(ctx context.Context, customerUUID uuid.UUID, contentKey string) (int64, error) {
	key := cacheKey{customerUUID: customerUUID, contentKey: contentKey}

	r.mu.Lock()
	if price, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return price, nil
	}
	r.mu.Unlock()

	metadata, err := r.fetcher.GetContentMetadata(ctx, customerUUID, contentKey)
	if err != nil {
		return 0, err
	}

	price, err := metadata.PriceInCents()
	if err != nil {
		return 0, fmt.Errorf("content %s for customer %s: %w", contentKey, customerUUID, err)
	}

	r.mu.Lock()
	if len(r.cache) >= r.maxEntries {
		// Full: drop everything rather than track recency. Prices change
		// rarely and a refetch is cheap relative to the bookkeeping.
		r.cache = make(map[cacheKey]int64)
	}
	r.cache[key] = price
	r.mu.Unlock()

	return price, nil
}

// Clear empties the cache so subsequent lookups hit the catalog again.
func (r *Resolver) Clear() {
	r.mu.Lock()
	r.cache = make(map[cacheKey]int64)
	r.mu.Unlock()
}
