package listing

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedFetcher memoizes pages by their params for a short TTL. Purge it after any
// mutation of the underlying data.
type CachedFetcher[E any] struct {
	name  string
	next  Fetcher[E]
	cache *expirable.LRU[string, Page[E]]
}

func NewCachedFetcher[E any](name string, next Fetcher[E], size int, ttl time.Duration) *CachedFetcher[E] {
	return &CachedFetcher[E]{
		name:  name,
		next:  next,
		cache: expirable.NewLRU[string, Page[E]](size, nil, ttl),
	}
}

func (c *CachedFetcher[E]) Fetch(ctx context.Context, params Params) (Page[E], error) {
	key := params.Key()
	if page, ok := c.cache.Get(key); ok {
		cacheLookups.WithLabelValues(c.name, "hit").Inc()
		return page, nil
	}
	cacheLookups.WithLabelValues(c.name, "miss").Inc()
	page, err := c.next.Fetch(ctx, params)
	if err != nil {
		return Page[E]{}, err
	}
	c.cache.Add(key, page)
	return page, nil
}

func (c *CachedFetcher[E]) Purge() {
	c.cache.Purge()
}

func (c *CachedFetcher[E]) Len() int {
	return c.cache.Len()
}
