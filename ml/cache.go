package ml

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedRegressor memoizes model outputs. Only safe because loaded models are
// immutable: the same scaled vector always yields the same prediction.
type CachedRegressor struct {
	inner  Regressor
	cache  *lru.Cache[FeatureVector, float64]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCachedRegressor wraps inner with an LRU of the given size. A size of zero
// or less returns inner unchanged.
func NewCachedRegressor(inner Regressor, size int) (Regressor, error) {
	if size <= 0 {
		return inner, nil
	}
	cache, err := lru.New[FeatureVector, float64](size)
	if err != nil {
		return nil, fmt.Errorf("create prediction cache: %w", err)
	}
	return &CachedRegressor{inner: inner, cache: cache}, nil
}

func (c *CachedRegressor) Width() int { return c.inner.Width() }

func (c *CachedRegressor) Predict(features []float64) (float64, error) {
	if len(features) != FeatureCount {
		return c.inner.Predict(features)
	}
	var key FeatureVector
	copy(key[:], features)

	if value, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return value, nil
	}
	c.misses.Add(1)
	value, err := c.inner.Predict(features)
	if err != nil {
		return 0, err
	}
	c.cache.Add(key, value)
	return value, nil
}

// Stats returns the cache hit and miss counts.
func (c *CachedRegressor) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedRegressor) Len() int { return c.cache.Len() }
