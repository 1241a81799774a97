package weather

import (
	"context"
	"strings"
	"time"

	"agrisense-api/internal/core/domain"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Provider is anything that can fetch current conditions
type Provider interface {
	FetchCurrent(ctx context.Context, district, state string) (*domain.WeatherReading, error)
}

// CacheRecorder receives hit/miss notifications
type CacheRecorder interface {
	RecordCache(hit bool)
}

// CachedProvider remembers successful readings per "district,state" for a TTL.
// Failures are never cached.
type CachedProvider struct {
	next     Provider
	cache    *lru.LRU[string, domain.WeatherReading]
	recorder CacheRecorder
}

// NewCachedProvider wraps next with an expiring LRU of the given size
func NewCachedProvider(next Provider, size int, ttl time.Duration, recorder CacheRecorder) *CachedProvider {
	if size < 1 {
		size = 1
	}
	return &CachedProvider{
		next:     next,
		cache:    lru.NewLRU[string, domain.WeatherReading](size, nil, ttl),
		recorder: recorder,
	}
}

// FetchCurrent serves from cache when fresh, otherwise asks the wrapped provider
func (p *CachedProvider) FetchCurrent(ctx context.Context, district, state string) (*domain.WeatherReading, error) {
	key := cacheKey(district, state)

	if reading, ok := p.cache.Get(key); ok {
		p.record(true)
		return &reading, nil
	}
	p.record(false)

	reading, err := p.next.FetchCurrent(ctx, district, state)
	if err != nil {
		return nil, err
	}

	p.cache.Add(key, *reading)
	return reading, nil
}

// Len returns the number of cached locations
func (p *CachedProvider) Len() int {
	return p.cache.Len()
}

func (p *CachedProvider) record(hit bool) {
	if p.recorder != nil {
		p.recorder.RecordCache(hit)
	}
}

func cacheKey(district, state string) string {
	return strings.ToLower(strings.TrimSpace(district)) + "," + strings.ToLower(strings.TrimSpace(state))
}
