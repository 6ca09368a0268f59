package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// CacheService decorates a QuoteService with a TTL+LRU cache, keyed by
// symbol and mask so a broader fetch never serves a narrower cached one.
type CacheService struct {
	next QuoteService
	ttl  time.Duration
	size int

	mu    sync.Mutex
	items map[string]cacheEntry
	order []string // oldest at index 0
}

type cacheEntry struct {
	at   time.Time
	data types.MarketData
}

// NewCacheService wraps next with a cache of at most size entries living
// for ttl.
func NewCacheService(next QuoteService, ttl time.Duration, size int) *CacheService {
	return &CacheService{next: next, ttl: ttl, size: size, items: make(map[string]cacheEntry)}
}

func (c *CacheService) key(sym string, need SourceMask) string {
	return fmt.Sprintf("%s|%d", sym, need)
}

func (c *CacheService) Fetch(ctx context.Context, ticker string, need SourceMask) (types.MarketData, error) {
	k := c.key(ticker, need)
	now := time.Now()

	c.mu.Lock()
	if ent, ok := c.items[k]; ok {
		if now.Sub(ent.at) <= c.ttl {
			c.touchLocked(k)
			data := ent.data
			c.mu.Unlock()
			return data, nil
		}
		delete(c.items, k)
		c.removeFromOrderLocked(k)
	}
	c.mu.Unlock()

	data, err := c.next.Fetch(ctx, ticker, need)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.items[k] = cacheEntry{at: now, data: data}
	c.order = append(c.order, k)
	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
	c.mu.Unlock()
	return data, nil
}

func (c *CacheService) touchLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(append(c.order[:i], c.order[i+1:]...), k)
			return
		}
	}
	c.order = append(c.order, k)
}

func (c *CacheService) removeFromOrderLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
