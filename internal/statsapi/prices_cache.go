package statsapi

import (
	"log"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// pricesCacheEntry holds one cached prices page with its expiry.
type pricesCacheEntry struct {
	page    *PricesPage
	expires time.Time
}

// pricesCache is a thread-safe TTL cache for prices pages. The upstream
// prices resource is rebuilt slowly upstream, so a short TTL loses
// nothing. A singleflight.Group prevents duplicate in-flight fetches
// for the same page when several dashboard tabs refresh at once.
type pricesCache struct {
	mu      sync.RWMutex
	entries map[int]*pricesCacheEntry
	ttl     time.Duration
	group   singleflight.Group
}

func newPricesCache(ttl time.Duration) *pricesCache {
	return &pricesCache{
		entries: make(map[int]*pricesCacheEntry),
		ttl:     ttl,
	}
}

// get returns the cached page if present and not expired.
func (pc *pricesCache) get(page int) (*PricesPage, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	e, ok := pc.entries[page]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.page, true
}

// put stores a page with a fresh expiry.
func (pc *pricesCache) put(page int, p *PricesPage) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.entries[page] = &pricesCacheEntry{page: p, expires: time.Now().Add(pc.ttl)}
}

// clear drops all cached pages and returns how many were removed.
func (pc *pricesCache) clear() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	n := len(pc.entries)
	pc.entries = make(map[int]*pricesCacheEntry)
	return n
}

// FetchPricesPageCached fetches a prices page through the TTL cache:
//  1. Fresh cache entry → instant return, no network I/O
//  2. Miss or expired → full fetch, populate cache
//
// Concurrent requests for the same page are coalesced via singleflight.
func (c *Client) FetchPricesPageCached(page int) (*PricesPage, error) {
	if p, hit := c.pricesCache.get(page); hit {
		return p, nil
	}

	result, err, _ := c.pricesCache.group.Do(strconv.Itoa(page), func() (interface{}, error) {
		// Re-check under singleflight: a racing caller may have filled it.
		if p, hit := c.pricesCache.get(page); hit {
			return p, nil
		}
		p, err := c.FetchPricesPage(page)
		if err != nil {
			return nil, err
		}
		c.pricesCache.put(page, p)
		log.Printf("[API] PricesCache MISS page=%d (%d items, ttl=%s)", page, len(p.Result), c.pricesCache.ttl)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*PricesPage), nil
}

// InvalidatePricesCache drops all cached prices pages (used when the
// dashboard forces a full refresh).
func (c *Client) InvalidatePricesCache() int {
	return c.pricesCache.clear()
}
