package docshell

import (
	"sync"
	"time"
)

// PageCache is an in-memory cache of the content tree with TTL.
type PageCache struct {
	mu      sync.RWMutex
	pages   []Page
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl}
}

func (c *PageCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.mu.Unlock()
}

func (c *PageCache) load() error {
	if c.valid() {
		return nil
	}
	pages, err := c.store.ListPages()
	if err != nil {
		return err
	}
	if pages == nil {
		pages = []Page{}
	}
	c.pages = pages
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached pages after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PageCache) ensureLoaded() ([]Page, error) {
	c.mu.RLock()
	if c.valid() {
		pages := c.pages
		c.mu.RUnlock()
		return pages, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.pages, nil
}

// List returns every page in navigation order.
func (c *PageCache) List() ([]Page, error) {
	return c.ensureLoaded()
}

// Get returns the page served at route.
func (c *PageCache) Get(route string) (Page, error) {
	pages, err := c.ensureLoaded()
	if err != nil {
		return Page{}, err
	}
	route = normalizeRoute(route)
	for _, p := range pages {
		if p.Route == route {
			return p, nil
		}
	}
	return Page{}, ErrNotFound
}
