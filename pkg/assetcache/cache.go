// Package assetcache keeps the kiosk usable offline. Static resources
// are served cache-first; photos are served network-first with the cache
// as fallback, so the display degrades to the last good image instead of
// going blank when the household WiFi drops.
package assetcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/borgmon/colette/pkg/store"
	"github.com/borgmon/colette/pkg/timing"
)

// Kind classifies a fetched resource and selects its caching strategy.
type Kind int

const (
	KindDocument Kind = iota
	KindScript
	KindStyle
	KindImage
)

// sweepInterval is how often stale cache versions are purged after
// activation, in addition to the purge at activation itself.
const sweepInterval = 24 * time.Hour

const keyPrefix = "asset/"

// ErrMiss is returned when a resource is neither fetchable nor cached.
var ErrMiss = errors.New("asset unavailable")

// Cache is a versioned asset store on top of the shared database.
// Entries from older versions survive until Activate or the periodic
// sweep removes them.
type Cache struct {
	db      *store.DB
	version string
	client  *http.Client
	clock   timing.Clock
	sweep   timing.Handle
}

func New(db *store.DB, version string, client *http.Client, clock timing.Clock) *Cache {
	if client == nil {
		client = http.DefaultClient
	}
	return &Cache{db: db, version: version, client: client, clock: clock}
}

// Install pre-fetches the given URLs into the cache. Individual failures
// are logged and skipped; a partially warmed cache is still useful.
func (c *Cache) Install(ctx context.Context, urls []string) {
	for _, url := range urls {
		if _, err := c.fetchAndCache(ctx, url); err != nil {
			log.Printf("Pre-fetch of %s failed: %v", url, err)
		}
	}
	log.Printf("Asset cache %s installed, %d resources requested", c.version, len(urls))
}

// Activate purges every entry that does not belong to the current
// version and starts the periodic sweep.
func (c *Cache) Activate() {
	c.purgeStale()
	if c.sweep == nil {
		c.sweep = timing.Repeat(c.clock, sweepInterval, c.purgeStale)
	}
}

// Close stops the sweep timer.
func (c *Cache) Close() {
	if c.sweep != nil {
		c.sweep.Stop()
		c.sweep = nil
	}
}

// Fetch returns the resource body according to the kind's strategy.
func (c *Cache) Fetch(ctx context.Context, url string, kind Kind) ([]byte, error) {
	if kind == KindImage {
		// Network first, cache fallback.
		data, err := c.fetchAndCache(ctx, url)
		if err == nil {
			return data, nil
		}
		if cached, cacheErr := c.db.GetBytes(c.key(url)); cacheErr == nil {
			return cached, nil
		}
		return nil, err
	}

	// Cache first, network fallback.
	if cached, err := c.db.GetBytes(c.key(url)); err == nil {
		return cached, nil
	}
	return c.fetchAndCache(ctx, url)
}

// fetchAndCache performs the network request and stores the body, but
// only for direct HTTP 200 responses; redirects, errors and partial
// content never overwrite a known-good entry.
func (c *Cache) fetchAndCache(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMiss, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s", ErrMiss, resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := c.db.SetBytes(c.key(url), data); err != nil {
		log.Printf("Failed to cache %s: %v", url, err)
	}
	return data, nil
}

func (c *Cache) key(url string) string {
	return keyPrefix + c.version + "/" + url
}

// purgeStale removes every asset entry whose version tag is not the
// current one.
func (c *Cache) purgeStale() {
	keys, err := c.db.ListByPrefix(keyPrefix)
	if err != nil {
		log.Printf("Cache sweep failed: %v", err)
		return
	}

	current := keyPrefix + c.version + "/"
	removed := 0
	for _, key := range keys {
		if len(key) >= len(current) && key[:len(current)] == current {
			continue
		}
		if err := c.db.Delete(key); err != nil {
			log.Printf("Failed to purge %s: %v", key, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("Purged %d stale cache entries", removed)
	}
}
