package hotspot

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"roomradar/internal/domain"
)

// Catalog is the session-wide hotspot cache: one fetch from the room store on
// first use, never refetched. Hotspots change rarely enough that stale data is
// acceptable; Reload exists for the odd operational refresh.
type Catalog struct {
	store domain.RoomStore

	mu     sync.Mutex
	loaded bool
	spots  []domain.Hotspot
}

func NewCatalog(store domain.RoomStore) *Catalog {
	return &Catalog{store: store}
}

// All returns the cached hotspot table, loading it on first call. A fetch
// failure is logged and degrades to an empty table so matching simply never
// succeeds; the next call retries.
func (c *Catalog) All(ctx context.Context) []domain.Hotspot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.spots
	}
	spots, err := c.store.ListHotspots(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("hotspot load failed, matching disabled until retry")
		return nil
	}
	c.spots = spots
	c.loaded = true
	return c.spots
}

// Match resolves a query against the cached table.
func (c *Catalog) Match(ctx context.Context, query string) *domain.Hotspot {
	return Match(query, c.All(ctx))
}

// Suggestions returns fuzzy completions against the cached table.
func (c *Catalog) Suggestions(ctx context.Context, query string) []domain.Hotspot {
	return Suggestions(query, c.All(ctx))
}

// Reload drops the cache so the next read refetches.
func (c *Catalog) Reload() {
	c.mu.Lock()
	c.loaded = false
	c.spots = nil
	c.mu.Unlock()
}
