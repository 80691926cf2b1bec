package search

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"roomradar/internal/adapters/observability"
	"roomradar/internal/domain"
)

// DefaultTopRoomTTL bounds how long the promoted-room set is served without a
// refetch.
const DefaultTopRoomTTL = 5 * time.Minute

// TopRoomCache memoizes the set of promoted room IDs. Expiry is a blind timer
// clear rather than a read-side TTL check; Invalidate covers the admin toggle
// path so the next ranking pass picks the change up immediately.
type TopRoomCache struct {
	store    domain.RoomStore
	ttl      time.Duration
	schedule func(time.Duration, func()) *time.Timer

	mu     sync.Mutex
	ids    map[string]struct{}
	loaded bool
	timer  *time.Timer
}

func NewTopRoomCache(store domain.RoomStore, ttl time.Duration) *TopRoomCache {
	if ttl <= 0 {
		ttl = DefaultTopRoomTTL
	}
	return &TopRoomCache{store: store, ttl: ttl, schedule: time.AfterFunc}
}

// IDs returns the promoted room IDs, fetching from the store at most once per
// TTL window. A fetch failure is logged and yields an empty set without
// populating the cache, so the next call retries.
func (c *TopRoomCache) IDs(ctx context.Context) map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		observability.ObserveCache("toprooms", "hit")
		return copySet(c.ids)
	}
	observability.ObserveCache("toprooms", "miss")

	ids, err := c.store.ListTopRoomIDs(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("top room fetch failed, serving none")
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	c.ids = set
	c.loaded = true
	c.timer = c.schedule(c.ttl, c.Invalidate)
	return copySet(set)
}

// Invalidate clears the cache unconditionally.
func (c *TopRoomCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.ids = nil
	c.loaded = false
	observability.ObserveCache("toprooms", "del")
}

func copySet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
