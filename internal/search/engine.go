// Package search holds the room discovery pipeline: the filter/ranking engine,
// the near-place and near-me state machines, and the promoted-room cache.
package search

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"roomradar/internal/domain"
	"roomradar/internal/geo"
)

// DefaultHotspotRadiusKm is the radius used when filtering around an active
// hotspot. It is intentionally distinct from DefaultNearPlaceRadiusKm; the two
// code paths have always carried different values.
const DefaultHotspotRadiusKm = 2.0

// TopRoomSource yields the current promoted room IDs. A nil source disables
// promoted prefixing.
type TopRoomSource interface {
	IDs(ctx context.Context) map[string]struct{}
}

// Engine filters and orders the candidate room set. It is session-scoped: the
// default-mode sort strategy is drawn once at construction and reused for the
// engine's lifetime.
type Engine struct {
	strategy        Strategy
	rngMu           sync.Mutex // rand.Rand is not safe for concurrent use
	rng             *rand.Rand
	top             TopRoomSource
	hotspotRadiusKm float64
	sessionID       string
	log             zerolog.Logger
}

// EngineOptions configures an Engine. Zero values get defaults; tests inject
// Rand for deterministic strategy selection and shuffles.
type EngineOptions struct {
	Rand            rand.Source
	TopRooms        TopRoomSource
	HotspotRadiusKm float64
	Logger          zerolog.Logger
}

func NewEngine(opts EngineOptions) *Engine {
	src := opts.Rand
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	radius := opts.HotspotRadiusKm
	if radius <= 0 {
		radius = DefaultHotspotRadiusKm
	}
	rng := rand.New(src)
	e := &Engine{
		strategy:        pickStrategy(rng),
		rng:             rng,
		top:             opts.TopRooms,
		hotspotRadiusKm: radius,
		sessionID:       uuid.NewString(),
		log:             opts.Logger,
	}
	e.log.Debug().Str("session", e.sessionID).Str("strategy", string(e.strategy)).Msg("engine ready")
	return e
}

// Strategy returns the session's default-mode ordering.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Rank filters rooms against the current constraints and orders the
// survivors. The input slice is never mutated; annotated copies are returned.
//
// Sort modes, first applicable wins: hotspot-active (ascending distance from
// the hotspot), distance-data-present (rooms already annotated upstream), and
// the session strategy with a promoted prefix.
func (e *Engine) Rank(ctx context.Context, rooms []domain.Room, f domain.RoomFilters, searchText string, active *domain.Hotspot) []domain.Room {
	text := strings.ToLower(strings.TrimSpace(searchText))

	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if !r.Available {
			continue
		}
		if active != nil {
			if !r.HasCoords() || !geo.ValidCoordinate(*r.Lat, *r.Lon) {
				continue
			}
			d := geo.DistanceKm(active.Lat, active.Lon, *r.Lat, *r.Lon)
			if d > e.hotspotRadiusKm {
				continue
			}
			r.Distance = &d
		} else if text != "" {
			if !strings.Contains(strings.ToLower(r.Location), text) &&
				!strings.Contains(strings.ToLower(r.Title), text) {
				continue
			}
		}
		if !matchesFilters(r, f) {
			continue
		}
		out = append(out, r)
	}

	switch {
	case active != nil:
		sortByDistanceAsc(out)
	case anyDistance(out):
		sortByDistancePresence(out)
	default:
		out = e.applySessionOrder(ctx, out)
	}
	return out
}

func matchesFilters(r domain.Room, f domain.RoomFilters) bool {
	if f.MaxPrice != nil && r.Price > *f.MaxPrice {
		return false
	}
	if f.Wifi != nil && *f.Wifi && !r.Facilities.Wifi {
		return false
	}
	if f.Bathroom != nil && *f.Bathroom && !r.Facilities.Bathroom {
		return false
	}
	if f.Gender != nil && r.Facilities.Gender != domain.GenderAny && r.Facilities.Gender != *f.Gender {
		return false
	}
	if f.RoomType != nil && r.Facilities.RoomType != *f.RoomType {
		return false
	}
	if f.Cooling != nil && r.Facilities.Cooling != *f.Cooling {
		return false
	}
	if f.Food != nil && r.Facilities.Food != *f.Food {
		return false
	}
	return true
}

func anyDistance(rooms []domain.Room) bool {
	for _, r := range rooms {
		if r.Distance != nil {
			return true
		}
	}
	return false
}

func sortByDistanceAsc(rooms []domain.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		return deref(rooms[i].Distance) < deref(rooms[j].Distance)
	})
}

// sortByDistancePresence orders annotated rooms first (ascending), pushes
// unannotated rooms after them, and breaks ties by descending price.
func sortByDistancePresence(rooms []domain.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		di, dj := rooms[i].Distance, rooms[j].Distance
		switch {
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		case di != nil && dj != nil && *di != *dj:
			return *di < *dj
		default:
			return rooms[i].Price > rooms[j].Price
		}
	})
}

// applySessionOrder surfaces promoted rooms first (tier-bucketed, shuffled),
// then applies the session strategy to the rest.
func (e *Engine) applySessionOrder(ctx context.Context, rooms []domain.Room) []domain.Room {
	var topIDs map[string]struct{}
	if e.top != nil {
		topIDs = e.top.IDs(ctx)
	}

	// One engine serves every request; the shuffling strategies draw from the
	// shared generator.
	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	if len(topIDs) == 0 {
		return applyStrategy(e.rng, e.strategy, rooms)
	}

	var promoted, rest []domain.Room
	for _, r := range rooms {
		if _, ok := topIDs[r.ID]; ok {
			r.Top = true
			promoted = append(promoted, r)
		} else {
			rest = append(rest, r)
		}
	}
	return concat(promotedOrder(e.rng, promoted), applyStrategy(e.rng, e.strategy, rest))
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// annotateWithin returns copies of the rooms that lie within radiusKm of the
// reference point, each annotated with distance and walking fields, sorted
// ascending by distance. Rooms without valid coordinates are dropped; a
// non-positive radius keeps every annotated room.
func annotateWithin(rooms []domain.Room, lat, lon, radiusKm float64) []domain.Room {
	var out []domain.Room
	for _, r := range rooms {
		if !r.HasCoords() || !geo.ValidCoordinate(*r.Lat, *r.Lon) {
			continue
		}
		d := geo.DistanceKm(lat, lon, *r.Lat, *r.Lon)
		if radiusKm > 0 && d > radiusKm {
			continue
		}
		dd := d
		r.Distance = &dd
		r.WalkingDistance = geo.FormatDistance(d)
		r.WalkingDuration = geo.WalkingDuration(d)
		out = append(out, r)
	}
	sortByDistanceAsc(out)
	return out
}
