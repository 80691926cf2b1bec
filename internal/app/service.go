package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"roomradar/internal/adapters/observability"
	"roomradar/internal/domain"
	"roomradar/internal/geo"
	"roomradar/internal/hotspot"
	"roomradar/internal/search"
)

const roomsCacheKey = "rooms:all"

// SearchQuery is one search invocation from the HTTP surface.
type SearchQuery struct {
	Text    string
	Filters domain.RoomFilters
	Hotspot *domain.Hotspot // active hotspot chip, if any
}

// SearchResult carries the ranked rooms plus the state the UI renders
// alongside them.
type SearchResult struct {
	Rooms    []domain.Room          `json:"rooms"`
	Mode     string                 `json:"mode"` // text|near_place|hotspot|near_me
	Location *domain.SearchLocation `json:"location,omitempty"`
	Error    string                 `json:"error,omitempty"` // user-facing resolution error
}

// SearchService orchestrates the discovery pipeline: room-list read-through
// cache, near-place delegation, ranking, suggestions, and the admin top-room
// toggle. All data-fetch failures degrade to empty collections; nothing here
// is fatal.
type SearchService struct {
	store     domain.RoomStore
	cache     domain.Cache
	catalog   *hotspot.Catalog
	engine    *search.Engine
	nearPlace *search.NearPlaceSearcher
	topRooms  *search.TopRoomCache
	cacheTTL  time.Duration
}

func NewSearchService(
	store domain.RoomStore,
	cache domain.Cache,
	catalog *hotspot.Catalog,
	engine *search.Engine,
	nearPlace *search.NearPlaceSearcher,
	topRooms *search.TopRoomCache,
	cacheTTL time.Duration,
) *SearchService {
	return &SearchService{
		store:     store,
		cache:     cache,
		catalog:   catalog,
		engine:    engine,
		nearPlace: nearPlace,
		topRooms:  topRooms,
		cacheTTL:  cacheTTL,
	}
}

// rooms returns the full candidate set through the read-through cache. Store
// failures are logged and degrade to an empty set.
func (s *SearchService) rooms(ctx context.Context) []domain.Room {
	var cached []domain.Room
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, roomsCacheKey, &cached); ok {
			return cached
		}
	}
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("room list fetch failed, searching over nothing")
		return nil
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, roomsCacheKey, rooms, int(s.cacheTTL.Seconds()))
	}
	return rooms
}

// Search runs a text/near-place/hotspot search. "near <place>" phrases are
// handled by the near-place machine; everything else goes straight to the
// engine.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) SearchResult {
	rooms := s.rooms(ctx)

	if near, handled := s.nearPlace.Search(ctx, q.Text, rooms); handled {
		// Near-place already filtered by radius and annotated; the engine
		// pass applies the user's filters and the distance ordering.
		ranked := s.engine.Rank(ctx, near, q.Filters, "", nil)
		res := SearchResult{
			Rooms:    ranked,
			Mode:     "near_place",
			Location: s.nearPlace.Location(),
			Error:    s.nearPlace.ErrorMessage(),
		}
		observability.ObserveSearch(res.Mode, len(ranked))
		return res
	}

	mode := "text"
	if q.Hotspot != nil {
		mode = "hotspot"
	}
	ranked := s.engine.Rank(ctx, rooms, q.Filters, q.Text, q.Hotspot)
	observability.ObserveSearch(mode, len(ranked))

	res := SearchResult{Rooms: ranked, Mode: mode}
	if q.Hotspot != nil {
		r := search.DefaultHotspotRadiusKm
		res.Location = &domain.SearchLocation{
			Lat: q.Hotspot.Lat, Lon: q.Hotspot.Lon,
			Label: q.Hotspot.Name, RadiusKm: &r, Type: domain.SearchTypeLandmark,
		}
	}
	return res
}

// Nearby ranks rooms around a client-supplied position (the near-me mode of
// the HTTP surface). radiusKm <= 0 keeps every room, sorted by distance.
func (s *SearchService) Nearby(ctx context.Context, lat, lon, radiusKm float64, f domain.RoomFilters) (SearchResult, error) {
	if !geo.ValidCoordinate(lat, lon) {
		return SearchResult{}, domain.ErrInvalidCoordinate
	}

	rooms := search.AnnotateDistancesFrom(s.rooms(ctx), lat, lon)
	if radiusKm > 0 {
		kept := rooms[:0]
		for _, r := range rooms {
			if r.Distance != nil && *r.Distance <= radiusKm {
				kept = append(kept, r)
			}
		}
		rooms = kept
	}

	ranked := s.engine.Rank(ctx, rooms, f, "", nil)
	for i := range ranked {
		if d := ranked[i].Distance; d != nil {
			ranked[i].WalkingDistance = geo.FormatDistance(*d)
			ranked[i].WalkingDuration = geo.WalkingDuration(*d)
		}
	}
	observability.ObserveSearch("near_me", len(ranked))

	return SearchResult{
		Rooms:    ranked,
		Mode:     "near_me",
		Location: &domain.SearchLocation{Lat: lat, Lon: lon, Type: domain.SearchTypeNearMe},
	}, nil
}

// Suggest returns hotspot completions for a partial query.
func (s *SearchService) Suggest(ctx context.Context, q string) []domain.Hotspot {
	return s.catalog.Suggestions(ctx, q)
}

// LookupHotspot resolves a hotspot name for the active-hotspot search mode.
func (s *SearchService) LookupHotspot(ctx context.Context, name string) *domain.Hotspot {
	return s.catalog.Match(ctx, name)
}

// ToggleTopRoom flips a room's promoted flag, then invalidates the top-room
// cache and the room-list cache so the next ranking pass sees the change
// without waiting for expiry.
func (s *SearchService) ToggleTopRoom(ctx context.Context, roomID string, top bool) error {
	if err := s.store.SetTop(ctx, roomID, top); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	s.topRooms.Invalidate()
	if s.cache != nil {
		_ = s.cache.Del(ctx, roomsCacheKey)
	}
	return nil
}
