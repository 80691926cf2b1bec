package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"roomradar/internal/domain"
	"roomradar/internal/hotspot"
)

// State of a geo search machine.
type State string

const (
	StateInactive State = "inactive"
	StateLoading  State = "loading"
	StateActive   State = "active"
	StateError    State = "error"
)

// DefaultNearPlaceRadiusKm is the radius for "near <place>" searches. Kept
// separate from DefaultHotspotRadiusKm on purpose; see config notes.
const DefaultNearPlaceRadiusKm = 1.0

var nearPattern = regexp.MustCompile(`(?i)\bnear\s+(.+)`)

// PlaceResolver resolves a place name to coordinates, trying the hotspot
// catalog before spending a geocoding call.
type PlaceResolver struct {
	Catalog  *hotspot.Catalog
	Geocoder domain.Geocoder
}

// Resolve returns nil (no error) when neither the catalog nor the geocoder
// knows the place.
func (r *PlaceResolver) Resolve(ctx context.Context, place string) (*domain.Place, error) {
	if r.Catalog != nil {
		if h := r.Catalog.Match(ctx, place); h != nil {
			return &domain.Place{Lat: h.Lat, Lon: h.Lon, Label: h.Name}, nil
		}
	}
	if r.Geocoder == nil {
		return nil, nil
	}
	return r.Geocoder.Geocode(ctx, place)
}

// NearPlaceSearcher detects a "near <place>" sub-phrase in the search box and
// drives room results into geo-filtered mode. It moves through
// inactive → loading → active/error, and back to inactive when the pattern
// disappears from the input.
//
// A generation counter guards against a slow resolution landing after the
// machine has been reset or re-triggered: stale results never commit state.
type NearPlaceSearcher struct {
	resolver *PlaceResolver
	radiusKm float64
	log      zerolog.Logger

	mu     sync.Mutex
	state  State
	place  string
	coords *domain.Place
	errMsg string
	gen    uint64
}

func NewNearPlaceSearcher(resolver *PlaceResolver, radiusKm float64, logger zerolog.Logger) *NearPlaceSearcher {
	if radiusKm <= 0 {
		radiusKm = DefaultNearPlaceRadiusKm
	}
	return &NearPlaceSearcher{resolver: resolver, radiusKm: radiusKm, log: logger, state: StateInactive}
}

// Search inspects text for a "near <place>" phrase. The second return value
// distinguishes "no geo intent, run a normal search" (false) from a handled
// near-place search (true); a handled search with zero rooms is a valid
// empty result, not a fallback signal.
func (s *NearPlaceSearcher) Search(ctx context.Context, text string, rooms []domain.Room) ([]domain.Room, bool) {
	place := extractPlace(text)
	if place == "" {
		s.Reset()
		return nil, false
	}

	s.mu.Lock()
	// Identical place already resolved: reuse coordinates, skip the resolver.
	if s.state == StateActive && s.coords != nil && strings.EqualFold(s.place, place) {
		coords := *s.coords
		s.mu.Unlock()
		return annotateWithin(rooms, coords.Lat, coords.Lon, s.radiusKm), true
	}
	s.gen++
	gen := s.gen
	s.state = StateLoading
	s.place = place
	s.errMsg = ""
	s.mu.Unlock()

	resolved, err := s.resolver.Resolve(ctx, place)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// A newer search or a reset won; discard this resolution.
		return []domain.Room{}, true
	}
	if err != nil {
		s.state = StateError
		s.coords = nil
		s.errMsg = "Failed to search near this place. Please try again."
		s.log.Warn().Err(err).Str("place", place).Msg("near place resolution failed")
		return []domain.Room{}, true
	}
	if resolved == nil {
		s.state = StateError
		s.coords = nil
		s.errMsg = fmt.Sprintf("Could not find %q. Try a different place name.", place)
		return []domain.Room{}, true
	}

	s.state = StateActive
	s.coords = resolved
	return annotateWithin(rooms, resolved.Lat, resolved.Lon, s.radiusKm), true
}

// Reset returns the machine to inactive, discarding any in-flight resolution.
func (s *NearPlaceSearcher) Reset() {
	s.mu.Lock()
	s.gen++
	s.state = StateInactive
	s.place = ""
	s.coords = nil
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *NearPlaceSearcher) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Location returns the resolved reference point while active.
func (s *NearPlaceSearcher) Location() *domain.SearchLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive || s.coords == nil {
		return nil
	}
	r := s.radiusKm
	return &domain.SearchLocation{
		Lat:      s.coords.Lat,
		Lon:      s.coords.Lon,
		Label:    s.coords.Label,
		RadiusKm: &r,
		Type:     domain.SearchTypeLandmark,
	}
}

func (s *NearPlaceSearcher) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// extractPlace pulls the place name out of a "near <place>" phrase; an empty
// return means no geo intent (pattern absent or capture too short).
func extractPlace(text string) string {
	m := nearPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	place := strings.TrimSpace(m[1])
	if len(place) < 2 {
		return ""
	}
	return place
}
