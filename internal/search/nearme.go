package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"roomradar/internal/domain"
	"roomradar/internal/geo"
)

const (
	// DefaultPositionTimeout bounds a single device fix request.
	DefaultPositionTimeout = 10 * time.Second
	// DefaultPositionMaxAge is how long a previous fix may be reused.
	DefaultPositionMaxAge = 5 * time.Minute
)

// ErrSuperseded is returned when an Activate call lost to a newer activation
// or a deactivation while its fix was in flight.
var ErrSuperseded = errors.New("position request superseded")

// User-facing messages for the three distinguishable position failures.
const (
	msgPermissionDenied    = "Location permission denied. Enable location access to use Near Me."
	msgPositionUnavailable = "Could not determine your location. Please try again."
	msgPositionTimeout     = "Timed out getting your location. Please try again."
)

// NearMeTracker drives distance-sorted mode relative to the device position.
// inactive → loading → active/error; back to inactive only via Deactivate.
// Re-activating while a fix is in flight supersedes the older request, and a
// fix landing after Deactivate is discarded (generation guard).
type NearMeTracker struct {
	source  domain.PositionSource
	timeout time.Duration
	maxAge  time.Duration
	now     func() time.Time
	log     zerolog.Logger

	mu      sync.Mutex
	state   State
	pos     *domain.Position
	fixedAt time.Time
	errMsg  string
	gen     uint64
}

func NewNearMeTracker(source domain.PositionSource, logger zerolog.Logger) *NearMeTracker {
	return &NearMeTracker{
		source:  source,
		timeout: DefaultPositionTimeout,
		maxAge:  DefaultPositionMaxAge,
		now:     time.Now,
		log:     logger,
		state:   StateInactive,
	}
}

// Activate requests a single device fix. A fix younger than the max age is
// reused without touching the source.
func (t *NearMeTracker) Activate(ctx context.Context) (domain.Position, error) {
	t.mu.Lock()
	if t.state == StateActive && t.pos != nil && t.now().Sub(t.fixedAt) < t.maxAge {
		pos := *t.pos
		t.mu.Unlock()
		return pos, nil
	}
	t.gen++
	gen := t.gen
	t.state = StateLoading
	t.errMsg = ""
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	pos, err := t.source.CurrentPosition(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen != gen {
		return domain.Position{}, ErrSuperseded
	}
	if err != nil {
		t.state = StateError
		t.pos = nil
		t.errMsg = positionErrorMessage(err)
		t.log.Warn().Err(err).Msg("device position request failed")
		return domain.Position{}, err
	}

	t.state = StateActive
	p := pos
	t.pos = &p
	t.fixedAt = t.now()
	return pos, nil
}

// Deactivate clears all state unconditionally; any in-flight fix is discarded
// when it lands.
func (t *NearMeTracker) Deactivate() {
	t.mu.Lock()
	t.gen++
	t.state = StateInactive
	t.pos = nil
	t.errMsg = ""
	t.mu.Unlock()
}

func (t *NearMeTracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *NearMeTracker) ErrorMessage() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errMsg
}

// Location returns the active position as a search reference point.
func (t *NearMeTracker) Location() *domain.SearchLocation {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateActive || t.pos == nil {
		return nil
	}
	return &domain.SearchLocation{Lat: t.pos.Lat, Lon: t.pos.Lon, Type: domain.SearchTypeNearMe}
}

// AnnotateDistances adds a distance (relative to the active position) to every
// room that carries coordinates. Rooms without coordinates pass through
// unchanged and nothing is dropped; exclusion is the engine's job.
func (t *NearMeTracker) AnnotateDistances(rooms []domain.Room) []domain.Room {
	t.mu.Lock()
	pos := t.pos
	t.mu.Unlock()
	if pos == nil {
		return rooms
	}
	return AnnotateDistancesFrom(rooms, pos.Lat, pos.Lon)
}

// AnnotateDistancesFrom is the pure mapping behind AnnotateDistances.
func AnnotateDistancesFrom(rooms []domain.Room, lat, lon float64) []domain.Room {
	out := make([]domain.Room, len(rooms))
	for i, r := range rooms {
		if r.HasCoords() {
			d := distanceOrSkip(lat, lon, *r.Lat, *r.Lon)
			if d != nil {
				r.Distance = d
			}
		}
		out[i] = r
	}
	return out
}

// distanceOrSkip returns nil for coordinates that fail validation, so a
// malformed listing degrades to "no distance" instead of a garbage sort key.
func distanceOrSkip(lat1, lon1, lat2, lon2 float64) *float64 {
	d, err := geo.Distance(lat1, lon1, lat2, lon2)
	if err != nil {
		return nil
	}
	return &d
}

func positionErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return msgPermissionDenied
	case errors.Is(err, domain.ErrPositionTimeout), errors.Is(err, context.DeadlineExceeded):
		return msgPositionTimeout
	default:
		return msgPositionUnavailable
	}
}
