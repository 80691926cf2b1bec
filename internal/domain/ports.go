package domain

import "context"

type RoomStore interface {
	// Read paths (the ranking pipeline only reads)
	ListRooms(ctx context.Context) ([]Room, error)
	ListHotspots(ctx context.Context) ([]Hotspot, error)
	ListTopRoomIDs(ctx context.Context) ([]string, error)

	// Write paths (seeder and admin toggle)
	UpsertRoom(ctx context.Context, r Room) error
	UpsertHotspot(ctx context.Context, h Hotspot) error
	SetTop(ctx context.Context, roomID string, top bool) error
}

// Geocoder resolves a free-text place name to coordinates. A nil Place with a
// nil error means the service answered but found nothing.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (*Place, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Position is a single device fix.
type Position struct {
	Lat float64
	Lon float64
}

// PositionSource is the device geolocation contract: one fix per call, with
// failures distinguished via ErrPermissionDenied, ErrPositionUnavailable and
// ErrPositionTimeout.
type PositionSource interface {
	CurrentPosition(ctx context.Context) (Position, error)
}
