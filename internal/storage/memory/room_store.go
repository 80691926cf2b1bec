// Package memory is a thread-safe in-memory RoomStore for tests and local
// development wiring.
package memory

import (
	"context"
	"sort"
	"sync"

	"roomradar/internal/domain"
)

type RoomStore struct {
	mu       sync.RWMutex
	rooms    map[string]domain.Room
	hotspots map[string]domain.Hotspot
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms:    make(map[string]domain.Room),
		hotspots: make(map[string]domain.Hotspot),
	}
}

func (s *RoomStore) UpsertRoom(ctx context.Context, r domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = r
	return nil
}

func (s *RoomStore) UpsertHotspot(ctx context.Context, h domain.Hotspot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotspots[h.ID] = h
	return nil
}

func (s *RoomStore) SetTop(ctx context.Context, roomID string, top bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[roomID]
	if !ok {
		return domain.ErrNotFound
	}
	r.Top = top
	s.rooms[roomID] = r
	return nil
}

func (s *RoomStore) ListRooms(ctx context.Context) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RoomStore) ListHotspots(ctx context.Context) ([]domain.Hotspot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Hotspot, 0, len(s.hotspots))
	for _, h := range s.hotspots {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *RoomStore) ListTopRoomIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for id, r := range s.rooms {
		if r.Top {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}
