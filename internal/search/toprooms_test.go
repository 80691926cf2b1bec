package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomradar/internal/domain"
)

type topStore struct {
	domain.RoomStore
	ids   []string
	err   error
	calls int
}

func (s *topStore) ListTopRoomIDs(ctx context.Context) ([]string, error) {
	s.calls++
	return s.ids, s.err
}

func TestTopRoomCache_SingleFetchWithinTTL(t *testing.T) {
	st := &topStore{ids: []string{"r1", "r2"}}
	c := NewTopRoomCache(st, time.Minute)
	c.schedule = func(d time.Duration, f func()) *time.Timer { return time.NewTimer(time.Hour) }

	ctx := context.Background()
	a := c.IDs(ctx)
	b := c.IDs(ctx)
	if st.calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", st.calls)
	}
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("unexpected sets: %v %v", a, b)
	}
	if _, ok := a["r1"]; !ok {
		t.Fatalf("missing r1: %v", a)
	}
}

func TestTopRoomCache_InvalidateForcesRefetch(t *testing.T) {
	st := &topStore{ids: []string{"r1"}}
	c := NewTopRoomCache(st, time.Minute)
	c.schedule = func(d time.Duration, f func()) *time.Timer { return time.NewTimer(time.Hour) }

	ctx := context.Background()
	c.IDs(ctx)
	c.Invalidate()

	st.ids = []string{"r1", "r9"}
	got := c.IDs(ctx)
	if st.calls != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", st.calls)
	}
	if _, ok := got["r9"]; !ok {
		t.Fatalf("stale set after invalidate: %v", got)
	}
}

func TestTopRoomCache_TimerClearTriggersRefetch(t *testing.T) {
	st := &topStore{ids: []string{"r1"}}
	c := NewTopRoomCache(st, time.Minute)

	var expire func()
	c.schedule = func(d time.Duration, f func()) *time.Timer {
		if d != time.Minute {
			t.Fatalf("unexpected ttl: %v", d)
		}
		expire = f
		return time.NewTimer(time.Hour)
	}

	ctx := context.Background()
	c.IDs(ctx)
	expire() // blind clear, as the real time.AfterFunc would
	c.IDs(ctx)
	if st.calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", st.calls)
	}
}

func TestTopRoomCache_FetchErrorNotCached(t *testing.T) {
	st := &topStore{err: errors.New("down")}
	c := NewTopRoomCache(st, time.Minute)
	c.schedule = func(d time.Duration, f func()) *time.Timer { return time.NewTimer(time.Hour) }

	ctx := context.Background()
	if got := c.IDs(ctx); len(got) != 0 {
		t.Fatalf("expected empty set on error, got %v", got)
	}
	st.err = nil
	st.ids = []string{"r1"}
	if got := c.IDs(ctx); len(got) != 1 {
		t.Fatalf("expected recovery on next call, got %v", got)
	}
}
