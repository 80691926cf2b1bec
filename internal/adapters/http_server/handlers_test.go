package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	httpserver "roomradar/internal/adapters/http_server"
	"roomradar/internal/app"
	"roomradar/internal/domain"
	"roomradar/internal/hotspot"
	"roomradar/internal/search"
	"roomradar/internal/storage/memory"
)

type nullGeocoder struct{}

func (nullGeocoder) Geocode(ctx context.Context, text string) (*domain.Place, error) {
	return nil, nil
}

func ptr[T any](v T) *T { return &v }

func newTestServer(t *testing.T) (*httptest.Server, *memory.RoomStore) {
	t.Helper()
	store := memory.NewRoomStore()
	ctx := context.Background()

	rooms := []domain.Room{
		{ID: "a", Title: "Sunrise PG", Price: 4500, Location: "Talwandi, Kota",
			Lat: ptr(25.001), Lon: ptr(75.001), Available: true,
			Facilities: domain.Facilities{Wifi: true, Gender: domain.GenderAny, RoomType: domain.RoomSingle, Cooling: domain.CoolingCooler, Food: domain.FoodIncluded}},
		{ID: "b", Title: "Budget Stay", Price: 2200, Location: "Vigyan Nagar, Kota",
			Available:  true,
			Facilities: domain.Facilities{Gender: domain.GenderMale, RoomType: domain.RoomSharing, Cooling: domain.CoolingNone, Food: domain.FoodNotIncluded}},
		{ID: "c", Title: "Closed PG", Price: 2000, Location: "Talwandi, Kota",
			Available:  false,
			Facilities: domain.Facilities{Gender: domain.GenderAny, RoomType: domain.RoomSingle, Cooling: domain.CoolingNone, Food: domain.FoodNotIncluded}},
	}
	for _, r := range rooms {
		if err := store.UpsertRoom(ctx, r); err != nil {
			t.Fatalf("seed room: %v", err)
		}
	}
	if err := store.UpsertHotspot(ctx, domain.Hotspot{ID: "h", Name: "Clock Tower", Lat: 25.0, Lon: 75.0}); err != nil {
		t.Fatalf("seed hotspot: %v", err)
	}

	catalog := hotspot.NewCatalog(store)
	top := search.NewTopRoomCache(store, time.Minute)
	engine := search.NewEngine(search.EngineOptions{Rand: rand.NewSource(3), TopRooms: top, Logger: zerolog.Nop()})
	near := search.NewNearPlaceSearcher(
		&search.PlaceResolver{Catalog: catalog, Geocoder: nullGeocoder{}},
		search.DefaultNearPlaceRadiusKm, zerolog.Nop(),
	)
	svc := app.NewSearchService(store, nil, catalog, engine, near, top, time.Minute)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{S: svc})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts, store
}

func decodeResult(t *testing.T, res *http.Response) app.SearchResult {
	t.Helper()
	defer res.Body.Close()
	var sr app.SearchResult
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return sr
}

func TestSearchEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/rooms/search?q=talwandi")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	sr := decodeResult(t, res)
	if sr.Mode != "text" || len(sr.Rooms) != 1 || sr.Rooms[0].ID != "a" {
		t.Fatalf("unexpected result: %+v", sr)
	}
}

func TestSearchEndpoint_BadFilters(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, q := range []string{
		"max_price=-5",
		"max_price=abc",
		"wifi=maybe",
		"gender=alien",
		"room_type=penthouse",
		"cooling=liquid",
		"food=vegan",
	} {
		res, err := http.Get(ts.URL + "/v1/rooms/search?" + q)
		if err != nil {
			t.Fatalf("GET %s: %v", q, err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
			t.Errorf("%s: content type %q", q, ct)
		}
	}
}

func TestSearchEndpoint_HotspotNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/rooms/search?hotspot=atlantis")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestSearchEndpoint_HotspotMode(t *testing.T) {
	ts, _ := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/rooms/search?hotspot=clock+tower")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	sr := decodeResult(t, res)
	if sr.Mode != "hotspot" || len(sr.Rooms) != 1 || sr.Rooms[0].Distance == nil {
		t.Fatalf("unexpected result: %+v", sr)
	}
	if sr.Location == nil || sr.Location.Label != "Clock Tower" || sr.Location.Type != domain.SearchTypeLandmark {
		t.Fatalf("unexpected location: %+v", sr.Location)
	}
}

func TestSearchEndpoint_ETag(t *testing.T) {
	ts, _ := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/rooms/search?q=talwandi")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/rooms/search?q=talwandi", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}
	if res2.Header.Get("ETag") != etag {
		t.Fatal("304 must carry the ETag")
	}
}

func TestNearbyEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/rooms/nearby?lat=25.0&lon=75.0&radius_km=1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	sr := decodeResult(t, res)
	if sr.Mode != "near_me" || len(sr.Rooms) != 1 || sr.Rooms[0].WalkingDuration == "" {
		t.Fatalf("unexpected result: %+v", sr)
	}

	for _, q := range []string{
		"lat=abc&lon=75.0",
		"lon=75.0", // lat missing
		"lat=25.0&lon=75.0&radius_km=-1",
		"lat=91&lon=0", // out of range
	} {
		res, err := http.Get(ts.URL + "/v1/rooms/nearby?" + q)
		if err != nil {
			t.Fatalf("GET %s: %v", q, err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, res.StatusCode)
		}
	}
}

func TestSuggestEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/hotspots/suggest?q=cl")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	var out []domain.Hotspot
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Clock Tower" {
		t.Fatalf("unexpected suggestions: %+v", out)
	}

	// below the minimum query length the body is an empty array, not null
	res2, err := http.Get(ts.URL + "/v1/hotspots/suggest?q=c")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res2.Body.Close()
	body := new(bytes.Buffer)
	if _, err := body.ReadFrom(res2.Body); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(bytes.TrimSpace(body.Bytes())); got != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestToggleTopEndpoint(t *testing.T) {
	ts, store := newTestServer(t)

	post := func(id, body string) *http.Response {
		t.Helper()
		req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/admin/rooms/"+id+"/top", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		res.Body.Close()
		return res
	}

	if res := post("a", `{"top":true}`); res.StatusCode != http.StatusNoContent {
		t.Fatalf("toggle status %d", res.StatusCode)
	}
	ids, err := store.ListTopRoomIDs(context.Background())
	if err != nil || len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("top ids = %v, err = %v", ids, err)
	}

	if res := post("ghost", `{"top":true}`); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	if res := post("a", `not json`); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}
