package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roomradar/internal/app"
	"roomradar/internal/domain"
)

type Handlers struct{ S *app.SearchService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/rooms/search", h.search)
	s.mux.Get("/v1/rooms/nearby", h.nearby)
	s.mux.Get("/v1/hotspots/suggest", h.suggest)
	s.mux.Post("/v1/admin/rooms/{id}/top", h.toggleTop)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// parseFilters reads the optional facility/price constraints shared by the
// search and nearby endpoints. Absent params mean "no constraint".
func parseFilters(r *http.Request) (domain.RoomFilters, error) {
	var f domain.RoomFilters
	q := r.URL.Query()

	if v := q.Get("max_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("max_price must be a non-negative integer")
		}
		f.MaxPrice = &n
	}
	for _, b := range []struct {
		key string
		dst **bool
	}{{"wifi", &f.Wifi}, {"bathroom", &f.Bathroom}} {
		if v := q.Get(b.key); v != "" {
			val, err := strconv.ParseBool(v)
			if err != nil {
				return f, errors.New(b.key + " must be a boolean")
			}
			*b.dst = &val
		}
	}
	for _, s := range []struct {
		key     string
		dst     **string
		allowed []string
	}{
		{"gender", &f.Gender, []string{domain.GenderMale, domain.GenderFemale, domain.GenderAny}},
		{"room_type", &f.RoomType, []string{domain.RoomSingle, domain.RoomSharing}},
		{"cooling", &f.Cooling, []string{domain.CoolingAC, domain.CoolingCooler, domain.CoolingNone}},
		{"food", &f.Food, []string{domain.FoodIncluded, domain.FoodNotIncluded}},
	} {
		if v := strings.ToLower(q.Get(s.key)); v != "" {
			ok := false
			for _, a := range s.allowed {
				if v == a {
					ok = true
					break
				}
			}
			if !ok {
				return f, errors.New(s.key + " must be one of " + strings.Join(s.allowed, "|"))
			}
			*s.dst = &v
		}
	}
	return f, nil
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	q := app.SearchQuery{Text: r.URL.Query().Get("q"), Filters: f}
	if hs := r.URL.Query().Get("hotspot"); hs != "" {
		q.Hotspot = h.S.LookupHotspot(r.Context(), hs)
		if q.Hotspot == nil {
			writeProblem(w, http.StatusNotFound, "Unknown hotspot", "no hotspot matches "+strconv.Quote(hs))
			return
		}
	}

	writeJSON(w, r, h.S.Search(r.Context(), q))
}

func (h *Handlers) nearby(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid position", "lat and lon are required numbers")
		return
	}
	radius := 0.0
	if v := r.URL.Query().Get("radius_km"); v != "" {
		var err error
		if radius, err = strconv.ParseFloat(v, 64); err != nil || radius < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid radius", "radius_km must be a non-negative number")
			return
		}
	}
	f, err := parseFilters(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	res, err := h.S.Nearby(r.Context(), lat, lon, radius, f)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCoordinate) {
			writeProblem(w, http.StatusBadRequest, "Invalid position", "lat/lon out of range")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Search failed", "")
		return
	}
	writeJSON(w, r, res)
}

func (h *Handlers) suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	out := h.S.Suggest(r.Context(), q)
	if out == nil {
		out = []domain.Hotspot{}
	}
	writeJSON(w, r, out)
}

func (h *Handlers) toggleTop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Top bool `json:"top"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", `expected {"top": true|false}`)
		return
	}

	if err := h.S.ToggleTopRoom(r.Context(), id, body.Top); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "room not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Toggle failed", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
