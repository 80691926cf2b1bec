// Package hotspot matches free-text queries against a small curated table of
// named landmarks, so well-known places resolve without a geocoding call.
package hotspot

import (
	"strings"

	"roomradar/internal/domain"
)

const (
	minMatchLen    = 3
	minSuggestLen  = 2
	maxSuggestions = 5
)

// clean lowercases, trims and strips a leading "near " prefix.
func clean(q string) string {
	s := strings.ToLower(strings.TrimSpace(q))
	s = strings.TrimPrefix(s, "near ")
	return strings.TrimSpace(s)
}

// Match returns the first hotspot matching the query, or nil. Tried in order:
// exact name equality, name starts-with query, substring either way, then
// every query word contained in the name.
func Match(query string, hotspots []domain.Hotspot) *domain.Hotspot {
	q := clean(query)
	if len(q) < minMatchLen {
		return nil
	}

	for i := range hotspots {
		if strings.ToLower(hotspots[i].Name) == q {
			return &hotspots[i]
		}
	}
	for i := range hotspots {
		if strings.HasPrefix(strings.ToLower(hotspots[i].Name), q) {
			return &hotspots[i]
		}
	}
	for i := range hotspots {
		name := strings.ToLower(hotspots[i].Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return &hotspots[i]
		}
	}
	for i := range hotspots {
		if containsAllWords(strings.ToLower(hotspots[i].Name), q) {
			return &hotspots[i]
		}
	}
	return nil
}

// Suggestions returns up to five hotspots whose name contains the query, or
// contains every word of it. Input order is preserved; no scoring.
func Suggestions(query string, hotspots []domain.Hotspot) []domain.Hotspot {
	q := clean(query)
	if len(q) < minSuggestLen {
		return nil
	}

	var out []domain.Hotspot
	for _, h := range hotspots {
		name := strings.ToLower(h.Name)
		if strings.Contains(name, q) || containsAllWords(name, q) {
			out = append(out, h)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func containsAllWords(name, query string) bool {
	words := strings.Fields(query)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(name, w) {
			return false
		}
	}
	return true
}
