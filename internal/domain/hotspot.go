package domain

// Hotspot is a curated named landmark with fixed coordinates, used to shortcut
// geocoding for well-known local points of interest. Immutable reference data.
type Hotspot struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	City *string `json:"city,omitempty"`
}

// Search type tags for a resolved reference point.
const (
	SearchTypeCity     = "city"
	SearchTypeLandmark = "landmark"
	SearchTypeNearMe   = "near_me"
)

// SearchLocation is a resolved geo-reference point. Created transiently per
// search action; not persisted.
type SearchLocation struct {
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Label    string   `json:"label,omitempty"`
	RadiusKm *float64 `json:"radiusKm,omitempty"`
	Type     string   `json:"type"` // city|landmark|near_me
}

// Place is a geocoder result.
type Place struct {
	Lat   float64
	Lon   float64
	Label string
}
