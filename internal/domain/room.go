package domain

// Gender preference accepted by a listing.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderAny    = "any"
)

// Room types.
const (
	RoomSingle  = "single"
	RoomSharing = "sharing"
)

// Cooling types.
const (
	CoolingAC     = "ac"
	CoolingCooler = "cooler"
	CoolingNone   = "none"
)

// Food options.
const (
	FoodIncluded    = "included"
	FoodNotIncluded = "not_included"
)

type Facilities struct {
	Wifi     bool   `json:"wifi"`
	Bathroom bool   `json:"bathroom"`
	Gender   string `json:"gender"`   // male|female|any
	RoomType string `json:"roomType"` // single|sharing
	Cooling  string `json:"cooling"`  // ac|cooler|none
	Food     string `json:"food"`     // included|not_included
}

// Room is read-only to this subsystem: listings are created and updated by an
// external service. Distance, WalkingDuration and WalkingDistance are derived
// per search and never persisted.
type Room struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Price      int        `json:"price"` // whole rupees
	Location   string     `json:"location"`
	Lat        *float64   `json:"lat,omitempty"`
	Lon        *float64   `json:"lon,omitempty"`
	Facilities Facilities `json:"facilities"`
	Available  bool       `json:"available"`
	Top        bool       `json:"top,omitempty"`

	Distance        *float64 `json:"distance,omitempty"` // km from the active reference point
	WalkingDuration string   `json:"walkingDuration,omitempty"`
	WalkingDistance string   `json:"walkingDistance,omitempty"`
}

// HasCoords reports whether both coordinates are present.
func (r Room) HasCoords() bool { return r.Lat != nil && r.Lon != nil }

// RoomFilters is the user-selected constraint set. Nil fields mean "no
// constraint". Replaced wholesale on each filter change; no identity.
type RoomFilters struct {
	MaxPrice *int    `json:"maxPrice,omitempty"`
	Wifi     *bool   `json:"wifi,omitempty"`
	Bathroom *bool   `json:"bathroom,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	RoomType *string `json:"roomType,omitempty"`
	Cooling  *string `json:"cooling,omitempty"`
	Food     *string `json:"food,omitempty"`
}
