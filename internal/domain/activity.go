package domain

// Field limits for the activity wizard. These are fixed by the publishing
// domain, not configurable.
const (
	MaxTitleLen        = 80
	MaxPresentationLen = 200
	MaxDescriptionLen  = 3000
	MinRecommendations = 3
	MinInclusions      = 3
	MinImages          = 3
	MaxImages          = 5
)

// ActivityDraft is the in-progress representation of a tour/experience
// product. It is mirrored from the supplier service, which stays the source
// of truth: every wizard step re-hydrates from the last committed snapshot
// before editing.
type ActivityDraft struct {
	ID           string   `json:"id"`
	CategoryID   int      `json:"category_id"`
	Title        string   `json:"title"`
	Presentation string   `json:"presentation"`
	Description  string   `json:"description"`

	// MainPOIRef is the single draft-level designation of the main point of
	// interest, stored once by external place reference. Per-destination POI
	// groupings are a derived view, never the primary store.
	MainPOIRef string            `json:"main_poi_ref,omitempty"`
	POIs       []PointOfInterest `json:"pois,omitempty"`

	Recommendations []string     `json:"recommendations,omitempty"`
	Restrictions    []string     `json:"restrictions,omitempty"`
	Inclusions      []string     `json:"inclusions,omitempty"`
	Exclusions      []string     `json:"exclusions,omitempty"`
	Images          []ImageAsset `json:"images,omitempty"`

	OptionIDs   []string `json:"option_ids,omitempty"`
	Publishable bool     `json:"publishable"`
}

// ItineraryStop - one ordered stop of the activity's itinerary. The list
// order is the visit order.
type ItineraryStop struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	Location        LatLng `json:"location"`
}

// POIsForDestination returns the draft's points of interest grouped under one
// destination. Derived index over the flat POI list.
func (d *ActivityDraft) POIsForDestination(destinationID string) []PointOfInterest {
	var out []PointOfInterest
	for _, poi := range d.POIs {
		if poi.DestinationID == destinationID {
			out = append(out, poi)
		}
	}
	return out
}

// HasMainPOI reports whether any POI is currently designated main.
func (d *ActivityDraft) HasMainPOI() bool {
	return d.MainPOIRef != ""
}
