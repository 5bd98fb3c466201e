package domain

// PointOfInterest - a specific place the activity visits, always inside one
// destination. PlaceRef is the external place identifier persisted alongside
// the POI; at most one POI across all destinations is main at any time.
type PointOfInterest struct {
	PlaceRef      string `json:"place_ref"`
	Name          string `json:"name"`
	Location      LatLng `json:"location"`
	DestinationID string `json:"destination_id"`
	IsMain        bool   `json:"is_main"`
}

// Place - a place-search result from the geospatial collaborator, prior to
// being attached to a destination.
type Place struct {
	Ref      string `json:"ref"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Location LatLng `json:"location"`
}
