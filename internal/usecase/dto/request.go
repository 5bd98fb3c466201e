package dto

// Step request DTOs. The validate tags are the declarative per-step rule
// table: length limits, minimum counts and enumerated choices live here and
// are evaluated by one shared validator before any supplier call is made.

type CreateActivityRequest struct {
	CategoryID int `json:"category_id" validate:"required,gt=0"`
}

type TitleRequest struct {
	Title string `json:"title" validate:"required,max=80"`
}

type POIInput struct {
	PlaceRef      string  `json:"place_ref" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Lat           float64 `json:"lat" validate:"min=-90,max=90"`
	Lng           float64 `json:"lng" validate:"min=-180,max=180"`
	DestinationID string  `json:"destination_id" validate:"required"`
	IsMain        bool    `json:"is_main"`
}

type DescriptionRequest struct {
	Presentation string     `json:"presentation" validate:"required,max=200"`
	Description  string     `json:"description" validate:"required,max=3000"`
	POIs         []POIInput `json:"pois" validate:"dive"`
}

type RecommendationsRequest struct {
	Items []string `json:"items" validate:"min=3,dive,required"`
}

// Restrictions are optional (0..n).
type RestrictionsRequest struct {
	Items []string `json:"items" validate:"dive,required"`
}

type InclusionsRequest struct {
	Items []string `json:"items" validate:"min=3,dive,required"`
}

// Exclusions are optional (0..n).
type ExclusionsRequest struct {
	Items []string `json:"items" validate:"dive,required"`
}

type OptionSetupRequest struct {
	Title     string   `json:"title" validate:"required,max=60"`
	Unlimited bool     `json:"unlimited"`
	// MaxGroupSize is ignored when Unlimited is set.
	MaxGroupSize int      `json:"max_group_size" validate:"min=0"`
	Languages    []string `json:"languages" validate:"min=1,dive,required"`
	Private      bool     `json:"private"`

	DurationMode    string `json:"duration_mode" validate:"required,oneof=fixed validity"`
	DurationDays    int    `json:"duration_days" validate:"min=0,max=30"`
	DurationHours   int    `json:"duration_hours" validate:"min=0,max=23"`
	DurationMinutes int    `json:"duration_minutes" validate:"min=0,max=59"`
	ValidityDays    int    `json:"validity_days" validate:"min=0,max=365"`
}

type MeetingPointInput struct {
	Address     string  `json:"address"`
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lng         float64 `json:"lng" validate:"min=-180,max=180"`
	Description string  `json:"description" validate:"max=1000"`
}

type PickupPointInput struct {
	City    string  `json:"city" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lng     float64 `json:"lng" validate:"min=-180,max=180"`
	Note    string  `json:"note"`
}

type MeetingPickupRequest struct {
	ArrivalMethod string `json:"arrival_method" validate:"required,oneof=meeting_point pickup_service"`

	MeetingPoint *MeetingPointInput `json:"meeting_point,omitempty"`

	PickupPoints    []PickupPointInput `json:"pickup_points,omitempty" validate:"dive"`
	PickupTiming    string             `json:"pickup_timing,omitempty" validate:"omitempty,oneof=standard custom"`
	CustomTiming    string             `json:"custom_timing,omitempty"`
	TransportMode   string             `json:"transport_mode,omitempty"`
	DropOff         string             `json:"drop_off,omitempty" validate:"omitempty,oneof=same_as_pickup other_location"`
	ReturnAddresses []string           `json:"return_addresses,omitempty"`
}

type PriceTierInput struct {
	Currency        string  `json:"currency" validate:"required,len=3"`
	PerParticipant  float64 `json:"per_participant" validate:"min=0"`
	Total           float64 `json:"total" validate:"min=0"`
	MinParticipants int     `json:"min_participants" validate:"min=0"`
	MaxParticipants int     `json:"max_participants" validate:"min=0"`
}

type ScheduleInput struct {
	Weekday     int              `json:"weekday" validate:"min=0,max=6"`
	StartTime   string           `json:"start_time" validate:"required"`
	EndTime     string           `json:"end_time" validate:"required"`
	Active      bool             `json:"active"`
	SeasonStart string           `json:"season_start,omitempty"` // "2006-01-02"
	SeasonEnd   string           `json:"season_end,omitempty"`
	Tiers       []PriceTierInput `json:"tiers" validate:"dive"`
}

type AvailabilityPricingRequest struct {
	AvailabilityMode string          `json:"availability_mode" validate:"required,oneof=time_slots opening_hours"`
	PricingMode      string          `json:"pricing_mode" validate:"required,oneof=per_person per_group"`
	Schedules        []ScheduleInput `json:"schedules" validate:"min=1,dive"`

	// ConfirmReset acknowledges that committing a new schedule configuration
	// discards the option's existing one.
	ConfirmReset bool `json:"confirm_reset"`
}

type CutOffRequest struct {
	DefaultMinutes int            `json:"default_minutes"`
	DifferentTimes bool           `json:"different_times"`
	Overrides      map[string]int `json:"overrides,omitempty"`

	// ApplyToAllFrom broadcasts the named slot's override to every slot.
	ApplyToAllFrom string `json:"apply_to_all_from,omitempty"`
}

type ItineraryStopInput struct {
	Title           string  `json:"title" validate:"required,max=80"`
	Description     string  `json:"description,omitempty" validate:"max=1000"`
	DurationMinutes int     `json:"duration_minutes" validate:"min=0"`
	Lat             float64 `json:"lat" validate:"min=-90,max=90"`
	Lng             float64 `json:"lng" validate:"min=-180,max=180"`
}

// ItineraryRequest - the non-skip finalize path. Stops are committed in
// visit order; finalizing with an itinerary requires at least one stop.
type ItineraryRequest struct {
	Stops []ItineraryStopInput `json:"stops" validate:"min=1,dive"`
}

type PlaceSearchRequest struct {
	Query        string  `json:"query" validate:"required"`
	Lat          float64 `json:"lat" validate:"min=-90,max=90"`
	Lng          float64 `json:"lng" validate:"min=-180,max=180"`
	RadiusMeters int     `json:"radius_meters" validate:"min=0"`
}

// ImageUpload - one file received from the image step form.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}
