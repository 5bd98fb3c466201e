package domain

// LatLng - geographic coordinate pair
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// CommitResult - outcome of a per-step write against the supplier service.
// CreatedID is set when the step created a new entity (first activity step,
// booking option setup). Message carries the server-provided text, if any.
type CommitResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	CreatedID string `json:"created_id,omitempty"`
}
