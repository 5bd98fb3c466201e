package domain

// Category - activity category from the supplier's reference lists.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Destination - a geographic destination activities can visit.
type Destination struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// TransportMode - pickup transport mode reference entry.
type TransportMode struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
