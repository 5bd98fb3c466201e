package domain

import "time"

// Stream names
const (
	StreamMediaCleanup = "stream:media:cleanup"
)

// MediaCleanupEvent - a storage blob whose best-effort deletion failed during
// the image step and is retried by the cleanup worker.
type MediaCleanupEvent struct {
	URL         string    `json:"url"`
	ActivityID  string    `json:"activity_id,omitempty"`
	Attempts    int       `json:"attempts"`
	RequestedAt time.Time `json:"requested_at"`
}

// StreamMessage - message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
