package repository

import (
	"context"

	"github.com/activity-portal/internal/domain"
)

// StreamRepository - Redis Streams contract for the deferred media cleanup
// queue.
type StreamRepository interface {
	// ConsumeStream reads messages from a stream via a consumer group.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup creates the consumer group if missing.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream publishes a JSON-encoded event to a stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
