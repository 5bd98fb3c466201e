package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
	"github.com/activity-portal/internal/worker"
)

// retryDelay spaces out re-published deletion attempts.
var retryDelay = 5 * time.Second

// CleanupWorker deletes orphaned image blobs. The image step treats storage
// deletion as best-effort: anything it could not remove synchronously lands
// on the cleanup stream and is retried here until it succeeds or runs out of
// attempts.
type CleanupWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	storage      repository.StorageRepository
	consumerName string
	maxRetries   int
}

func NewCleanupWorker(
	streamRepo repository.StreamRepository,
	storage repository.StorageRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *CleanupWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &CleanupWorker{
		BaseWorker:   worker.NewBaseWorker("media-cleanup", consumerGroup, logger),
		streamRepo:   streamRepo,
		storage:      storage,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

func (w *CleanupWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CleanupWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamMediaCleanup, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamMediaCleanup, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage deletes one blob. A failed deletion below the retry budget
// is re-published with an incremented attempt counter; the message itself is
// always acknowledged so it is never redelivered as-is.
func (w *CleanupWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.MediaCleanupEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Error("Failed to decode cleanup event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	if err := w.storage.Delete(ctx, event.URL); err != nil {
		if event.Attempts >= w.maxRetries {
			logger.Error("Giving up on blob cleanup",
				zap.String("url", event.URL),
				zap.Int("attempts", event.Attempts),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			return
		}

		logger.Warn("Blob cleanup failed, re-queueing",
			zap.String("url", event.URL),
			zap.Int("attempts", event.Attempts),
			zap.Error(err))

		// Backoff must not outlive a shutdown: a stop or cancelled context
		// aborts the wait and leaves the message unacked for redelivery.
		timer := time.NewTimer(retryDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-w.StopChan():
			return
		case <-ctx.Done():
			return
		}

		event.Attempts++
		if err := w.streamRepo.PublishToStream(ctx, domain.StreamMediaCleanup, event); err != nil {
			logger.Error("Failed to re-queue cleanup event",
				zap.String("url", event.URL),
				zap.Error(err))
		}
		w.ack(ctx, msg.ID)
		return
	}

	logger.Info("Orphaned blob deleted",
		zap.String("url", event.URL),
		zap.String("activity_id", event.ActivityID))
	w.ack(ctx, msg.ID)
}

func (w *CleanupWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamMediaCleanup, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
