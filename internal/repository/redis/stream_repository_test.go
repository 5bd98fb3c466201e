package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	redisRepo "github.com/activity-portal/internal/repository/redis"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, "test:stream:media:cleanup")

	return client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	streamName := "test:stream:media:cleanup"
	groupName := "test-group"

	defer func() {
		client.Del(ctx, streamName)
	}()

	err := repo.CreateConsumerGroup(ctx, streamName, groupName)
	require.NoError(t, err)

	// Creating the same group again is not an error
	err = repo.CreateConsumerGroup(ctx, streamName, groupName)
	assert.NoError(t, err)
}

func TestStreamRepository_PublishAndConsume(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := redisRepo.NewStreamRepository(client, zap.NewNop())

	streamName := "test:stream:media:cleanup"
	groupName := "test-group"
	consumerName := "test-consumer-" + uuid.New().String()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer client.Del(context.Background(), streamName)

	require.NoError(t, repo.CreateConsumerGroup(ctx, streamName, groupName))

	msgChan, err := repo.ConsumeStream(ctx, streamName, groupName, consumerName)
	require.NoError(t, err)

	event := domain.MediaCleanupEvent{
		URL:         "https://media.example.com/act-1/orphan.jpg",
		ActivityID:  "act-1",
		Attempts:    1,
		RequestedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.PublishToStream(ctx, streamName, event))

	select {
	case msg := <-msgChan:
		var decoded domain.MediaCleanupEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Data), &decoded))
		assert.Equal(t, event.URL, decoded.URL)
		assert.Equal(t, "act-1", decoded.ActivityID)

		require.NoError(t, repo.AckMessage(ctx, streamName, groupName, msg.ID))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for stream message")
	}
}
