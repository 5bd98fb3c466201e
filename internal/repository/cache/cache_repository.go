package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func activitySnapshotKey(id string) string {
	return "draft:activity:" + id
}

func optionSnapshotKey(id string) string {
	return "draft:option:" + id
}

func stepMirrorKey(optionID string, step int) string {
	return fmt.Sprintf("mirror:%s:%d", optionID, step)
}

func (r *cacheRepository) GetActivitySnapshot(ctx context.Context, id string) (*domain.ActivityDraft, error) {
	data, err := r.Get(ctx, activitySnapshotKey(id))
	if err != nil || data == nil {
		return nil, err
	}

	var draft domain.ActivityDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		r.logger.Error("Failed to unmarshal activity snapshot", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("unmarshal activity snapshot: %w", err)
	}
	return &draft, nil
}

func (r *cacheRepository) SetActivitySnapshot(ctx context.Context, draft *domain.ActivityDraft, ttl time.Duration) error {
	data, err := json.Marshal(draft)
	if err != nil {
		r.logger.Error("Failed to marshal activity snapshot", zap.String("id", draft.ID), zap.Error(err))
		return fmt.Errorf("marshal activity snapshot: %w", err)
	}
	return r.Set(ctx, activitySnapshotKey(draft.ID), data, ttl)
}

func (r *cacheRepository) DeleteActivitySnapshot(ctx context.Context, id string) error {
	return r.Delete(ctx, activitySnapshotKey(id))
}

func (r *cacheRepository) GetOptionSnapshot(ctx context.Context, id string) (*domain.BookingOptionDraft, error) {
	data, err := r.Get(ctx, optionSnapshotKey(id))
	if err != nil || data == nil {
		return nil, err
	}

	var option domain.BookingOptionDraft
	if err := json.Unmarshal(data, &option); err != nil {
		r.logger.Error("Failed to unmarshal option snapshot", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("unmarshal option snapshot: %w", err)
	}
	return &option, nil
}

func (r *cacheRepository) SetOptionSnapshot(ctx context.Context, option *domain.BookingOptionDraft, ttl time.Duration) error {
	data, err := json.Marshal(option)
	if err != nil {
		r.logger.Error("Failed to marshal option snapshot", zap.String("id", option.ID), zap.Error(err))
		return fmt.Errorf("marshal option snapshot: %w", err)
	}
	return r.Set(ctx, optionSnapshotKey(option.ID), data, ttl)
}

func (r *cacheRepository) DeleteOptionSnapshot(ctx context.Context, id string) error {
	return r.Delete(ctx, optionSnapshotKey(id))
}

func (r *cacheRepository) GetStepMirror(ctx context.Context, optionID string, step int) ([]byte, error) {
	return r.Get(ctx, stepMirrorKey(optionID, step))
}

func (r *cacheRepository) SetStepMirror(ctx context.Context, optionID string, step int, data []byte, ttl time.Duration) error {
	return r.Set(ctx, stepMirrorKey(optionID, step), data, ttl)
}
