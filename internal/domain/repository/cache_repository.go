package repository

import (
	"context"
	"time"

	"github.com/activity-portal/internal/domain"
)

// CacheRepository - redis-backed convenience mirror. Drafts are cached as a
// read-through layer keyed by entity ID; the supplier copy is always
// authoritative on (re)entry, so every successful commit invalidates here.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetActivitySnapshot(ctx context.Context, id string) (*domain.ActivityDraft, error)
	SetActivitySnapshot(ctx context.Context, draft *domain.ActivityDraft, ttl time.Duration) error
	DeleteActivitySnapshot(ctx context.Context, id string) error

	GetOptionSnapshot(ctx context.Context, id string) (*domain.BookingOptionDraft, error)
	SetOptionSnapshot(ctx context.Context, option *domain.BookingOptionDraft, ttl time.Duration) error
	DeleteOptionSnapshot(ctx context.Context, id string) error

	// Step mirror: ephemeral per-option key/value fallback for form state the
	// ui has not committed yet. Convenience only.
	GetStepMirror(ctx context.Context, optionID string, step int) ([]byte, error)
	SetStepMirror(ctx context.Context, optionID string, step int, data []byte, ttl time.Duration) error
}
