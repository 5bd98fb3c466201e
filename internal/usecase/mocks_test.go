package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
)

// MockDraftRepository is a mock of DraftRepository
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) CreateActivity(ctx context.Context, categoryID int) (*domain.CommitResult, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) GetActivity(ctx context.Context, id, lang, currency string) (*domain.ActivityDraft, error) {
	args := m.Called(ctx, id, lang, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityDraft), args.Error(1)
}

func (m *MockDraftRepository) UpdateTitle(ctx context.Context, id, title string) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) UpdateDescription(ctx context.Context, id string, slice repository.DescriptionSlice) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, slice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) UpdateRecommendations(ctx context.Context, id string, items []string) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) UpdateRestrictions(ctx context.Context, id string, items []string) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) UpdateInclusions(ctx context.Context, id string, items []string) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) UpdateExclusions(ctx context.Context, id string, items []string) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) UpdateImages(ctx context.Context, id string, images []domain.ImageAsset) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) UpdateItinerary(ctx context.Context, id, lang string, stops []domain.ItineraryStop) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, lang, stops)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockDraftRepository) SkipItinerary(ctx context.Context, id, lang string) (*domain.CommitResult, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

// MockOptionRepository is a mock of OptionRepository
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) Create(ctx context.Context, activityID string) (*domain.CommitResult, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockOptionRepository) Get(ctx context.Context, activityID, optionID, lang, currency string) (*domain.BookingOptionDraft, error) {
	args := m.Called(ctx, activityID, optionID, lang, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingOptionDraft), args.Error(1)
}

func (m *MockOptionRepository) UpdateSetup(ctx context.Context, optionID string, setup repository.OptionSetup) (*domain.CommitResult, error) {
	args := m.Called(ctx, optionID, setup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockOptionRepository) UpdateMeetingPickup(ctx context.Context, optionID string, meeting domain.MeetingSpec) (*domain.CommitResult, error) {
	args := m.Called(ctx, optionID, meeting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockOptionRepository) UpdateAvailabilityPricing(ctx context.Context, optionID string, ap repository.AvailabilityPricing) (*domain.CommitResult, error) {
	args := m.Called(ctx, optionID, ap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockOptionRepository) UpdateCutOff(ctx context.Context, optionID string, cutoff domain.CutOffSpec) (*domain.CommitResult, error) {
	args := m.Called(ctx, optionID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockOptionRepository) CompletenessCheck(ctx context.Context, optionID string) (bool, error) {
	args := m.Called(ctx, optionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOptionRepository) ResetAvailabilityPricing(ctx context.Context, optionID string) (*domain.CommitResult, error) {
	args := m.Called(ctx, optionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

func (m *MockOptionRepository) ListTimeSlots(ctx context.Context, optionID string) ([]string, error) {
	args := m.Called(ctx, optionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetActivitySnapshot(ctx context.Context, id string) (*domain.ActivityDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityDraft), args.Error(1)
}

func (m *MockCacheRepository) SetActivitySnapshot(ctx context.Context, draft *domain.ActivityDraft, ttl time.Duration) error {
	args := m.Called(ctx, draft, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteActivitySnapshot(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCacheRepository) GetOptionSnapshot(ctx context.Context, id string) (*domain.BookingOptionDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingOptionDraft), args.Error(1)
}

func (m *MockCacheRepository) SetOptionSnapshot(ctx context.Context, option *domain.BookingOptionDraft, ttl time.Duration) error {
	args := m.Called(ctx, option, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteOptionSnapshot(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStepMirror(ctx context.Context, optionID string, step int) ([]byte, error) {
	args := m.Called(ctx, optionID, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetStepMirror(ctx context.Context, optionID string, step int, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, optionID, step, data, ttl)
	return args.Error(0)
}

// MockStorageRepository is a mock of StorageRepository
type MockStorageRepository struct {
	mock.Mock
}

func (m *MockStorageRepository) Upload(ctx context.Context, key, contentType string, data []byte, progress repository.ProgressFunc) (string, error) {
	args := m.Called(ctx, key, contentType, data, progress)
	if progress != nil {
		progress(int64(len(data)), int64(len(data)))
	}
	return args.String(0), args.Error(1)
}

func (m *MockStorageRepository) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
