package supplier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
	"github.com/activity-portal/internal/pkg/errors"
)

// optionRepository implements repository.OptionRepository over the supplier
// HTTP API.
type optionRepository struct {
	*draftRepository
}

func NewOptionRepository(client *Client) repository.OptionRepository {
	return &optionRepository{draftRepository: &draftRepository{Client: client}}
}

func (r *optionRepository) Create(ctx context.Context, activityID string) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPost, "/activities/"+url.PathEscape(activityID)+"/options", nil)
}

func (r *optionRepository) Get(ctx context.Context, activityID, optionID, lang, currency string) (*domain.BookingOptionDraft, error) {
	path := fmt.Sprintf("/activities/%s/options/%s?lang=%s&currency=%s",
		url.PathEscape(activityID), url.PathEscape(optionID),
		url.QueryEscape(lang), url.QueryEscape(currency))

	var option domain.BookingOptionDraft
	if err := r.fetch(ctx, path, &option); err != nil {
		if err == errors.ErrDraftNotFound {
			return nil, errors.ErrOptionNotFound
		}
		return nil, err
	}
	return &option, nil
}

func (r *optionRepository) UpdateSetup(ctx context.Context, optionID string, setup repository.OptionSetup) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPut, "/options/"+url.PathEscape(optionID)+"/setup", map[string]interface{}{
		"title":          setup.Title,
		"max_group_size": setup.MaxGroupSize,
		"languages":      setup.Languages,
		"private":        setup.Private,
		"duration":       setup.Duration,
	})
}

func (r *optionRepository) UpdateMeetingPickup(ctx context.Context, optionID string, meeting domain.MeetingSpec) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPut, "/options/"+url.PathEscape(optionID)+"/meeting", meeting)
}

func (r *optionRepository) UpdateAvailabilityPricing(ctx context.Context, optionID string, ap repository.AvailabilityPricing) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPut, "/options/"+url.PathEscape(optionID)+"/availability", map[string]interface{}{
		"availability_mode": ap.AvailabilityMode,
		"pricing_mode":      ap.PricingMode,
		"schedules":         ap.Schedules,
	})
}

func (r *optionRepository) UpdateCutOff(ctx context.Context, optionID string, cutoff domain.CutOffSpec) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPut, "/options/"+url.PathEscape(optionID)+"/cutoff", cutoff)
}

func (r *optionRepository) CompletenessCheck(ctx context.Context, optionID string) (bool, error) {
	var verdict struct {
		IsComplete bool `json:"is_complete"`
	}
	if err := r.fetch(ctx, "/options/"+url.PathEscape(optionID)+"/completeness", &verdict); err != nil {
		return false, err
	}
	return verdict.IsComplete, nil
}

func (r *optionRepository) ResetAvailabilityPricing(ctx context.Context, optionID string) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodDelete, "/options/"+url.PathEscape(optionID)+"/availability", nil)
}

func (r *optionRepository) ListTimeSlots(ctx context.Context, optionID string) ([]string, error) {
	var payload struct {
		Slots []string `json:"slots"`
	}
	if err := r.fetch(ctx, "/options/"+url.PathEscape(optionID)+"/time-slots", &payload); err != nil {
		return nil, err
	}
	return payload.Slots, nil
}
