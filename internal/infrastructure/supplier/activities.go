package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
)

// draftRepository implements repository.DraftRepository over the supplier
// HTTP API. One endpoint per wizard step: the supplier validates each slice
// on its own and owns the committed state.
type draftRepository struct {
	*Client
}

func NewDraftRepository(client *Client) repository.DraftRepository {
	return &draftRepository{Client: client}
}

// commit posts one step slice and maps the envelope to a CommitResult. A
// rejected commit is not an error here: the caller decides how to surface
// the supplier message.
func (r *draftRepository) commit(ctx context.Context, method, path string, body interface{}) (*domain.CommitResult, error) {
	env, err := r.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	result := &domain.CommitResult{Success: env.Success, Message: env.Message}
	if env.Success && len(env.Data) > 0 {
		var created struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(env.Data, &created); err == nil {
			result.CreatedID = created.ID
		}
	}
	return result, nil
}

func (r *draftRepository) CreateActivity(ctx context.Context, categoryID int) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPost, "/activities", map[string]interface{}{
		"category_id": categoryID,
	})
}

func (r *draftRepository) GetActivity(ctx context.Context, id, lang, currency string) (*domain.ActivityDraft, error) {
	path := fmt.Sprintf("/activities/%s?lang=%s&currency=%s",
		url.PathEscape(id), url.QueryEscape(lang), url.QueryEscape(currency))

	var draft domain.ActivityDraft
	if err := r.fetch(ctx, path, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) UpdateTitle(ctx context.Context, id, title string) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPut, "/activities/"+url.PathEscape(id)+"/title", map[string]interface{}{
		"title": title,
	})
}

func (r *draftRepository) UpdateDescription(ctx context.Context, id string, slice repository.DescriptionSlice) (*domain.CommitResult, error) {
	body := map[string]interface{}{
		"presentation": slice.Presentation,
		"description":  slice.Description,
		"pois":         slice.POIs,
	}
	// The main designation is stored once at draft level
	for _, poi := range slice.POIs {
		if poi.IsMain {
			body["main_poi_ref"] = poi.PlaceRef
			break
		}
	}
	return r.commit(ctx, http.MethodPut, "/activities/"+url.PathEscape(id)+"/description", body)
}

func (r *draftRepository) UpdateRecommendations(ctx context.Context, id string, items []string) (*domain.CommitResult, error) {
	return r.updateList(ctx, id, "recommendations", items)
}

func (r *draftRepository) UpdateRestrictions(ctx context.Context, id string, items []string) (*domain.CommitResult, error) {
	return r.updateList(ctx, id, "restrictions", items)
}

func (r *draftRepository) UpdateInclusions(ctx context.Context, id string, items []string) (*domain.CommitResult, error) {
	return r.updateList(ctx, id, "inclusions", items)
}

func (r *draftRepository) UpdateExclusions(ctx context.Context, id string, items []string) (*domain.CommitResult, error) {
	return r.updateList(ctx, id, "exclusions", items)
}

func (r *draftRepository) updateList(ctx context.Context, id, section string, items []string) (*domain.CommitResult, error) {
	if items == nil {
		items = []string{}
	}
	return r.commit(ctx, http.MethodPut, "/activities/"+url.PathEscape(id)+"/"+section, map[string]interface{}{
		"items": items,
	})
}

func (r *draftRepository) UpdateImages(ctx context.Context, id string, images []domain.ImageAsset) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPut, "/activities/"+url.PathEscape(id)+"/images", map[string]interface{}{
		"images": images,
	})
}

func (r *draftRepository) UpdateItinerary(ctx context.Context, id, lang string, stops []domain.ItineraryStop) (*domain.CommitResult, error) {
	if stops == nil {
		stops = []domain.ItineraryStop{}
	}
	return r.commit(ctx, http.MethodPut,
		"/activities/"+url.PathEscape(id)+"/itinerary?lang="+url.QueryEscape(lang), map[string]interface{}{
			"stops": stops,
		})
}

func (r *draftRepository) SkipItinerary(ctx context.Context, id, lang string) (*domain.CommitResult, error) {
	return r.commit(ctx, http.MethodPost,
		"/activities/"+url.PathEscape(id)+"/itinerary/skip?lang="+url.QueryEscape(lang), nil)
}
