package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
	"github.com/activity-portal/internal/pkg/errors"
	"github.com/activity-portal/internal/pkg/validator"
	"github.com/activity-portal/internal/usecase/dto"
	"github.com/activity-portal/internal/wizard"
)

// ActivityUseCase orchestrates the 10-step activity wizard. Every step is
// hydrate -> local edit -> commit: the snapshot is read through the cache
// with the supplier as source of truth, and each successful commit
// invalidates the cached snapshot so re-entry re-hydrates committed state.
type ActivityUseCase struct {
	drafts      repository.DraftRepository
	options     repository.OptionRepository
	cache       repository.CacheRepository
	logger      *zap.Logger
	snapshotTTL time.Duration
	commits     *commitGuard
}

func NewActivityUseCase(
	drafts repository.DraftRepository,
	options repository.OptionRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
	snapshotTTL time.Duration,
) *ActivityUseCase {
	return &ActivityUseCase{
		drafts:      drafts,
		options:     options,
		cache:       cache,
		logger:      logger,
		snapshotTTL: snapshotTTL,
		commits:     newCommitGuard(),
	}
}

// Hydrate loads the draft snapshot a step renders on (re)entry. Re-entering a
// step with an already-populated draft must show the committed values, never
// blank fields.
func (uc *ActivityUseCase) Hydrate(ctx context.Context, p wizard.Params) (*dto.ActivityHydrateResponse, error) {
	if redirect := wizard.Activity().Authorize(p); redirect != nil {
		return nil, redirect
	}

	resp := &dto.ActivityHydrateResponse{
		Step:    p.StepIndex,
		Address: wizard.BuildAddress(p),
	}
	if p.EntityID == "" {
		// Entry step before the draft exists
		return resp, nil
	}

	draft, err := uc.loadDraft(ctx, p)
	if err != nil {
		return nil, err
	}
	resp.Draft = draft
	return resp, nil
}

func (uc *ActivityUseCase) loadDraft(ctx context.Context, p wizard.Params) (*domain.ActivityDraft, error) {
	cached, err := uc.cache.GetActivitySnapshot(ctx, p.EntityID)
	if err != nil {
		uc.logger.Warn("Snapshot cache read failed", zap.String("activity_id", p.EntityID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	draft, err := uc.drafts.GetActivity(ctx, p.EntityID, p.Lang, p.Currency)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetActivitySnapshot(ctx, draft, uc.snapshotTTL); err != nil {
		uc.logger.Warn("Snapshot cache write failed", zap.String("activity_id", p.EntityID), zap.Error(err))
	}
	return draft, nil
}

// Create handles the category step: it creates the draft and returns the
// address of the title step for the new entity.
func (uc *ActivityUseCase) Create(ctx context.Context, p wizard.Params, req dto.CreateActivityRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	result, err := uc.drafts.CreateActivity(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !result.Success || result.CreatedID == "" {
		return nil, commitRejected(result)
	}

	uc.logger.Info("Activity draft created",
		zap.String("activity_id", result.CreatedID),
		zap.Int("category_id", req.CategoryID))

	created := wizard.Params{
		EntityID:  result.CreatedID,
		Lang:      p.Lang,
		Currency:  p.Currency,
		StepIndex: wizard.StepCategory,
	}
	return &dto.CommitResponse{
		Message:     result.Message,
		CreatedID:   result.CreatedID,
		NextAddress: wizard.NextAddress(created),
	}, nil
}

// commit runs one step's supplier write under the per-draft guard and, on
// success, invalidates the cached snapshot and resolves the successor
// address.
func (uc *ActivityUseCase) commit(
	ctx context.Context,
	p wizard.Params,
	fn func(ctx context.Context) (*domain.CommitResult, error),
) (*dto.CommitResponse, error) {
	if redirect := wizard.Activity().Authorize(p); redirect != nil {
		return nil, redirect
	}
	if !uc.commits.tryAcquire(p.EntityID) {
		return nil, errors.ErrCommitInFlight
	}
	defer uc.commits.release(p.EntityID)

	result, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, commitRejected(result)
	}

	if err := uc.cache.DeleteActivitySnapshot(ctx, p.EntityID); err != nil {
		uc.logger.Warn("Snapshot invalidation failed", zap.String("activity_id", p.EntityID), zap.Error(err))
	}

	return &dto.CommitResponse{
		Message:     result.Message,
		NextAddress: wizard.NextAddress(p),
	}, nil
}

func (uc *ActivityUseCase) CommitTitle(ctx context.Context, p wizard.Params, req dto.TitleRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.drafts.UpdateTitle(ctx, p.EntityID, req.Title)
	})
}

func (uc *ActivityUseCase) CommitDescription(ctx context.Context, p wizard.Params, req dto.DescriptionRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	// At most one POI across all destinations may be main
	mains := 0
	for _, poi := range req.POIs {
		if poi.IsMain {
			mains++
		}
	}
	if mains > 1 {
		return nil, errors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"reason": "more than one main point of interest",
		})
	}

	slice := repository.DescriptionSlice{
		Presentation: req.Presentation,
		Description:  req.Description,
		POIs:         poisFromInputs(req.POIs),
	}
	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.drafts.UpdateDescription(ctx, p.EntityID, slice)
	})
}

func (uc *ActivityUseCase) CommitRecommendations(ctx context.Context, p wizard.Params, req dto.RecommendationsRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.drafts.UpdateRecommendations(ctx, p.EntityID, req.Items)
	})
}

func (uc *ActivityUseCase) CommitRestrictions(ctx context.Context, p wizard.Params, req dto.RestrictionsRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.drafts.UpdateRestrictions(ctx, p.EntityID, req.Items)
	})
}

func (uc *ActivityUseCase) CommitInclusions(ctx context.Context, p wizard.Params, req dto.InclusionsRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.drafts.UpdateInclusions(ctx, p.EntityID, req.Items)
	})
}

func (uc *ActivityUseCase) CommitExclusions(ctx context.Context, p wizard.Params, req dto.ExclusionsRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.drafts.UpdateExclusions(ctx, p.EntityID, req.Items)
	})
}

// CommitImages is delegated by the handler to MediaUseCase for upload
// reconciliation; this wrapper only exists so the images step invalidates
// the snapshot like every other step.
func (uc *ActivityUseCase) AfterImagesCommit(ctx context.Context, p wizard.Params) *dto.CommitResponse {
	if err := uc.cache.DeleteActivitySnapshot(ctx, p.EntityID); err != nil {
		uc.logger.Warn("Snapshot invalidation failed", zap.String("activity_id", p.EntityID), zap.Error(err))
	}
	return &dto.CommitResponse{NextAddress: wizard.NextAddress(p)}
}

// ContinueFromOptions gates the booking-options step: the activity moves on
// only once at least one of its options has server-confirmed availability
// and pricing.
func (uc *ActivityUseCase) ContinueFromOptions(ctx context.Context, p wizard.Params) (*dto.CommitResponse, error) {
	if redirect := wizard.Activity().Authorize(p); redirect != nil {
		return nil, redirect
	}

	draft, err := uc.loadDraft(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(draft.OptionIDs) == 0 {
		return nil, errors.ErrAvailabilityIncomplete.WithMessage("Create at least one booking option before continuing")
	}

	complete := false
	for _, optionID := range draft.OptionIDs {
		ok, err := uc.options.CompletenessCheck(ctx, optionID)
		if err != nil {
			return nil, err
		}
		if ok {
			complete = true
			break
		}
	}
	if !complete {
		return nil, errors.ErrAvailabilityIncomplete
	}

	return &dto.CommitResponse{NextAddress: wizard.NextAddress(p)}, nil
}

// CommitItinerary finalizes the activity with an ordered stop list. Like the
// skip path it ends the wizard, but the server reports the
// created-with-itinerary outcome message.
func (uc *ActivityUseCase) CommitItinerary(ctx context.Context, p wizard.Params, req dto.ItineraryRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	stops := make([]domain.ItineraryStop, len(req.Stops))
	for i, in := range req.Stops {
		stops[i] = domain.ItineraryStop{
			Title:           in.Title,
			Description:     in.Description,
			DurationMinutes: in.DurationMinutes,
			Location:        domain.LatLng{Lat: in.Lat, Lng: in.Lng},
		}
	}
	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.drafts.UpdateItinerary(ctx, p.EntityID, p.Lang, stops)
	})
}

// SkipItinerary finalizes the activity without an itinerary. The server
// reports a distinct outcome message for this path; it is passed through for
// the final confirmation screen, and the caller is redirected to the
// activity list.
func (uc *ActivityUseCase) SkipItinerary(ctx context.Context, p wizard.Params) (*dto.CommitResponse, error) {
	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.drafts.SkipItinerary(ctx, p.EntityID, p.Lang)
	})
}

func poisFromInputs(inputs []dto.POIInput) []domain.PointOfInterest {
	out := make([]domain.PointOfInterest, len(inputs))
	for i, in := range inputs {
		out[i] = domain.PointOfInterest{
			PlaceRef:      in.PlaceRef,
			Name:          in.Name,
			Location:      domain.LatLng{Lat: in.Lat, Lng: in.Lng},
			DestinationID: in.DestinationID,
			IsMain:        in.IsMain,
		}
	}
	return out
}

func commitRejected(result *domain.CommitResult) *errors.AppError {
	if result != nil && result.Message != "" {
		return errors.ErrCommitRejected.WithMessage(result.Message)
	}
	return errors.ErrCommitRejected
}
