package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
	"github.com/activity-portal/internal/pkg/errors"
	"github.com/activity-portal/internal/pkg/validator"
	"github.com/activity-portal/internal/usecase/dto"
	"github.com/activity-portal/internal/wizard"
)

const scheduleDateLayout = "2006-01-02"

// OptionUseCase drives the 4-step booking option sub-wizard. The setup step
// doubles as the creation step: committing it without an option ID first
// creates the option under its activity. Unsaved per-step edits are mirrored
// to the cache so a dropped session can restore them.
type OptionUseCase struct {
	options     repository.OptionRepository
	cache       repository.CacheRepository
	logger      *zap.Logger
	snapshotTTL time.Duration
	mirrorTTL   time.Duration
	commits     *commitGuard
}

func NewOptionUseCase(
	options repository.OptionRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
	snapshotTTL, mirrorTTL time.Duration,
) *OptionUseCase {
	return &OptionUseCase{
		options:     options,
		cache:       cache,
		logger:      logger,
		snapshotTTL: snapshotTTL,
		mirrorTTL:   mirrorTTL,
		commits:     newCommitGuard(),
	}
}

// Hydrate loads the option snapshot a sub-wizard step renders. The derived
// state and, once schedules exist, the aggregated weekly summary ride along
// so the step can render progress without extra round trips. Completeness is
// only asked of the supplier when schedules exist; an option without any
// schedule cannot be complete.
func (uc *OptionUseCase) Hydrate(ctx context.Context, p wizard.Params) (*dto.OptionHydrateResponse, error) {
	if redirect := wizard.Option().Authorize(p); redirect != nil {
		return nil, redirect
	}

	resp := &dto.OptionHydrateResponse{
		Step:    p.StepIndex,
		State:   domain.OptionCreated,
		Address: wizard.BuildAddress(p),
	}
	if p.OptionID == "" {
		// Setup step before the option exists
		return resp, nil
	}

	option, err := uc.loadOption(ctx, p)
	if err != nil {
		return nil, err
	}

	complete := false
	if len(option.Schedules) > 0 {
		complete, err = uc.options.CompletenessCheck(ctx, p.OptionID)
		if err != nil {
			return nil, err
		}
		summary := AggregateSchedules(option.Schedules, option.PricingMode)
		resp.Summary = &summary
	}

	resp.Option = option
	resp.State = option.DeriveState(complete)
	return resp, nil
}

func (uc *OptionUseCase) loadOption(ctx context.Context, p wizard.Params) (*domain.BookingOptionDraft, error) {
	cached, err := uc.cache.GetOptionSnapshot(ctx, p.OptionID)
	if err != nil {
		uc.logger.Warn("Option snapshot cache read failed", zap.String("option_id", p.OptionID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	option, err := uc.options.Get(ctx, p.EntityID, p.OptionID, p.Lang, p.Currency)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetOptionSnapshot(ctx, option, uc.snapshotTTL); err != nil {
		uc.logger.Warn("Option snapshot cache write failed", zap.String("option_id", p.OptionID), zap.Error(err))
	}
	return option, nil
}

// CommitSetup commits the first sub-wizard step. Without an option ID it
// creates the option first, so "create option" and "save setup" are one user
// action. The duration fields of the unselected mode are zeroed before the
// commit.
func (uc *OptionUseCase) CommitSetup(ctx context.Context, p wizard.Params, req dto.OptionSetupRequest) (*dto.CommitResponse, error) {
	if redirect := wizard.Option().Authorize(p); redirect != nil {
		return nil, redirect
	}
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	duration := domain.DurationSpec{
		Mode:         domain.DurationMode(req.DurationMode),
		Days:         req.DurationDays,
		Hours:        req.DurationHours,
		Minutes:      req.DurationMinutes,
		ValidityDays: req.ValidityDays,
	}
	duration.ClearUnselected()

	switch duration.Mode {
	case domain.DurationFixed:
		if duration.Days == 0 && duration.Hours == 0 && duration.Minutes == 0 {
			return nil, errors.ErrValidationFailed.WithMessage("Fixed duration must be longer than zero")
		}
	case domain.DurationValidity:
		if duration.ValidityDays < 1 {
			return nil, errors.ErrValidationFailed.WithMessage("Validity must be at least one day")
		}
	}

	maxGroup := req.MaxGroupSize
	if req.Unlimited {
		maxGroup = domain.UnlimitedGroupSize
	} else if maxGroup < 1 {
		return nil, errors.ErrValidationFailed.WithMessage("Group size must be at least one unless unlimited")
	}

	setup := repository.OptionSetup{
		Title:        req.Title,
		MaxGroupSize: maxGroup,
		Languages:    req.Languages,
		Private:      req.Private,
		Duration:     duration,
	}

	guardKey := p.OptionID
	if guardKey == "" {
		guardKey = p.EntityID
	}
	if !uc.commits.tryAcquire(guardKey) {
		return nil, errors.ErrCommitInFlight
	}
	defer uc.commits.release(guardKey)

	optionID := p.OptionID
	createdID := ""
	if optionID == "" {
		result, err := uc.options.Create(ctx, p.EntityID)
		if err != nil {
			return nil, err
		}
		if !result.Success || result.CreatedID == "" {
			return nil, commitRejected(result)
		}
		optionID = result.CreatedID
		createdID = result.CreatedID

		// The parent's option list changed
		if err := uc.cache.DeleteActivitySnapshot(ctx, p.EntityID); err != nil {
			uc.logger.Warn("Snapshot invalidation failed", zap.String("activity_id", p.EntityID), zap.Error(err))
		}

		uc.logger.Info("Booking option created",
			zap.String("activity_id", p.EntityID),
			zap.String("option_id", optionID))
	}

	result, err := uc.options.UpdateSetup(ctx, optionID, setup)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, commitRejected(result)
	}

	uc.invalidateOption(ctx, optionID)

	committed := p
	committed.OptionID = optionID
	return &dto.CommitResponse{
		Message:     result.Message,
		CreatedID:   createdID,
		NextAddress: wizard.NextAddress(committed),
	}, nil
}

// CommitMeetingPickup commits arrival logistics. The branch-specific rules
// run in a fixed order and the first violation is the single reported
// failure.
func (uc *OptionUseCase) CommitMeetingPickup(ctx context.Context, p wizard.Params, req dto.MeetingPickupRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	spec, err := meetingSpecFromRequest(req)
	if err != nil {
		return nil, err
	}

	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.options.UpdateMeetingPickup(ctx, p.OptionID, *spec)
	})
}

func meetingSpecFromRequest(req dto.MeetingPickupRequest) (*domain.MeetingSpec, error) {
	switch domain.ArrivalMethod(req.ArrivalMethod) {
	case domain.ArrivalMeetingPoint:
		if req.MeetingPoint == nil || req.MeetingPoint.Address == "" {
			return nil, errors.ErrValidationFailed.WithMessage("Select a meeting point with a resolved address")
		}
		return &domain.MeetingSpec{
			Method: domain.ArrivalMeetingPoint,
			Point: &domain.MeetingPoint{
				Address:     req.MeetingPoint.Address,
				Location:    domain.LatLng{Lat: req.MeetingPoint.Lat, Lng: req.MeetingPoint.Lng},
				Description: req.MeetingPoint.Description,
			},
		}, nil

	case domain.ArrivalPickupService:
		if len(req.PickupPoints) == 0 {
			return nil, errors.ErrValidationFailed.WithMessage("Add at least one pickup point")
		}
		if domain.PickupTiming(req.PickupTiming) == domain.PickupTimingCustom && req.CustomTiming == "" {
			return nil, errors.ErrValidationFailed.WithMessage("Describe the custom pickup timing")
		}
		if domain.DropOffPolicy(req.DropOff) == domain.DropOffOtherLocation && len(req.ReturnAddresses) == 0 {
			return nil, errors.ErrValidationFailed.WithMessage("Add at least one return address")
		}

		points := make([]domain.PickupPoint, len(req.PickupPoints))
		for i, in := range req.PickupPoints {
			points[i] = domain.PickupPoint{
				City:     in.City,
				Name:     in.Name,
				Address:  in.Address,
				Location: domain.LatLng{Lat: in.Lat, Lng: in.Lng},
				Note:     in.Note,
			}
		}
		return &domain.MeetingSpec{
			Method: domain.ArrivalPickupService,
			Pickup: &domain.PickupService{
				Points:          points,
				Timing:          domain.PickupTiming(req.PickupTiming),
				CustomTiming:    req.CustomTiming,
				TransportMode:   req.TransportMode,
				DropOff:         domain.DropOffPolicy(req.DropOff),
				ReturnAddresses: req.ReturnAddresses,
			},
		}, nil
	}

	return nil, errors.ErrValidationFailed.WithMessage("Unknown arrival method")
}

// CommitAvailability commits the schedule configuration. Committing over an
// existing configuration is destructive, so it requires an explicit
// confirmation and resets server-side state first.
func (uc *OptionUseCase) CommitAvailability(ctx context.Context, p wizard.Params, req dto.AvailabilityPricingRequest) (*dto.CommitResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	schedules, err := schedulesFromInputs(req.Schedules)
	if err != nil {
		return nil, err
	}

	ap := repository.AvailabilityPricing{
		AvailabilityMode: domain.AvailabilityMode(req.AvailabilityMode),
		PricingMode:      domain.PricingMode(req.PricingMode),
		Schedules:        schedules,
	}

	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		current, err := uc.loadOption(ctx, p)
		if err != nil {
			return nil, err
		}
		if len(current.Schedules) > 0 {
			if !req.ConfirmReset {
				return nil, errors.ErrResetConfirmationRequired
			}
			result, err := uc.options.ResetAvailabilityPricing(ctx, p.OptionID)
			if err != nil {
				return nil, err
			}
			if !result.Success {
				return nil, commitRejected(result)
			}
		}
		return uc.options.UpdateAvailabilityPricing(ctx, p.OptionID, ap)
	})
}

func schedulesFromInputs(inputs []dto.ScheduleInput) ([]domain.Schedule, error) {
	out := make([]domain.Schedule, len(inputs))
	for i, in := range inputs {
		s := domain.Schedule{
			Weekday:   domain.Weekday(in.Weekday),
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Active:    in.Active,
		}
		if in.SeasonStart != "" {
			start, err := time.Parse(scheduleDateLayout, in.SeasonStart)
			if err != nil {
				return nil, errors.ErrValidationFailed.WithMessage("Season start must be a valid date")
			}
			s.SeasonStart = &start
		}
		if in.SeasonEnd != "" {
			end, err := time.Parse(scheduleDateLayout, in.SeasonEnd)
			if err != nil {
				return nil, errors.ErrValidationFailed.WithMessage("Season end must be a valid date")
			}
			s.SeasonEnd = &end
		}
		for _, tier := range in.Tiers {
			s.Tiers = append(s.Tiers, domain.PriceTier{
				Currency:        tier.Currency,
				PerParticipant:  tier.PerParticipant,
				Total:           tier.Total,
				MinParticipants: tier.MinParticipants,
				MaxParticipants: tier.MaxParticipants,
			})
		}
		out[i] = s
	}
	return out, nil
}

// ContinueFromAvailability advances past the availability step only once the
// supplier confirms the configuration is complete.
func (uc *OptionUseCase) ContinueFromAvailability(ctx context.Context, p wizard.Params) (*dto.CommitResponse, error) {
	if redirect := wizard.Option().Authorize(p); redirect != nil {
		return nil, redirect
	}

	complete, err := uc.options.CompletenessCheck(ctx, p.OptionID)
	if err != nil {
		return nil, err
	}
	if !complete {
		return nil, errors.ErrAvailabilityIncomplete
	}

	return &dto.CommitResponse{NextAddress: wizard.NextAddress(p)}, nil
}

// CommitCutOff commits the booking cut-off step and finishes the sub-wizard;
// the successor address points back at the parent's booking-options step.
func (uc *OptionUseCase) CommitCutOff(ctx context.Context, p wizard.Params, req dto.CutOffRequest) (*dto.CommitResponse, error) {
	if redirect := wizard.Option().Authorize(p); redirect != nil {
		return nil, redirect
	}

	option, err := uc.loadOption(ctx, p)
	if err != nil {
		return nil, err
	}
	slots, err := uc.options.ListTimeSlots(ctx, p.OptionID)
	if err != nil {
		return nil, err
	}

	// Reconcile the request against the stored spec so toggle transitions
	// keep their semantics: enabling seeds missing overrides from the new
	// default, disabling resets every override to it.
	cfg, err := NewCutOffConfig(slots, option.CutOff)
	if err != nil {
		return nil, err
	}
	if err := cfg.SetDefault(req.DefaultMinutes); err != nil {
		return nil, err
	}
	cfg.SetDifferentTimes(req.DifferentTimes)
	if req.DifferentTimes {
		for slot, minutes := range req.Overrides {
			if err := cfg.SetSlot(slot, minutes); err != nil {
				return nil, err
			}
		}
	}
	if req.ApplyToAllFrom != "" {
		cfg.ApplyToAll(req.ApplyToAllFrom)
	}

	spec := cfg.Spec()
	spec.Configured = true

	return uc.commit(ctx, p, func(ctx context.Context) (*domain.CommitResult, error) {
		return uc.options.UpdateCutOff(ctx, p.OptionID, spec)
	})
}

// CutOffView resolves the current per-slot effective cut-offs for rendering.
func (uc *OptionUseCase) CutOffView(ctx context.Context, p wizard.Params) (*dto.CutOffView, error) {
	option, err := uc.loadOption(ctx, p)
	if err != nil {
		return nil, err
	}
	slots, err := uc.options.ListTimeSlots(ctx, p.OptionID)
	if err != nil {
		return nil, err
	}

	cfg, err := NewCutOffConfig(slots, option.CutOff)
	if err != nil {
		return nil, err
	}
	return &dto.CutOffView{
		DefaultMinutes: option.CutOff.DefaultMinutes,
		DifferentTimes: option.CutOff.DifferentTimes,
		Effective:      cfg.EffectiveAll(),
		AllowedValues:  AllowedCutOffMinutes,
	}, nil
}

// MirrorStep stores a step's unsaved local edits so a dropped session can
// restore them on re-entry. Best-effort: a cache failure never blocks the
// user.
func (uc *OptionUseCase) MirrorStep(ctx context.Context, optionID string, step int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		uc.logger.Warn("Step mirror marshal failed", zap.String("option_id", optionID), zap.Int("step", step), zap.Error(err))
		return
	}
	if err := uc.cache.SetStepMirror(ctx, optionID, step, data, uc.mirrorTTL); err != nil {
		uc.logger.Warn("Step mirror write failed", zap.String("option_id", optionID), zap.Int("step", step), zap.Error(err))
	}
}

// ReadMirror restores mirrored edits into out. Returns false when no mirror
// exists.
func (uc *OptionUseCase) ReadMirror(ctx context.Context, optionID string, step int, out interface{}) bool {
	data, err := uc.cache.GetStepMirror(ctx, optionID, step)
	if err != nil || len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		uc.logger.Warn("Step mirror decode failed", zap.String("option_id", optionID), zap.Int("step", step), zap.Error(err))
		return false
	}
	return true
}

func (uc *OptionUseCase) commit(
	ctx context.Context,
	p wizard.Params,
	fn func(ctx context.Context) (*domain.CommitResult, error),
) (*dto.CommitResponse, error) {
	if redirect := wizard.Option().Authorize(p); redirect != nil {
		return nil, redirect
	}
	if !uc.commits.tryAcquire(p.OptionID) {
		return nil, errors.ErrCommitInFlight
	}
	defer uc.commits.release(p.OptionID)

	result, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, commitRejected(result)
	}

	uc.invalidateOption(ctx, p.OptionID)

	return &dto.CommitResponse{
		Message:     result.Message,
		NextAddress: wizard.NextAddress(p),
	}, nil
}

func (uc *OptionUseCase) invalidateOption(ctx context.Context, optionID string) {
	if err := uc.cache.DeleteOptionSnapshot(ctx, optionID); err != nil {
		uc.logger.Warn("Option snapshot invalidation failed", zap.String("option_id", optionID), zap.Error(err))
	}
}
