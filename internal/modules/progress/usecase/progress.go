package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	catalog "stepone/internal/modules/catalog/domain"
	catalogdto "stepone/internal/modules/catalog/dto"
	catalogin "stepone/internal/modules/catalog/port/in"
	entitlement "stepone/internal/modules/entitlement/domain"
	"stepone/internal/modules/progress/domain"
	progressdto "stepone/internal/modules/progress/dto"
	progressin "stepone/internal/modules/progress/port/in"
	progressout "stepone/internal/modules/progress/port/out"
	"stepone/internal/modules/progress/service"
	"stepone/internal/platform/clock"
	apperrors "stepone/internal/platform/errors"
	"stepone/internal/platform/logging"
)

const visionTitle = "Vision Session"

type Interactor struct {
	svc        *service.ProgressService
	conversion *service.ConversionScheduler
	catalog    catalogin.Usecase
	passport   progressout.PassportExporter
	clock      clock.Clock
	logger     *zap.Logger

	// mu serializes validate-then-apply sequences.
	mu sync.Mutex
}

func NewInteractor(
	svc *service.ProgressService,
	conversion *service.ConversionScheduler,
	catalog catalogin.Usecase,
	passport progressout.PassportExporter,
	clk clock.Clock,
	logger *zap.Logger,
) progressin.Usecase {
	return &Interactor{
		svc:        svc,
		conversion: conversion,
		catalog:    catalog,
		passport:   passport,
		clock:      clk,
		logger:     logging.OrNop(logger),
	}
}

func (i *Interactor) Snapshot(ctx context.Context) (progressdto.ProgressOutput, error) {
	return toOutput(i.svc.Snapshot(ctx)), nil
}

func (i *Interactor) CompleteOnboarding(ctx context.Context, input progressdto.OnboardInput) (progressdto.MutationOutput, error) {
	ambition, err := catalog.ParseAmbition(input.Ambition)
	if err != nil {
		return progressdto.MutationOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	next, effects, err := i.svc.Apply(ctx, domain.Onboarded{Ambition: ambition})
	if err != nil {
		return progressdto.MutationOutput{}, err
	}
	i.logger.Info("onboarding completed", zap.String("ambition", string(ambition)))
	return progressdto.MutationOutput{Progress: toOutput(next), Effects: toEffects(effects)}, nil
}

func (i *Interactor) RecordCompletion(ctx context.Context, input progressdto.CompletionInput) (progressdto.MutationOutput, error) {
	kind := catalog.Kind(strings.TrimSpace(input.Kind))
	if err := kind.Validate(); err != nil {
		return progressdto.MutationOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	current := i.svc.Snapshot(ctx)
	if !current.Onboarded {
		return progressdto.MutationOutput{}, apperrors.ErrNotOnboarded
	}
	journeyLength, err := i.checkCompletion(ctx, current, kind, input.MissionID)
	if err != nil {
		return progressdto.MutationOutput{}, err
	}

	ev := domain.Completed{
		Stamp: domain.Stamp{
			ID:         input.StampID,
			MissionID:  input.MissionID,
			BadgeIcon:  input.BadgeIcon,
			BadgeColor: input.BadgeColor,
		},
		Kind:          kind,
		JourneyLength: journeyLength,
		Now:           i.clock.Now(),
	}
	next, effects, err := i.svc.Apply(ctx, ev)
	if err != nil {
		return progressdto.MutationOutput{}, err
	}
	if effects.ConversionPrompt && i.conversion != nil {
		i.conversion.Schedule()
	}
	i.logger.Info("completion recorded",
		zap.String("mission_id", input.MissionID),
		zap.String("kind", string(kind)),
		zap.Int("streak", next.StreakCount),
	)
	return progressdto.MutationOutput{Progress: toOutput(next), Effects: toEffects(effects)}, nil
}

// checkCompletion ties a completion to the current ambition's plan. It returns
// the journey length to record against.
func (i *Interactor) checkCompletion(ctx context.Context, current domain.UserProgress, kind catalog.Kind, missionID string) (int, error) {
	if kind == catalog.KindVision {
		if missionID != catalog.VisionMissionID {
			return 0, fmt.Errorf("%w: vision completions use mission id %s", apperrors.ErrInvalidInput, catalog.VisionMissionID)
		}
		return 0, nil
	}
	plan, err := i.catalog.MissionsFor(ctx, string(current.Ambition))
	if err != nil {
		return 0, err
	}
	switch kind {
	case catalog.KindFoundation:
		for _, m := range plan.Foundation {
			if m.ID == missionID {
				return len(plan.Journey), nil
			}
		}
		return 0, fmt.Errorf("%w: %s is not a %s foundation mission", apperrors.ErrMissionNotInPlan, missionID, current.Ambition)
	default:
		pos := journeyPosition(plan, missionID)
		if pos < 0 {
			return 0, fmt.Errorf("%w: %s is not a %s journey mission", apperrors.ErrMissionNotInPlan, missionID, current.Ambition)
		}
		if current.CompletedJourneyIndex >= len(plan.Journey) {
			return 0, apperrors.ErrJourneyComplete
		}
		if pos != current.CompletedJourneyIndex {
			return 0, fmt.Errorf("%w: %s is not the next journey mission", apperrors.ErrMissionLocked, missionID)
		}
		return len(plan.Journey), nil
	}
}

func journeyPosition(plan catalogdto.PlanOutput, missionID string) int {
	for _, m := range plan.Journey {
		if m.ID == missionID {
			return m.Position
		}
	}
	return -1
}

// SwitchAmbition is a Pro feature.
func (i *Interactor) SwitchAmbition(ctx context.Context, ambition string) (progressdto.ProgressOutput, error) {
	target, err := catalog.ParseAmbition(ambition)
	if err != nil {
		return progressdto.ProgressOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	current := i.svc.Snapshot(ctx)
	if !current.Onboarded {
		return progressdto.ProgressOutput{}, apperrors.ErrNotOnboarded
	}
	if !current.Entitlement.CanStart(entitlement.ProOnly{}) {
		return progressdto.ProgressOutput{}, apperrors.ErrUpgradeRequired
	}
	next, _, err := i.svc.Apply(ctx, domain.AmbitionSwitched{Ambition: target})
	if err != nil {
		return progressdto.ProgressOutput{}, err
	}
	return toOutput(next), nil
}

// LinkAccount also drops any pending conversion prompt.
func (i *Interactor) LinkAccount(ctx context.Context, accountID string) (progressdto.ProgressOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	next, _, err := i.svc.Apply(ctx, domain.AccountLinked{AccountID: strings.TrimSpace(accountID)})
	if err != nil {
		return progressdto.ProgressOutput{}, err
	}
	if i.conversion != nil {
		i.conversion.Cancel()
	}
	i.logger.Info("account linked")
	return toOutput(next), nil
}

func (i *Interactor) GrantEntitlement(ctx context.Context, tier string) (progressdto.ProgressOutput, error) {
	parsed, err := entitlement.ParseTier(strings.ToLower(strings.TrimSpace(tier)))
	if err != nil {
		return progressdto.ProgressOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	next, _, err := i.svc.Apply(ctx, domain.EntitlementGranted{Tier: parsed})
	if err != nil {
		return progressdto.ProgressOutput{}, err
	}
	i.logger.Info("entitlement granted", zap.String("tier", string(parsed)))
	return toOutput(next), nil
}

func (i *Interactor) Reset(ctx context.Context) (progressdto.ProgressOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.conversion != nil {
		i.conversion.Cancel()
	}
	next, err := i.svc.Reset(ctx)
	if err != nil {
		return progressdto.ProgressOutput{}, err
	}
	i.logger.Info("progress reset")
	return toOutput(next), nil
}

// ListStamps returns stamps newest first with their mission titles.
func (i *Interactor) ListStamps(ctx context.Context) ([]progressdto.StampOutput, error) {
	current := i.svc.Snapshot(ctx)
	counts := i.svc.StampCounts(ctx)
	out := make([]progressdto.StampOutput, 0, len(current.Stamps))
	for _, s := range current.Stamps {
		out = append(out, progressdto.StampOutput{
			ID:           s.ID,
			MissionID:    s.MissionID,
			MissionTitle: i.missionTitle(ctx, s.MissionID),
			MissionCount: counts[s.MissionID],
			EarnedAt:     s.EarnedAt,
			BadgeIcon:    s.BadgeIcon,
			BadgeColor:   s.BadgeColor,
		})
	}
	return out, nil
}

func (i *Interactor) ExportPassport(ctx context.Context) (progressdto.ExportOutput, error) {
	if i.passport == nil {
		return progressdto.ExportOutput{}, fmt.Errorf("passport exporter is not configured")
	}
	current := i.svc.Snapshot(ctx)
	entries := make([]domain.PassportEntry, 0, len(current.Stamps))
	for _, s := range current.Stamps {
		mission, err := i.catalog.GetMission(ctx, s.MissionID)
		ambition := ""
		title := visionTitle
		if err == nil {
			ambition = mission.Ambition
			title = mission.Title
		}
		entries = append(entries, domain.PassportEntry{Stamp: s, MissionTitle: title, Ambition: ambition})
	}
	result, err := i.passport.Export(ctx, entries)
	if err != nil {
		return progressdto.ExportOutput{}, err
	}
	i.logger.Info("passport exported",
		zap.String("index", result.IndexPath),
		zap.Int("written", result.Written),
		zap.Int("skipped", result.Skipped),
	)
	return progressdto.ExportOutput{IndexPath: result.IndexPath, Written: result.Written, Skipped: result.Skipped}, nil
}

func (i *Interactor) Close() {
	if i.conversion != nil {
		i.conversion.Cancel()
	}
}

func (i *Interactor) missionTitle(ctx context.Context, missionID string) string {
	mission, err := i.catalog.GetMission(ctx, missionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			i.logger.Warn("mission lookup failed", zap.String("mission_id", missionID), zap.Error(err))
		}
		return visionTitle
	}
	return mission.Title
}

func toOutput(p domain.UserProgress) progressdto.ProgressOutput {
	return progressdto.ProgressOutput{
		Onboarded:              p.Onboarded,
		Ambition:               string(p.Ambition),
		StreakCount:            p.StreakCount,
		LastCompletion:         p.LastCompletion,
		CompletedFoundationIDs: p.CompletedFoundationIDs,
		CompletedJourneyIndex:  p.CompletedJourneyIndex,
		StampCount:             len(p.Stamps),
		Account:                string(p.Entitlement.Account),
		Paid:                   string(p.Entitlement.Paid),
		Tier:                   string(p.Entitlement.Tier),
		AccountID:              p.AccountID,
	}
}

func toEffects(e domain.Effects) progressdto.EffectsOutput {
	return progressdto.EffectsOutput{PaywallOffer: e.PaywallOffer, ConversionPrompt: e.ConversionPrompt}
}
