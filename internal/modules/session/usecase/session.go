package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	catalog "stepone/internal/modules/catalog/domain"
	catalogdto "stepone/internal/modules/catalog/dto"
	catalogin "stepone/internal/modules/catalog/port/in"
	entitlement "stepone/internal/modules/entitlement/domain"
	progressdto "stepone/internal/modules/progress/dto"
	progressin "stepone/internal/modules/progress/port/in"
	"stepone/internal/modules/session/domain"
	sessiondto "stepone/internal/modules/session/dto"
	sessionin "stepone/internal/modules/session/port/in"
	sessionout "stepone/internal/modules/session/port/out"
	"stepone/internal/modules/session/service"
	"stepone/internal/platform/clock"
	apperrors "stepone/internal/platform/errors"
	"stepone/internal/platform/logging"
)

const tickInterval = time.Second

type Interactor struct {
	catalog  catalogin.Usecase
	progress progressin.Usecase
	stamps   *service.StampService
	feedback sessionout.Feedback
	tickers  clock.TickerFactory
	logger   *zap.Logger

	mu      sync.Mutex
	session domain.Session
}

func NewInteractor(
	catalog catalogin.Usecase,
	progress progressin.Usecase,
	stamps *service.StampService,
	feedback sessionout.Feedback,
	tickers clock.TickerFactory,
	logger *zap.Logger,
) sessionin.Usecase {
	return &Interactor{
		catalog:  catalog,
		progress: progress,
		stamps:   stamps,
		feedback: feedback,
		tickers:  tickers,
		logger:   logging.OrNop(logger),
	}
}

func (i *Interactor) Start(ctx context.Context, missionID string) (sessiondto.SessionOutput, error) {
	missionID = strings.TrimSpace(missionID)
	if missionID == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: mission id is required", apperrors.ErrInvalidInput)
	}
	snap, err := i.progress.Snapshot(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	if !snap.Onboarded {
		return sessiondto.SessionOutput{}, apperrors.ErrNotOnboarded
	}
	plan, err := i.catalog.MissionsFor(ctx, snap.Ambition)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	mission, ok := findMission(plan, missionID)
	if !ok {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: %s is not in the %s plan", apperrors.ErrMissionNotInPlan, missionID, snap.Ambition)
	}
	target := domain.Target{
		MissionID: mission.ID,
		Kind:      catalog.Kind(mission.Kind),
		Title:     mission.Title,
		Icon:      mission.Icon,
		Premium:   mission.IsPremium,
	}
	if !entitlementOf(snap).CanStart(target) {
		return sessiondto.SessionOutput{}, apperrors.ErrUpgradeRequired
	}
	switch target.Kind {
	case catalog.KindFoundation:
		for _, done := range snap.CompletedFoundationIDs {
			if done == mission.ID {
				return sessiondto.SessionOutput{}, fmt.Errorf("%w: %s", apperrors.ErrMissionDoneToday, mission.ID)
			}
		}
	case catalog.KindJourney:
		if snap.CompletedJourneyIndex >= len(plan.Journey) {
			return sessiondto.SessionOutput{}, apperrors.ErrJourneyComplete
		}
		if mission.Position != snap.CompletedJourneyIndex {
			return sessiondto.SessionOutput{}, fmt.Errorf("%w: %s", apperrors.ErrMissionLocked, mission.ID)
		}
	}
	return i.start(target, mission.DurationSeconds)
}

func (i *Interactor) StartVision(ctx context.Context, input sessiondto.StartVisionInput) (sessiondto.SessionOutput, error) {
	snap, err := i.progress.Snapshot(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	if !snap.Onboarded {
		return sessiondto.SessionOutput{}, apperrors.ErrNotOnboarded
	}
	target := domain.VisionTarget(strings.TrimSpace(input.Intent))
	if !entitlementOf(snap).CanStart(target) {
		return sessiondto.SessionOutput{}, apperrors.ErrUpgradeRequired
	}
	if target.Intent == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: vision intent is required", apperrors.ErrInvalidInput)
	}
	seconds, err := domain.VisionDuration(input.Seconds, input.Minutes)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return i.start(target, seconds)
}

func (i *Interactor) start(target domain.Target, seconds int) (sessiondto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	next, err := i.session.Start(target, seconds)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	i.session = next
	i.cue(func(f sessionout.Feedback) { f.Light() })
	i.logger.Info("session started",
		zap.String("mission_id", target.MissionID),
		zap.String("kind", string(target.Kind)),
		zap.Int("seconds", seconds),
		zap.Uint64("attempt", next.Attempt),
	)
	return toOutput(next), nil
}

// Tick applies one second to the given attempt. The completing tick records
// the stamp with progress before returning.
func (i *Interactor) Tick(ctx context.Context, attempt uint64) (sessiondto.TickOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if ctx.Err() != nil {
		return sessiondto.TickOutput{Session: toOutput(i.session), Stale: true}, nil
	}
	next, done, applied := i.session.Tick(attempt)
	if !applied {
		return sessiondto.TickOutput{Session: toOutput(i.session), Stale: true}, nil
	}
	i.session = next
	out := sessiondto.TickOutput{Session: toOutput(next)}
	if done == nil {
		return out, nil
	}
	out.Completed = true
	i.cue(func(f sessionout.Feedback) { f.Success() })
	// Recording must survive a ctx cancelled right after the last tick.
	recorded, err := i.progress.RecordCompletion(context.WithoutCancel(ctx), i.stamps.CompletionInput(*done))
	if err != nil {
		i.logger.Error("record completion failed", zap.String("mission_id", done.Target.MissionID), zap.Error(err))
		return out, fmt.Errorf("record completion: %w", err)
	}
	out.Recorded = &recorded
	i.logger.Info("session completed",
		zap.String("mission_id", done.Target.MissionID),
		zap.Int("elapsed_seconds", done.ElapsedSeconds),
	)
	return out, nil
}

func (i *Interactor) Cancel(_ context.Context, reason string) (sessiondto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	next, err := i.session.Cancel(domain.CancelReason(reason))
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	i.session = next
	i.cue(func(f sessionout.Feedback) { f.Warning() })
	i.logger.Info("session cancelled",
		zap.String("mission_id", next.Target.MissionID),
		zap.String("reason", string(next.CancelReason)),
	)
	return toOutput(next), nil
}

func (i *Interactor) Active(_ context.Context) (sessiondto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.session.Running() {
		return sessiondto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	return toOutput(i.session), nil
}

func (i *Interactor) SwitchAmbition(ctx context.Context, ambition string) (progressdto.ProgressOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.session.Running() {
		return progressdto.ProgressOutput{}, fmt.Errorf("%w: finish or cancel %s first", apperrors.ErrActiveSessionExists, i.session.Target.MissionID)
	}
	out, err := i.progress.SwitchAmbition(ctx, ambition)
	if err != nil {
		return progressdto.ProgressOutput{}, err
	}
	i.logger.Info("ambition switched", zap.String("ambition", out.Ambition))
	return out, nil
}

func (i *Interactor) Run(ctx context.Context, onTick func(sessiondto.TickOutput)) (sessiondto.TickOutput, error) {
	i.mu.Lock()
	if !i.session.Running() {
		i.mu.Unlock()
		return sessiondto.TickOutput{}, apperrors.ErrNoActiveSession
	}
	attempt := i.session.Attempt
	last := sessiondto.TickOutput{Session: toOutput(i.session)}
	i.mu.Unlock()

	ticker := i.tickers.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return i.stopRun(ctx, last)
		case <-ticker.C():
			out, err := i.Tick(ctx, attempt)
			if err != nil {
				return out, err
			}
			if out.Stale {
				if ctx.Err() != nil {
					return i.stopRun(ctx, last)
				}
				// Cancelled or restarted through another caller.
				return out, apperrors.ErrSessionCancelled
			}
			last = out
			if onTick != nil {
				onTick(out)
			}
			if out.Completed {
				return out, nil
			}
		}
	}
}

func (i *Interactor) stopRun(ctx context.Context, last sessiondto.TickOutput) (sessiondto.TickOutput, error) {
	cause := context.Cause(ctx)
	reason, sentinel := domain.ReasonCancelled, apperrors.ErrSessionCancelled
	if errors.Is(cause, apperrors.ErrSessionAbandoned) {
		reason, sentinel = domain.ReasonAbandoned, apperrors.ErrSessionAbandoned
	}
	cancelled, err := i.Cancel(ctx, string(reason))
	if err != nil && !errors.Is(err, apperrors.ErrNoActiveSession) {
		return last, err
	}
	if err == nil {
		last.Session = cancelled
	}
	return last, sentinel
}

func (i *Interactor) cue(fn func(sessionout.Feedback)) {
	if i.feedback != nil {
		fn(i.feedback)
	}
}

func findMission(plan catalogdto.PlanOutput, missionID string) (catalogdto.MissionOutput, bool) {
	for _, m := range plan.Foundation {
		if m.ID == missionID {
			return m, true
		}
	}
	for _, m := range plan.Journey {
		if m.ID == missionID {
			return m, true
		}
	}
	return catalogdto.MissionOutput{}, false
}

func entitlementOf(p progressdto.ProgressOutput) entitlement.Entitlement {
	return entitlement.Entitlement{
		Account: entitlement.AccountState(p.Account),
		Paid:    entitlement.PaidState(p.Paid),
		Tier:    entitlement.Tier(p.Tier),
	}
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		MissionID:        s.Target.MissionID,
		Kind:             string(s.Target.Kind),
		Title:            s.Target.Title,
		Intent:           s.Target.Intent,
		Status:           string(s.Status),
		CancelReason:     string(s.CancelReason),
		TotalSeconds:     s.TotalSeconds,
		RemainingSeconds: s.RemainingSeconds,
		Attempt:          s.Attempt,
	}
}
