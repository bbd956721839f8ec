package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"stepone/internal/modules/progress/domain"
	progressout "stepone/internal/modules/progress/port/out"
	"stepone/internal/platform/clock"
	apperrors "stepone/internal/platform/errors"
	"stepone/internal/platform/logging"
)

// ProgressService owns the in-memory record. The store is written after every
// mutation but memory stays the source of truth: a failed save is logged and
// the new state is kept.
type ProgressService struct {
	clock  clock.Clock
	store  progressout.Store
	logger *zap.Logger

	mu       sync.Mutex
	hydrated bool
	state    domain.UserProgress
}

func NewProgressService(clk clock.Clock, store progressout.Store, logger *zap.Logger) *ProgressService {
	return &ProgressService{clock: clk, store: store, logger: logging.OrNop(logger)}
}

// Snapshot returns a copy of the current record, hydrating it on first use.
// The foundation set is rolled to the current day on every call.
func (s *ProgressService) Snapshot(ctx context.Context) domain.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx)
	s.rollover()
	return s.copyState()
}

// Apply folds ev into the record and saves the result.
func (s *ProgressService) Apply(ctx context.Context, ev domain.Event) (domain.UserProgress, domain.Effects, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx)
	s.rollover()
	next, effects, err := domain.Apply(s.state, ev)
	if err != nil {
		return s.copyState(), domain.Effects{}, err
	}
	s.state = next
	s.save(ctx)
	return s.copyState(), effects, nil
}

// Reset clears the stored record, then stores the reset defaults.
func (s *ProgressService) Reset(ctx context.Context) (domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx)
	next, _, err := domain.Apply(s.state, domain.ProgressReset{})
	if err != nil {
		return s.copyState(), err
	}
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("clear progress failed", zap.Error(err))
	}
	s.state = next
	s.save(ctx)
	return s.copyState(), nil
}

// StampCounts returns how many stamps each mission has earned. Stores with a
// stamp table answer from it; otherwise, or when the query fails, the counts
// come from the in-memory record.
func (s *ProgressService) StampCounts(ctx context.Context) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx)
	if counter, ok := s.store.(progressout.StampCounter); ok {
		counts, err := counter.CountStampsByMission(ctx)
		if err == nil {
			return counts
		}
		s.logger.Warn("count stamps failed", zap.Error(err))
	}
	counts := make(map[string]int, len(s.state.Stamps))
	for _, stamp := range s.state.Stamps {
		counts[stamp.MissionID]++
	}
	return counts
}

func (s *ProgressService) hydrate(ctx context.Context) {
	if s.hydrated {
		return
	}
	s.hydrated = true
	loaded, err := s.store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNoProgress):
		loaded = domain.Default()
	case errors.Is(err, apperrors.ErrMalformedProgress):
		s.logger.Warn("stored progress is malformed, starting fresh", zap.Error(err))
		loaded = domain.Default()
	default:
		s.logger.Warn("load progress failed, starting fresh", zap.Error(err))
		loaded = domain.Default()
	}
	s.state = loaded
	s.rollover()
	s.logger.Debug("progress hydrated",
		zap.Bool("onboarded", s.state.Onboarded),
		zap.Int("streak", s.state.StreakCount),
		zap.Int("stamps", len(s.state.Stamps)),
	)
}

// rollover keeps a long-lived process from carrying yesterday's foundation
// set past midnight. It only touches memory; the next mutation persists it.
func (s *ProgressService) rollover() {
	rolled, _, err := domain.Apply(s.state, domain.DayRolledOver{Now: s.clock.Now()})
	if err != nil {
		s.logger.Warn("daily rollover failed", zap.Error(err))
		return
	}
	s.state = rolled
}

func (s *ProgressService) save(ctx context.Context) {
	if err := s.store.Save(ctx, s.state); err != nil {
		s.logger.Warn("save progress failed", zap.Error(err))
	}
}

func (s *ProgressService) copyState() domain.UserProgress {
	return s.state.Clone()
}
