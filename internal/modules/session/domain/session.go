package domain

import (
	"fmt"

	catalog "stepone/internal/modules/catalog/domain"
	apperrors "stepone/internal/platform/errors"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CancelReason tells an explicit cancel from the user leaving the session.
// Both end the attempt the same way.
type CancelReason string

const (
	ReasonCancelled CancelReason = "cancelled"
	ReasonAbandoned CancelReason = "abandoned"
)

var (
	VisionPresets = []int{120, 240, 360}
	BadgeColors   = []string{"#ffb3ba", "#ffdfba", "#bae1ff", "#baffc9"}
)

// Target is what a session works towards: a catalog mission, or a vision
// with a user-written intent.
type Target struct {
	MissionID string
	Kind      catalog.Kind
	Title     string
	Icon      string
	Intent    string
	Premium   bool
}

func (t Target) PremiumGated() bool {
	return t.Premium || t.Kind == catalog.KindVision
}

func VisionTarget(intent string) Target {
	return Target{
		MissionID: catalog.VisionMissionID,
		Kind:      catalog.KindVision,
		Title:     "Vision Session",
		Icon:      catalog.FoundationIcon,
		Intent:    intent,
	}
}

// Completion is emitted once when a running session reaches zero.
type Completion struct {
	Target         Target
	ElapsedSeconds int
}

// Session is a countdown. Attempt increases on every Start so ticks
// scheduled for an earlier attempt can be recognised and dropped.
type Session struct {
	Target           Target
	Status           Status
	TotalSeconds     int
	RemainingSeconds int
	Attempt          uint64
	CancelReason     CancelReason
}

func (s Session) Running() bool { return s.Status == StatusRunning }

func (s Session) Start(target Target, totalSeconds int) (Session, error) {
	if s.Running() {
		return s, apperrors.ErrActiveSessionExists
	}
	if totalSeconds <= 0 {
		return s, fmt.Errorf("%w: duration must be positive", apperrors.ErrInvalidInput)
	}
	if err := target.Kind.Validate(); err != nil {
		return s, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return Session{
		Target:           target,
		Status:           StatusRunning,
		TotalSeconds:     totalSeconds,
		RemainingSeconds: totalSeconds,
		Attempt:          s.Attempt + 1,
	}, nil
}

// Tick advances the countdown by one second. A tick for another attempt, or
// one arriving when the session is not running, is stale and changes
// nothing.
func (s Session) Tick(attempt uint64) (Session, *Completion, bool) {
	if !s.Running() || attempt != s.Attempt {
		return s, nil, false
	}
	s.RemainingSeconds--
	if s.RemainingSeconds > 0 {
		return s, nil, true
	}
	s.RemainingSeconds = 0
	s.Status = StatusCompleted
	return s, &Completion{Target: s.Target, ElapsedSeconds: s.TotalSeconds}, true
}

// Cancel ends a running attempt without credit and restores the full
// duration.
func (s Session) Cancel(reason CancelReason) (Session, error) {
	if !s.Running() {
		return s, apperrors.ErrNoActiveSession
	}
	if reason != ReasonAbandoned {
		reason = ReasonCancelled
	}
	s.Status = StatusCancelled
	s.RemainingSeconds = s.TotalSeconds
	s.CancelReason = reason
	return s, nil
}

// VisionDuration resolves a vision length from either seconds or whole
// minutes. Exactly one of them must be set.
func VisionDuration(seconds, minutes int) (int, error) {
	switch {
	case seconds > 0 && minutes > 0:
		return 0, fmt.Errorf("%w: choose seconds or minutes, not both", apperrors.ErrInvalidInput)
	case seconds > 0:
		for _, preset := range VisionPresets {
			if seconds == preset {
				return seconds, nil
			}
		}
		return 0, fmt.Errorf("%w: vision presets are %v seconds", apperrors.ErrInvalidInput, VisionPresets)
	case minutes > 0:
		return minutes * 60, nil
	default:
		return 0, fmt.Errorf("%w: vision duration is required", apperrors.ErrInvalidInput)
	}
}
