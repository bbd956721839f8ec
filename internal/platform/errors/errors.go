package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")

	ErrNoProgress        = errors.New("no stored progress")
	ErrMalformedProgress = errors.New("malformed stored progress")

	ErrNotOnboarded     = errors.New("onboarding not completed")
	ErrAlreadyOnboarded = errors.New("onboarding already completed")
	ErrAlreadyMember    = errors.New("account already linked")
	ErrJourneyComplete  = errors.New("journey already complete")

	ErrUpgradeRequired     = errors.New("pro upgrade required")
	ErrMissionDoneToday    = errors.New("mission already completed today")
	ErrMissionLocked       = errors.New("mission is locked")
	ErrMissionNotInPlan    = errors.New("mission is not part of the current ambition")
	ErrSessionCancelled    = errors.New("session cancelled")
	ErrSessionAbandoned    = errors.New("session abandoned")
	ErrProviderUnavailable = errors.New("provider unavailable")
)
