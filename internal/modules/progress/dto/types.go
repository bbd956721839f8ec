package dto

import "time"

type ProgressOutput struct {
	Onboarded              bool
	Ambition               string
	StreakCount            int
	LastCompletion         *time.Time
	CompletedFoundationIDs []string
	CompletedJourneyIndex  int
	StampCount             int
	Account                string
	Paid                   string
	Tier                   string
	AccountID              string
}

type EffectsOutput struct {
	PaywallOffer     bool
	ConversionPrompt bool
}

type MutationOutput struct {
	Progress ProgressOutput
	Effects  EffectsOutput
}

type OnboardInput struct {
	Ambition string
}

// CompletionInput describes a finished session. The stamp fields are chosen
// by the caller; EarnedAt is always the recording time.
type CompletionInput struct {
	MissionID  string
	Kind       string
	StampID    string
	BadgeIcon  string
	BadgeColor string
}

type StampOutput struct {
	ID           string
	MissionID    string
	MissionTitle string
	// MissionCount is the number of stamps earned for MissionID.
	MissionCount int
	EarnedAt     time.Time
	BadgeIcon    string
	BadgeColor   string
}

type ExportOutput struct {
	IndexPath string
	Written   int
	Skipped   int
}
