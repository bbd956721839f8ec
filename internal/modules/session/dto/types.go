package dto

import progressdto "stepone/internal/modules/progress/dto"

type StartVisionInput struct {
	Intent  string
	Seconds int
	Minutes int
}

type SessionOutput struct {
	MissionID        string
	Kind             string
	Title            string
	Intent           string
	Status           string
	CancelReason     string
	TotalSeconds     int
	RemainingSeconds int
	Attempt          uint64
}

// TickOutput reports one tick. Stale ticks carry the unchanged session.
// Recorded is set only on the tick that completed the session.
type TickOutput struct {
	Session   SessionOutput
	Stale     bool
	Completed bool
	Recorded  *progressdto.MutationOutput
}
