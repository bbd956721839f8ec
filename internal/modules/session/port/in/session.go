package in

import (
	"context"

	progressdto "stepone/internal/modules/progress/dto"
	"stepone/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, missionID string) (dto.SessionOutput, error)
	StartVision(ctx context.Context, input dto.StartVisionInput) (dto.SessionOutput, error)
	Tick(ctx context.Context, attempt uint64) (dto.TickOutput, error)
	// Cancel takes "cancelled" or "abandoned".
	Cancel(ctx context.Context, reason string) (dto.SessionOutput, error)
	Active(ctx context.Context) (dto.SessionOutput, error)
	// SwitchAmbition changes the plan missions are started from. It is
	// refused while a session runs so the finishing tick still finds its
	// mission in the plan.
	SwitchAmbition(ctx context.Context, ambition string) (progressdto.ProgressOutput, error)
	// Run ticks the active session once a second until it completes or ctx
	// ends. A ctx cancelled with ErrSessionAbandoned as its cause abandons
	// the session; any other cancellation cancels it.
	Run(ctx context.Context, onTick func(dto.TickOutput)) (dto.TickOutput, error)
}
