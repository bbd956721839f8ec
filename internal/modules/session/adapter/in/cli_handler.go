package in

import (
	"context"

	sessiondto "stepone/internal/modules/session/dto"
	sessionin "stepone/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, missionID string) (sessiondto.SessionOutput, error) {
	return h.usecase.Start(ctx, missionID)
}

func (h CLIHandler) StartVision(ctx context.Context, intent string, seconds, minutes int) (sessiondto.SessionOutput, error) {
	return h.usecase.StartVision(ctx, sessiondto.StartVisionInput{Intent: intent, Seconds: seconds, Minutes: minutes})
}

// Run blocks until the active session completes or ctx ends.
func (h CLIHandler) Run(ctx context.Context, onTick func(sessiondto.TickOutput)) (sessiondto.TickOutput, error) {
	return h.usecase.Run(ctx, onTick)
}

func (h CLIHandler) Cancel(ctx context.Context, reason string) (sessiondto.SessionOutput, error) {
	return h.usecase.Cancel(ctx, reason)
}
