package in

import (
	"context"

	progressdto "stepone/internal/modules/progress/dto"
	sessiondto "stepone/internal/modules/session/dto"
	sessionin "stepone/internal/modules/session/port/in"
)

// TUIHandler drives the timer one tick at a time from the UI event loop.
type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context, missionID string) (sessiondto.SessionOutput, error) {
	return h.usecase.Start(ctx, missionID)
}

func (h TUIHandler) StartVision(ctx context.Context, input sessiondto.StartVisionInput) (sessiondto.SessionOutput, error) {
	return h.usecase.StartVision(ctx, input)
}

func (h TUIHandler) Tick(ctx context.Context, attempt uint64) (sessiondto.TickOutput, error) {
	return h.usecase.Tick(ctx, attempt)
}

func (h TUIHandler) Cancel(ctx context.Context, reason string) (sessiondto.SessionOutput, error) {
	return h.usecase.Cancel(ctx, reason)
}

func (h TUIHandler) Active(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Active(ctx)
}

func (h TUIHandler) SwitchAmbition(ctx context.Context, ambition string) (progressdto.ProgressOutput, error) {
	return h.usecase.SwitchAmbition(ctx, ambition)
}
