package in

import (
	"context"

	progressdto "stepone/internal/modules/progress/dto"
	progressin "stepone/internal/modules/progress/port/in"
)

type TUIHandler struct {
	usecase progressin.Usecase
}

func NewTUIHandler(usecase progressin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Snapshot(ctx context.Context) (progressdto.ProgressOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h TUIHandler) CompleteOnboarding(ctx context.Context, input progressdto.OnboardInput) (progressdto.MutationOutput, error) {
	return h.usecase.CompleteOnboarding(ctx, input)
}

func (h TUIHandler) Reset(ctx context.Context) (progressdto.ProgressOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h TUIHandler) ListStamps(ctx context.Context) ([]progressdto.StampOutput, error) {
	return h.usecase.ListStamps(ctx)
}

func (h TUIHandler) ExportPassport(ctx context.Context) (progressdto.ExportOutput, error) {
	return h.usecase.ExportPassport(ctx)
}
