package in

import (
	"context"

	progressdto "stepone/internal/modules/progress/dto"
	progressin "stepone/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (progressdto.ProgressOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Onboard(ctx context.Context, ambition string) (progressdto.MutationOutput, error) {
	return h.usecase.CompleteOnboarding(ctx, progressdto.OnboardInput{Ambition: ambition})
}

func (h CLIHandler) SwitchAmbition(ctx context.Context, ambition string) (progressdto.ProgressOutput, error) {
	return h.usecase.SwitchAmbition(ctx, ambition)
}

func (h CLIHandler) Stamps(ctx context.Context) ([]progressdto.StampOutput, error) {
	return h.usecase.ListStamps(ctx)
}

func (h CLIHandler) ExportPassport(ctx context.Context) (progressdto.ExportOutput, error) {
	return h.usecase.ExportPassport(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (progressdto.ProgressOutput, error) {
	return h.usecase.Reset(ctx)
}
