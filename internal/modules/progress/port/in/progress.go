package in

import (
	"context"

	"stepone/internal/modules/progress/dto"
)

type Usecase interface {
	Snapshot(ctx context.Context) (dto.ProgressOutput, error)
	CompleteOnboarding(ctx context.Context, input dto.OnboardInput) (dto.MutationOutput, error)
	RecordCompletion(ctx context.Context, input dto.CompletionInput) (dto.MutationOutput, error)
	SwitchAmbition(ctx context.Context, ambition string) (dto.ProgressOutput, error)
	LinkAccount(ctx context.Context, accountID string) (dto.ProgressOutput, error)
	GrantEntitlement(ctx context.Context, tier string) (dto.ProgressOutput, error)
	Reset(ctx context.Context) (dto.ProgressOutput, error)
	ListStamps(ctx context.Context) ([]dto.StampOutput, error)
	ExportPassport(ctx context.Context) (dto.ExportOutput, error)
	// Close cancels pending deferred work.
	Close()
}
