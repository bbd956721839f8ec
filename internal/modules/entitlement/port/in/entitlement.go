package in

import (
	"context"

	"stepone/internal/modules/entitlement/dto"
)

type Usecase interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	Purchase(ctx context.Context, tier string) (dto.StatusOutput, error)
	Restore(ctx context.Context) (dto.RestoreOutput, error)
	LinkAccount(ctx context.Context) (dto.StatusOutput, error)
}
