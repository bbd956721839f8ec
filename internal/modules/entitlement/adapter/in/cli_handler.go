package in

import (
	"context"

	entitlementdto "stepone/internal/modules/entitlement/dto"
	entitlementin "stepone/internal/modules/entitlement/port/in"
)

type CLIHandler struct {
	usecase entitlementin.Usecase
}

func NewCLIHandler(usecase entitlementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (entitlementdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Upgrade(ctx context.Context, tier string) (entitlementdto.StatusOutput, error) {
	return h.usecase.Purchase(ctx, tier)
}

func (h CLIHandler) Restore(ctx context.Context) (entitlementdto.RestoreOutput, error) {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) LinkAccount(ctx context.Context) (entitlementdto.StatusOutput, error) {
	return h.usecase.LinkAccount(ctx)
}
