package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stepone/internal/modules/entitlement/domain"
	entitlementdto "stepone/internal/modules/entitlement/dto"
	entitlementin "stepone/internal/modules/entitlement/port/in"
	entitlementout "stepone/internal/modules/entitlement/port/out"
	progressdto "stepone/internal/modules/progress/dto"
	progressin "stepone/internal/modules/progress/port/in"
	apperrors "stepone/internal/platform/errors"
	"stepone/internal/platform/logging"
)

// Interactor drives the provider and folds its answers into progress.
// Provider failures leave progress untouched and are never retried.
type Interactor struct {
	provider entitlementout.Provider
	progress progressin.Usecase
	logger   *zap.Logger
}

func NewInteractor(provider entitlementout.Provider, progress progressin.Usecase, logger *zap.Logger) entitlementin.Usecase {
	return &Interactor{provider: provider, progress: progress, logger: logging.OrNop(logger)}
}

func (i *Interactor) Status(ctx context.Context) (entitlementdto.StatusOutput, error) {
	snap, err := i.progress.Snapshot(ctx)
	if err != nil {
		return entitlementdto.StatusOutput{}, err
	}
	return toStatus(snap), nil
}

func (i *Interactor) Purchase(ctx context.Context, tier string) (entitlementdto.StatusOutput, error) {
	parsed, err := domain.ParseTier(strings.ToLower(strings.TrimSpace(tier)))
	if err != nil {
		return entitlementdto.StatusOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := i.provider.Purchase(ctx, parsed); err != nil {
		i.logger.Warn("purchase failed", zap.String("tier", string(parsed)), zap.Error(err))
		return entitlementdto.StatusOutput{}, fmt.Errorf("%w: purchase: %v", apperrors.ErrProviderUnavailable, err)
	}
	snap, err := i.progress.GrantEntitlement(ctx, string(parsed))
	if err != nil {
		return entitlementdto.StatusOutput{}, err
	}
	return toStatus(snap), nil
}

// Restore only ever upgrades: a provider with nothing on record leaves an
// existing Pro entitlement alone.
func (i *Interactor) Restore(ctx context.Context) (entitlementdto.RestoreOutput, error) {
	tier, paid, err := i.provider.Restore(ctx)
	if err != nil {
		i.logger.Warn("restore failed", zap.Error(err))
		return entitlementdto.RestoreOutput{}, fmt.Errorf("%w: restore: %v", apperrors.ErrProviderUnavailable, err)
	}
	if !paid {
		snap, err := i.progress.Snapshot(ctx)
		if err != nil {
			return entitlementdto.RestoreOutput{}, err
		}
		return entitlementdto.RestoreOutput{Restored: false, Status: toStatus(snap)}, nil
	}
	snap, err := i.progress.GrantEntitlement(ctx, string(tier))
	if err != nil {
		return entitlementdto.RestoreOutput{}, err
	}
	i.logger.Info("purchase restored", zap.String("tier", string(tier)))
	return entitlementdto.RestoreOutput{Restored: true, Status: toStatus(snap)}, nil
}

func (i *Interactor) LinkAccount(ctx context.Context) (entitlementdto.StatusOutput, error) {
	snap, err := i.progress.Snapshot(ctx)
	if err != nil {
		return entitlementdto.StatusOutput{}, err
	}
	if snap.Account == string(domain.AccountMember) {
		return entitlementdto.StatusOutput{}, apperrors.ErrAlreadyMember
	}
	accountID, err := i.provider.SignIn(ctx)
	if err != nil {
		i.logger.Warn("sign in failed", zap.Error(err))
		return entitlementdto.StatusOutput{}, fmt.Errorf("%w: sign in: %v", apperrors.ErrProviderUnavailable, err)
	}
	linked, err := i.progress.LinkAccount(ctx, accountID)
	if err != nil {
		return entitlementdto.StatusOutput{}, err
	}
	return toStatus(linked), nil
}

func toStatus(p progressdto.ProgressOutput) entitlementdto.StatusOutput {
	return entitlementdto.StatusOutput{
		Account:   p.Account,
		Paid:      p.Paid,
		Tier:      p.Tier,
		AccountID: p.AccountID,
		IsPro:     p.Paid == string(domain.PaidPro),
	}
}
