package out

import (
	"context"

	"stepone/internal/modules/entitlement/domain"
)

// Provider is the purchase and identity backend. It is authoritative for the
// paid axis.
type Provider interface {
	Purchase(ctx context.Context, tier domain.Tier) error
	// Restore reports the paid tier on record, if any.
	Restore(ctx context.Context) (domain.Tier, bool, error)
	SignIn(ctx context.Context) (string, error)
}
