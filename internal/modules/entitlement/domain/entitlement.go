package domain

import "fmt"

type AccountState string

const (
	AccountGuest  AccountState = "guest"
	AccountMember AccountState = "member"
)

type PaidState string

const (
	PaidFree PaidState = "free"
	PaidPro  PaidState = "pro"
)

type Tier string

const (
	TierNone         Tier = ""
	TierSubscription Tier = "subscription"
	TierLifetime     Tier = "lifetime"
)

func ParseTier(raw string) (Tier, error) {
	switch Tier(raw) {
	case TierSubscription, TierLifetime:
		return Tier(raw), nil
	default:
		return TierNone, fmt.Errorf("unsupported tier %q", raw)
	}
}

// Entitlement pairs account linkage with paid status. The two axes change
// independently.
type Entitlement struct {
	Account AccountState
	Paid    PaidState
	Tier    Tier
}

func Default() Entitlement {
	return Entitlement{Account: AccountGuest, Paid: PaidFree}
}

func (e Entitlement) IsPro() bool    { return e.Paid == PaidPro }
func (e Entitlement) IsGuest() bool  { return e.Account != AccountMember }
func (e Entitlement) IsMember() bool { return e.Account == AccountMember }

func (e Entitlement) Validate() error {
	switch e.Account {
	case AccountGuest, AccountMember:
	default:
		return fmt.Errorf("unsupported account state %q", e.Account)
	}
	switch e.Paid {
	case PaidFree, PaidPro:
	default:
		return fmt.Errorf("unsupported paid state %q", e.Paid)
	}
	return nil
}

// Gated is anything whose start may require Pro.
type Gated interface {
	PremiumGated() bool
}

// CanStart is the entitlement gate.
func (e Entitlement) CanStart(item Gated) bool {
	return !item.PremiumGated() || e.IsPro()
}

// ProOnly gates features that have no catalog entry, such as vision sessions
// and switching ambitions.
type ProOnly struct{}

func (ProOnly) PremiumGated() bool { return true }
