package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"stepone/internal/modules/entitlement/domain"
	entitlementout "stepone/internal/modules/entitlement/port/out"
	"stepone/internal/platform/id"
	"stepone/internal/platform/logging"
)

const accountPrefix = "apple_user_"

type purchaseRecord struct {
	Paid        bool      `json:"paid"`
	Tier        string    `json:"tier,omitempty"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// MockProvider stands in for the store and identity backends. Purchases are
// kept in a JSON file so they survive a local progress reset.
type MockProvider struct {
	path          string
	purchaseDelay time.Duration
	signInDelay   time.Duration
	logger        *zap.Logger

	mu sync.Mutex
}

func NewMockProvider(path string, purchaseDelay, signInDelay time.Duration, logger *zap.Logger) entitlementout.Provider {
	return &MockProvider{
		path:          path,
		purchaseDelay: purchaseDelay,
		signInDelay:   signInDelay,
		logger:        logging.OrNop(logger).Named("mock-provider"),
	}
}

func (p *MockProvider) Purchase(ctx context.Context, tier domain.Tier) error {
	if err := wait(ctx, p.purchaseDelay); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, err := p.read()
	if err != nil {
		return err
	}
	// Lifetime is never replaced by a subscription.
	if rec.Paid && domain.Tier(rec.Tier) == domain.TierLifetime {
		tier = domain.TierLifetime
	}
	rec = purchaseRecord{Paid: true, Tier: string(tier), PurchasedAt: time.Now().UTC()}
	if err := p.write(rec); err != nil {
		return err
	}
	p.logger.Info("purchase recorded", zap.String("tier", string(tier)))
	return nil
}

func (p *MockProvider) Restore(ctx context.Context) (domain.Tier, bool, error) {
	if err := wait(ctx, p.purchaseDelay); err != nil {
		return domain.TierNone, false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, err := p.read()
	if err != nil {
		return domain.TierNone, false, err
	}
	if !rec.Paid {
		return domain.TierNone, false, nil
	}
	tier, err := domain.ParseTier(rec.Tier)
	if err != nil {
		tier = domain.TierSubscription
	}
	return tier, true, nil
}

func (p *MockProvider) SignIn(ctx context.Context) (string, error) {
	if err := wait(ctx, p.signInDelay); err != nil {
		return "", err
	}
	accountID := accountPrefix + id.Short(9)
	p.logger.Info("signed in", zap.String("account_id", accountID))
	return accountID, nil
}

func (p *MockProvider) read() (purchaseRecord, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return purchaseRecord{}, nil
		}
		return purchaseRecord{}, fmt.Errorf("read entitlements: %w", err)
	}
	rec := purchaseRecord{}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return purchaseRecord{}, fmt.Errorf("decode entitlements: %w", err)
	}
	return rec, nil
}

func (p *MockProvider) write(rec purchaseRecord) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create entitlements dir: %w", err)
	}
	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entitlements: %w", err)
	}
	if err := os.WriteFile(p.path, payload, 0o644); err != nil {
		return fmt.Errorf("write entitlements: %w", err)
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
