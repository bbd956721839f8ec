package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	catalogdto "stepone/internal/modules/catalog/dto"
	entitlementdto "stepone/internal/modules/entitlement/dto"
	progressdto "stepone/internal/modules/progress/dto"
	sessiondto "stepone/internal/modules/session/dto"
	apperrors "stepone/internal/platform/errors"
	"stepone/internal/ui/components"
	onboardingview "stepone/internal/ui/views/onboarding"
	todayview "stepone/internal/ui/views/today"
)

type fakeProgress struct {
	snap progressdto.ProgressOutput
}

func (f *fakeProgress) Snapshot(context.Context) (progressdto.ProgressOutput, error) {
	return f.snap, nil
}

func (f *fakeProgress) CompleteOnboarding(_ context.Context, in progressdto.OnboardInput) (progressdto.MutationOutput, error) {
	f.snap.Onboarded = true
	f.snap.Ambition = in.Ambition
	return progressdto.MutationOutput{Progress: f.snap, Effects: progressdto.EffectsOutput{PaywallOffer: true}}, nil
}

func (f *fakeProgress) Reset(context.Context) (progressdto.ProgressOutput, error) {
	f.snap = progressdto.ProgressOutput{}
	return f.snap, nil
}

func (f *fakeProgress) ListStamps(context.Context) ([]progressdto.StampOutput, error) {
	return nil, nil
}

func (f *fakeProgress) ExportPassport(context.Context) (progressdto.ExportOutput, error) {
	return progressdto.ExportOutput{IndexPath: "passport/index.md"}, nil
}

type fakeCatalog struct{}

func (fakeCatalog) ListAmbitions(context.Context) []string {
	return []string{"Travel", "Business", "Hobby", "Health"}
}

func (fakeCatalog) MissionsFor(_ context.Context, ambition string) (catalogdto.PlanOutput, error) {
	return catalogdto.PlanOutput{
		Ambition:   ambition,
		Foundation: []catalogdto.MissionOutput{{ID: "tf1", Title: "Hydrate Foundation", Kind: "foundation", DurationSeconds: 2}},
	}, nil
}

type fakeSession struct {
	current sessiondto.SessionOutput
}

func (f *fakeSession) Start(_ context.Context, missionID string) (sessiondto.SessionOutput, error) {
	f.current = sessiondto.SessionOutput{
		MissionID: missionID, Title: "Hydrate Foundation", Status: "running",
		TotalSeconds: 2, RemainingSeconds: 2, Attempt: f.current.Attempt + 1,
	}
	return f.current, nil
}

func (f *fakeSession) StartVision(context.Context, sessiondto.StartVisionInput) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{}, apperrors.ErrUpgradeRequired
}

func (f *fakeSession) Tick(_ context.Context, attempt uint64) (sessiondto.TickOutput, error) {
	if f.current.Status != "running" || attempt != f.current.Attempt {
		return sessiondto.TickOutput{Session: f.current, Stale: true}, nil
	}
	f.current.RemainingSeconds--
	out := sessiondto.TickOutput{Session: f.current}
	if f.current.RemainingSeconds == 0 {
		f.current.Status = "completed"
		out.Session = f.current
		out.Completed = true
		out.Recorded = &progressdto.MutationOutput{Progress: progressdto.ProgressOutput{StreakCount: 1}}
	}
	return out, nil
}

func (f *fakeSession) Cancel(_ context.Context, reason string) (sessiondto.SessionOutput, error) {
	if f.current.Status != "running" {
		return sessiondto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	f.current.Status = "cancelled"
	f.current.CancelReason = reason
	f.current.RemainingSeconds = f.current.TotalSeconds
	return f.current, nil
}

func (f *fakeSession) SwitchAmbition(context.Context, string) (progressdto.ProgressOutput, error) {
	if f.current.Status == "running" {
		return progressdto.ProgressOutput{}, apperrors.ErrActiveSessionExists
	}
	return progressdto.ProgressOutput{}, apperrors.ErrUpgradeRequired
}

type fakeEntitlement struct {
	linked bool
}

func (f *fakeEntitlement) Status(context.Context) (entitlementdto.StatusOutput, error) {
	if f.linked {
		return entitlementdto.StatusOutput{Account: "member", AccountID: "apple_user_abc", Paid: "free"}, nil
	}
	return entitlementdto.StatusOutput{Account: "guest", Paid: "free"}, nil
}

func (f *fakeEntitlement) Upgrade(_ context.Context, tier string) (entitlementdto.StatusOutput, error) {
	return entitlementdto.StatusOutput{Paid: "pro", Tier: tier, IsPro: true}, nil
}

func (f *fakeEntitlement) Restore(context.Context) (entitlementdto.RestoreOutput, error) {
	return entitlementdto.RestoreOutput{}, nil
}

func (f *fakeEntitlement) LinkAccount(context.Context) (entitlementdto.StatusOutput, error) {
	f.linked = true
	return f.Status(context.Background())
}

type fixture struct {
	progress    *fakeProgress
	session     *fakeSession
	entitlement *fakeEntitlement
	prompts     chan struct{}
}

func newFixture(onboarded bool) (Model, *fixture) {
	f := &fixture{
		progress:    &fakeProgress{snap: progressdto.ProgressOutput{Onboarded: onboarded, Ambition: "Travel", Account: "guest", Paid: "free"}},
		session:     &fakeSession{},
		entitlement: &fakeEntitlement{},
		prompts:     make(chan struct{}, 1),
	}
	m := NewModel(f.progress, fakeCatalog{}, f.session, f.entitlement, f.prompts)
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = step(m, m.loadSnapshotCmd()())
	return m, f
}

func step(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// run delivers msg and then the message produced by the returned command.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("expected a command for %T", msg)
	}
	return step(next.(Model), cmd())
}

func TestOnboardingShowsPaywall(t *testing.T) {
	m, f := newFixture(false)
	if !strings.Contains(m.View(), "one big ambition") {
		t.Fatalf("expected onboarding screen")
	}

	m = run(t, m, onboardingview.ChosenMsg{Ambition: "Travel"})
	if !f.progress.snap.Onboarded || m.overlay != overlayPaywall {
		t.Fatalf("expected onboarding recorded and paywall shown, overlay=%d", m.overlay)
	}
	if !strings.Contains(m.View(), "StepOne Pro") {
		t.Fatalf("expected paywall in view")
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.overlay != overlayNone {
		t.Fatalf("esc must dismiss the paywall")
	}
}

func TestTimerRunsToCompletion(t *testing.T) {
	m, _ := newFixture(true)

	m = run(t, m, todayview.StartMsg{MissionID: "tf1"})
	if !m.running || m.active.Attempt != 1 {
		t.Fatalf("expected running attempt 1, got %+v", m.active)
	}

	if _, cmd := m.Update(tickMsg{attempt: 7}); cmd != nil {
		t.Fatalf("ticks for another attempt must be dropped")
	}

	m = run(t, m, tickMsg{attempt: 1})
	if m.active.RemainingSeconds != 1 || !m.running {
		t.Fatalf("expected one second left, got %+v", m.active)
	}
	m = run(t, m, tickMsg{attempt: 1})
	if m.running {
		t.Fatalf("session must stop after completion")
	}
	if !strings.Contains(m.status, "stamp earned") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestBlurAbandonsRunningSession(t *testing.T) {
	m, f := newFixture(true)
	m = run(t, m, todayview.StartMsg{MissionID: "tf1"})

	m = run(t, m, tea.BlurMsg{})
	if m.running || f.session.current.CancelReason != "abandoned" {
		t.Fatalf("blur must abandon, got %+v", f.session.current)
	}
	if m.active.RemainingSeconds != m.active.TotalSeconds {
		t.Fatalf("timer must reset")
	}

	if _, cmd := m.Update(tea.BlurMsg{}); cmd != nil {
		t.Fatalf("blur without a session is a no-op")
	}
}

func TestVisionWithoutProOpensPaywall(t *testing.T) {
	m, _ := newFixture(true)
	m = run(t, m, components.PaletteSubmitMsg{Input: "vision 240 see the coast"})
	if m.overlay != overlayPaywall {
		t.Fatalf("expected paywall for a free vision session")
	}
}

func TestAmbitionSwitchRefusedDuringSession(t *testing.T) {
	m, _ := newFixture(true)
	m = run(t, m, todayview.StartMsg{MissionID: "tf1"})

	m = run(t, m, components.PaletteSubmitMsg{Input: "ambition business"})
	if !m.running || m.overlay != overlayNone {
		t.Fatalf("session must keep running, overlay=%d", m.overlay)
	}
	if !strings.Contains(m.status, "active session") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestConversionPromptLinksAccount(t *testing.T) {
	m, f := newFixture(true)
	f.prompts <- struct{}{}

	m = step(m, m.waitPromptCmd()())
	if m.overlay != overlayConversion {
		t.Fatalf("expected conversion overlay")
	}
	m = run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if !f.entitlement.linked || m.overlay != overlayNone {
		t.Fatalf("expected linked account and closed overlay")
	}
	if !strings.Contains(m.status, "apple_user_abc") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestPaletteParsesVisionDurations(t *testing.T) {
	in, err := parseVision("4m")
	if err != nil || in.Minutes != 4 {
		t.Fatalf("minutes: %+v %v", in, err)
	}
	in, err = parseVision("360")
	if err != nil || in.Seconds != 360 {
		t.Fatalf("seconds: %+v %v", in, err)
	}
	if _, err := parseVision("soon"); err == nil {
		t.Fatalf("expected error")
	}
}
