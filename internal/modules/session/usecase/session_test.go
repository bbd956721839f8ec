package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	catalogout "stepone/internal/modules/catalog/adapter/out"
	catalogservice "stepone/internal/modules/catalog/service"
	catalogusecase "stepone/internal/modules/catalog/usecase"
	progressout "stepone/internal/modules/progress/adapter/out"
	progressdto "stepone/internal/modules/progress/dto"
	progressin "stepone/internal/modules/progress/port/in"
	progressservice "stepone/internal/modules/progress/service"
	progressusecase "stepone/internal/modules/progress/usecase"
	sessiondto "stepone/internal/modules/session/dto"
	sessionin "stepone/internal/modules/session/port/in"
	"stepone/internal/modules/session/service"
	"stepone/internal/modules/session/usecase"
	"stepone/internal/platform/clock"
	apperrors "stepone/internal/platform/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local) }

type fakeID struct{}

func (fakeID) New() string { return "stamp-1" }

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

type noopScheduler struct{}

func (noopScheduler) AfterFunc(time.Duration, func()) clock.Timer { return noopTimer{} }

type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }
func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

type manualTickers struct {
	ticker *manualTicker
}

func (f *manualTickers) NewTicker(time.Duration) clock.Ticker { return f.ticker }

type countingFeedback struct {
	mu                      sync.Mutex
	success, warning, light int
}

func (f *countingFeedback) Success() { f.mu.Lock(); f.success++; f.mu.Unlock() }
func (f *countingFeedback) Warning() { f.mu.Lock(); f.warning++; f.mu.Unlock() }
func (f *countingFeedback) Light()   { f.mu.Lock(); f.light++; f.mu.Unlock() }

type fixture struct {
	uc       sessionin.Usecase
	progress progressin.Usecase
	tickers  *manualTickers
	feedback *countingFeedback
}

func newFixture(t *testing.T, ambition string) fixture {
	t.Helper()
	catalog := catalogusecase.NewInteractor(catalogservice.NewCatalogService(catalogout.NewEmbeddedDefinitionSource(), 7))
	svc := progressservice.NewProgressService(fixedClock{}, progressout.NewFileProgressStore(filepath.Join(t.TempDir(), "progress.json")), nil)
	conv := progressservice.NewConversionScheduler(noopScheduler{}, nil, time.Second, nil)
	progress := progressusecase.NewInteractor(svc, conv, catalog, nil, fixedClock{}, nil)
	if ambition != "" {
		if _, err := progress.CompleteOnboarding(context.Background(), progressdto.OnboardInput{Ambition: ambition}); err != nil {
			t.Fatalf("onboard: %v", err)
		}
	}
	tickers := &manualTickers{ticker: &manualTicker{ch: make(chan time.Time)}}
	feedback := &countingFeedback{}
	stamps := service.NewStampServiceWithPicker(fakeID{}, func(int) int { return 2 })
	uc := usecase.NewInteractor(catalog, progress, stamps, feedback, tickers, nil)
	return fixture{uc: uc, progress: progress, tickers: tickers, feedback: feedback}
}

func tickUntilDone(t *testing.T, uc sessionin.Usecase, attempt uint64, n int) sessiondto.TickOutput {
	t.Helper()
	var out sessiondto.TickOutput
	for i := 0; i < n; i++ {
		var err error
		out, err = uc.Tick(context.Background(), attempt)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	return out
}

func TestFoundationSessionRecordsStamp(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Travel")
	ctx := context.Background()

	started, err := f.uc.Start(ctx, "tf1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != "running" || started.TotalSeconds != 30 || started.RemainingSeconds != 30 {
		t.Fatalf("unexpected session %+v", started)
	}
	out := tickUntilDone(t, f.uc, started.Attempt, 30)
	if !out.Completed || out.Recorded == nil {
		t.Fatalf("expected a recorded completion, got %+v", out)
	}
	if out.Recorded.Progress.StreakCount != 1 || out.Recorded.Progress.StampCount != 1 {
		t.Fatalf("unexpected progress %+v", out.Recorded.Progress)
	}
	stamps, _ := f.progress.ListStamps(ctx)
	if len(stamps) != 1 || stamps[0].BadgeIcon != "Zap" || stamps[0].BadgeColor != "#bae1ff" || stamps[0].ID != "stamp-1" {
		t.Fatalf("unexpected stamp %+v", stamps)
	}
	if _, err := f.uc.Start(ctx, "tf1"); !errors.Is(err, apperrors.ErrMissionDoneToday) {
		t.Fatalf("expected ErrMissionDoneToday, got %v", err)
	}
	if f.feedback.light != 1 || f.feedback.success != 1 {
		t.Fatalf("unexpected feedback %+v", f.feedback)
	}
}

func TestJourneyStampUsesMissionIcon(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Business")
	started, err := f.uc.Start(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	out := tickUntilDone(t, f.uc, started.Attempt, started.TotalSeconds)
	if out.Recorded == nil || out.Recorded.Progress.CompletedJourneyIndex != 1 {
		t.Fatalf("expected journey cursor to advance, got %+v", out)
	}
	stamps, _ := f.progress.ListStamps(context.Background())
	if stamps[0].BadgeIcon != "Briefcase" {
		t.Fatalf("expected journey icon, got %q", stamps[0].BadgeIcon)
	}
}

func TestStartChecksInOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if _, err := newFixture(t, "").uc.Start(ctx, "tf1"); !errors.Is(err, apperrors.ErrNotOnboarded) {
		t.Fatalf("expected ErrNotOnboarded, got %v", err)
	}

	f := newFixture(t, "Travel")
	cases := []struct {
		mission string
		want    error
	}{
		{"", apperrors.ErrInvalidInput},
		{"zf1", apperrors.ErrMissionNotInPlan},
		{"travel-8", apperrors.ErrUpgradeRequired},
		{"travel-2", apperrors.ErrMissionLocked},
	}
	for _, tc := range cases {
		if _, err := f.uc.Start(ctx, tc.mission); !errors.Is(err, tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.mission, tc.want, err)
		}
	}
	if _, err := f.uc.Active(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("rejected starts must not change timer state, got %v", err)
	}

	if _, err := f.uc.Start(ctx, "tf2"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.uc.Start(ctx, "tf1"); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}
}

func TestAmbitionSwitchWaitsForRunningSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Travel")
	ctx := context.Background()
	if _, err := f.progress.GrantEntitlement(ctx, "lifetime"); err != nil {
		t.Fatalf("grant: %v", err)
	}

	started, err := f.uc.Start(ctx, "tf1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.uc.SwitchAmbition(ctx, "Business"); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}
	out := tickUntilDone(t, f.uc, started.Attempt, started.TotalSeconds)
	if out.Recorded == nil || out.Recorded.Progress.StampCount != 1 || out.Recorded.Progress.Ambition != "Travel" {
		t.Fatalf("expected the stamp recorded against Travel, got %+v", out)
	}

	switched, err := f.uc.SwitchAmbition(ctx, "Business")
	if err != nil {
		t.Fatalf("switch after completion: %v", err)
	}
	if switched.Ambition != "Business" {
		t.Fatalf("unexpected ambition %q", switched.Ambition)
	}
}

func TestVisionRequiresProAndIntent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Hobby")
	ctx := context.Background()
	input := sessiondto.StartVisionInput{Intent: "Finish a painting", Seconds: 120}
	if _, err := f.uc.StartVision(ctx, input); !errors.Is(err, apperrors.ErrUpgradeRequired) {
		t.Fatalf("expected ErrUpgradeRequired, got %v", err)
	}
	if _, err := f.progress.GrantEntitlement(ctx, "subscription"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := f.uc.StartVision(ctx, sessiondto.StartVisionInput{Intent: "  ", Seconds: 120}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty intent, got %v", err)
	}
	started, err := f.uc.StartVision(ctx, sessiondto.StartVisionInput{Intent: "Finish a painting", Minutes: 1})
	if err != nil {
		t.Fatalf("start vision: %v", err)
	}
	out := tickUntilDone(t, f.uc, started.Attempt, 60)
	if out.Recorded == nil || out.Recorded.Progress.CompletedJourneyIndex != 0 || out.Recorded.Progress.StampCount != 1 {
		t.Fatalf("vision must only add a stamp, got %+v", out.Recorded)
	}
}

func TestCancelResetsAndIgnoresStaleTicks(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Health")
	ctx := context.Background()
	started, _ := f.uc.Start(ctx, "zf1")
	if _, err := f.uc.Tick(ctx, started.Attempt); err != nil {
		t.Fatalf("tick: %v", err)
	}
	cancelled, err := f.uc.Cancel(ctx, "abandoned")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != "cancelled" || cancelled.RemainingSeconds != cancelled.TotalSeconds || cancelled.CancelReason != "abandoned" {
		t.Fatalf("unexpected cancelled session %+v", cancelled)
	}
	stale, err := f.uc.Tick(ctx, started.Attempt)
	if err != nil || !stale.Stale {
		t.Fatalf("expected stale tick, got %+v err=%v", stale, err)
	}
	if _, err := f.uc.Cancel(ctx, "cancelled"); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	snap, _ := f.progress.Snapshot(ctx)
	if snap.StampCount != 0 {
		t.Fatalf("cancelled sessions must not record stamps")
	}
}

func TestRunCompletesOnTicks(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Travel")
	ctx := context.Background()
	started, err := f.uc.Start(ctx, "tf1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan sessiondto.TickOutput, 1)
	errs := make(chan error, 1)
	seen := 0
	go func() {
		out, err := f.uc.Run(ctx, func(sessiondto.TickOutput) { seen++ })
		done <- out
		errs <- err
	}()
	for i := 0; i < started.TotalSeconds; i++ {
		f.tickers.ticker.ch <- time.Now()
	}
	out := <-done
	if err := <-errs; err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.Completed || seen != started.TotalSeconds {
		t.Fatalf("expected completion after %d ticks, saw %d: %+v", started.TotalSeconds, seen, out)
	}
	if !f.tickers.ticker.stopped {
		t.Fatalf("ticker must be stopped when run returns")
	}
}

func TestRunCancellationCause(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		cause      error
		wantErr    error
		wantReason string
	}{
		"interrupt": {cause: apperrors.ErrSessionCancelled, wantErr: apperrors.ErrSessionCancelled, wantReason: "cancelled"},
		"background": {cause: apperrors.ErrSessionAbandoned, wantErr: apperrors.ErrSessionAbandoned, wantReason: "abandoned"},
	}
	for name, tc := range cases {
		f := newFixture(t, "Travel")
		if _, err := f.uc.Start(context.Background(), "tf1"); err != nil {
			t.Fatalf("%s: start: %v", name, err)
		}
		ctx, cancel := context.WithCancelCause(context.Background())
		result := make(chan sessiondto.TickOutput, 1)
		errs := make(chan error, 1)
		go func() {
			out, err := f.uc.Run(ctx, nil)
			result <- out
			errs <- err
		}()
		f.tickers.ticker.ch <- time.Now()
		cancel(tc.cause)
		out := <-result
		if err := <-errs; !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", name, tc.wantErr, err)
		}
		if out.Session.Status != "cancelled" || out.Session.CancelReason != tc.wantReason {
			t.Fatalf("%s: unexpected session %+v", name, out.Session)
		}
		if out.Session.RemainingSeconds != out.Session.TotalSeconds {
			t.Fatalf("%s: cancel must restore the full duration", name)
		}
	}
}

func TestRunWithoutSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "Travel")
	if _, err := f.uc.Run(context.Background(), nil); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}
