package out

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	catalog "stepone/internal/modules/catalog/domain"
	entitlement "stepone/internal/modules/entitlement/domain"
	"stepone/internal/modules/progress/domain"
	progressout "stepone/internal/modules/progress/port/out"
	apperrors "stepone/internal/platform/errors"
)

func sampleProgress() domain.UserProgress {
	last := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	p := domain.Default()
	p.Onboarded = true
	p.Ambition = catalog.AmbitionTravel
	p.StreakCount = 2
	p.LastCompletion = &last
	p.CompletedFoundationIDs = []string{"tf1"}
	p.CompletedJourneyIndex = 1
	p.Stamps = []domain.Stamp{
		{ID: "s-2", MissionID: "tf1", EarnedAt: last, BadgeIcon: "Zap", BadgeColor: "#bae1ff"},
		{ID: "s-1", MissionID: "travel-1", EarnedAt: last.Add(-24 * time.Hour), BadgeIcon: "Globe", BadgeColor: "#ffb3ba"},
	}
	p.Entitlement = entitlement.Entitlement{Account: entitlement.AccountMember, Paid: entitlement.PaidPro, Tier: entitlement.TierLifetime}
	p.AccountID = "apple_user_abc123def"
	return p
}

func TestStoresRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sqliteStore, err := NewSQLiteProgressStore(filepath.Join(dir, "stepone.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	stores := map[string]progressout.Store{
		"json":   NewFileProgressStore(filepath.Join(dir, "progress.json")),
		"sqlite": sqliteStore,
	}
	for name, store := range stores {
		if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNoProgress) {
			t.Fatalf("%s: expected ErrNoProgress before first save, got %v", name, err)
		}
		want := sampleProgress()
		if err := store.Save(context.Background(), want); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		got, err := store.Load(context.Background())
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: round trip mismatch (-want +got):\n%s", name, diff)
		}
		if err := store.Clear(context.Background()); err != nil {
			t.Fatalf("%s: clear: %v", name, err)
		}
		if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNoProgress) {
			t.Fatalf("%s: expected ErrNoProgress after clear, got %v", name, err)
		}
	}
}

func TestSQLiteStampProjectionFollowsSaves(t *testing.T) {
	t.Parallel()
	store, err := NewSQLiteProgressStore(filepath.Join(t.TempDir(), "stepone.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	p := sampleProgress()
	if err := store.Save(context.Background(), p); err != nil {
		t.Fatalf("save: %v", err)
	}
	p.Stamps = append([]domain.Stamp{{ID: "s-3", MissionID: "tf1", EarnedAt: time.Now(), BadgeIcon: "Zap", BadgeColor: "#baffc9"}}, p.Stamps...)
	if err := store.Save(context.Background(), p); err != nil {
		t.Fatalf("second save: %v", err)
	}
	counts, err := store.CountStampsByMission(context.Background())
	if err != nil {
		t.Fatalf("count stamps: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"tf1": 2, "travel-1": 1}, counts); diff != "" {
		t.Fatalf("unexpected projection (-want +got):\n%s", diff)
	}
}

func TestFileStoreMalformedInputs(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"garbage":        "{not json",
		"future schema":  `{"schema_version": 2, "progress": {}}`,
		"invalid record": `{"schema_version": 1, "progress": {"onboarded": true, "ambition": "Space", "account": "guest", "paid": "free"}}`,
		"negative index": `{"schema_version": 1, "progress": {"completed_journey_index": -1, "account": "guest", "paid": "free"}}`,
	}
	for name, raw := range cases {
		path := filepath.Join(t.TempDir(), "progress.json")
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		_, err := NewFileProgressStore(path).Load(context.Background())
		if !errors.Is(err, apperrors.ErrMalformedProgress) {
			t.Fatalf("%s: expected ErrMalformedProgress, got %v", name, err)
		}
	}
}

func TestFileStoreWritesVersionedEnvelopeWithoutTempLeftovers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "progress.json")
	if err := NewFileProgressStore(path).Save(context.Background(), domain.Default()); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `"schema_version": 1`) {
		t.Fatalf("expected versioned envelope, got %s", raw)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only progress.json, got %d entries", len(entries))
	}
}

func TestNewStoreByEngineRejectsUnknownEngine(t *testing.T) {
	t.Parallel()
	cfgDir := t.TempDir()
	_, closeFn, err := NewStoreByEngine(testConfig(cfgDir, "postgres"))
	if err == nil || closeFn != nil {
		t.Fatalf("expected unsupported engine error")
	}
	store, closeFn, err := NewStoreByEngine(testConfig(cfgDir, "sqlite"))
	if err != nil {
		t.Fatalf("sqlite engine: %v", err)
	}
	defer closeFn()
	if _, ok := store.(*SQLiteProgressStore); !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
}
