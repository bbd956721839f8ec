package usecase_test

import (
	"context"
	"errors"
	"testing"

	catalogout "stepone/internal/modules/catalog/adapter/out"
	"stepone/internal/modules/catalog/service"
	"stepone/internal/modules/catalog/usecase"
	apperrors "stepone/internal/platform/errors"
)

func TestEmbeddedCatalogServesEveryAmbition(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewCatalogService(catalogout.NewEmbeddedDefinitionSource(), 7))
	ctx := context.Background()

	ambitions := uc.ListAmbitions(ctx)
	if len(ambitions) != 4 {
		t.Fatalf("expected 4 ambitions, got %v", ambitions)
	}
	for _, a := range ambitions {
		plan, err := uc.MissionsFor(ctx, a)
		if err != nil {
			t.Fatalf("missions for %s: %v", a, err)
		}
		if len(plan.Foundation) != 2 || len(plan.Journey) != 30 {
			t.Fatalf("%s: unexpected plan sizes %d/%d", a, len(plan.Foundation), len(plan.Journey))
		}
		for _, m := range plan.Foundation {
			if m.IsPremium || m.Kind != "foundation" {
				t.Fatalf("%s: unexpected foundation mission %+v", a, m)
			}
		}
		if plan.Journey[6].IsPremium || !plan.Journey[7].IsPremium {
			t.Fatalf("%s: expected first 7 journey missions free", a)
		}
	}
}

func TestMissionsForIsDeterministic(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewCatalogService(catalogout.NewEmbeddedDefinitionSource(), 7))
	a, _ := uc.MissionsFor(context.Background(), "Business")
	b, _ := uc.MissionsFor(context.Background(), "business")
	if len(a.Journey) != len(b.Journey) || a.Journey[12] != b.Journey[12] || a.Foundation[1] != b.Foundation[1] {
		t.Fatalf("expected identical plans")
	}
}

func TestGetMissionAndErrors(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewCatalogService(catalogout.NewEmbeddedDefinitionSource(), 7))
	ctx := context.Background()

	m, err := uc.GetMission(ctx, "health-9")
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if m.Ambition != "Health" || m.Position != 8 || m.Icon != "Heart" || !m.IsPremium || m.Title != "Day 9: Mindful Eating" {
		t.Fatalf("unexpected mission %+v", m)
	}
	if f, err := uc.GetMission(ctx, "tf1"); err != nil || f.Title != "Hydrate Foundation" || f.DurationSeconds != 30 {
		t.Fatalf("unexpected foundation mission %+v err=%v", f, err)
	}
	if _, err := uc.GetMission(ctx, "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.MissionsFor(ctx, "Sailing"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCatalogRejectsBrokenDefinitions(t *testing.T) {
	t.Parallel()
	broken := catalogout.NewYAMLDefinitionSource([]byte("schema_version: 2\nambitions: []\n"))
	uc := usecase.NewInteractor(service.NewCatalogService(broken, 7))
	if _, err := uc.MissionsFor(context.Background(), "Travel"); err == nil {
		t.Fatalf("expected schema error")
	}
	missing := catalogout.NewYAMLDefinitionSource([]byte("schema_version: 1\nambitions: []\n"))
	uc = usecase.NewInteractor(service.NewCatalogService(missing, 7))
	if _, err := uc.GetMission(context.Background(), "tf1"); err == nil {
		t.Fatalf("expected missing ambition error")
	}
}
