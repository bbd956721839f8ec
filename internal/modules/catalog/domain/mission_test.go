package domain

import (
	"strings"
	"testing"
)

func travelDefinition() Definition {
	return Definition{
		Ambition:           AmbitionTravel,
		JourneyPrefix:      "travel",
		JourneyIcon:        "Globe",
		JourneyDescription: "Step {day} toward your solo travel dream.",
		Topics:             []string{"A", "B", "C", "D", "E"},
		Foundation: []Mission{
			{ID: "tf1", Title: "Hydrate", DurationSeconds: 30},
		},
	}
}

func TestBuildPlanJourneyShape(t *testing.T) {
	t.Parallel()
	plan, err := BuildPlan(travelDefinition(), DefaultFreeJourneyPrefix)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if len(plan.Journey) != JourneyLength {
		t.Fatalf("expected %d journey missions, got %d", JourneyLength, len(plan.Journey))
	}
	first, eighth, last := plan.Journey[0], plan.Journey[7], plan.Journey[29]
	if first.ID != "travel-1" || first.Title != "Day 1: A" || first.DurationSeconds != 120 || first.Level != 1 || first.IsPremium {
		t.Fatalf("unexpected first journey mission %+v", first)
	}
	if plan.Journey[6].IsPremium {
		t.Fatalf("seventh journey mission must be free")
	}
	if !eighth.IsPremium || eighth.Level != 2 || eighth.Title != "Day 8: C" {
		t.Fatalf("unexpected eighth journey mission %+v", eighth)
	}
	if last.DurationSeconds != 120+29*30 || last.Level != 5 || last.Kind != KindJourney {
		t.Fatalf("unexpected last journey mission %+v", last)
	}
	if !strings.Contains(plan.Journey[2].Description, "Step 3 ") {
		t.Fatalf("day placeholder not expanded: %q", plan.Journey[2].Description)
	}
	f := plan.Foundation[0]
	if f.Kind != KindFoundation || f.IsPremium || f.Icon != FoundationIcon || f.Level != 1 || f.Ambition != AmbitionTravel {
		t.Fatalf("unexpected foundation mission %+v", f)
	}
}

func TestBuildPlanCustomFreePrefix(t *testing.T) {
	t.Parallel()
	plan, err := BuildPlan(travelDefinition(), 0)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	for _, m := range plan.Journey {
		if !m.IsPremium {
			t.Fatalf("expected every journey mission premium with prefix 0, got %s", m.ID)
		}
	}
}

func TestBuildPlanRejectsInvalidDefinitions(t *testing.T) {
	t.Parallel()
	def := travelDefinition()
	def.Topics = nil
	if _, err := BuildPlan(def, 7); err == nil {
		t.Fatalf("expected error without topics")
	}
	def = travelDefinition()
	def.Foundation[0].DurationSeconds = 0
	if _, err := BuildPlan(def, 7); err == nil {
		t.Fatalf("expected error for zero duration")
	}
	def = travelDefinition()
	def.Foundation[0].IsPremium = true
	if _, err := BuildPlan(def, 7); err == nil {
		t.Fatalf("expected error for premium foundation mission")
	}
	def = travelDefinition()
	def.Ambition = "Sailing"
	if _, err := BuildPlan(def, 7); err == nil {
		t.Fatalf("expected error for unknown ambition")
	}
}

func TestParseAmbitionAndFind(t *testing.T) {
	t.Parallel()
	a, err := ParseAmbition(" health ")
	if err != nil || a != AmbitionHealth {
		t.Fatalf("expected Health, got %q err=%v", a, err)
	}
	if _, err := ParseAmbition("sailing"); err == nil {
		t.Fatalf("expected error for unknown ambition")
	}
	plan, _ := BuildPlan(travelDefinition(), 7)
	if m, pos, ok := plan.Find("travel-4"); !ok || pos != 3 || m.Kind != KindJourney {
		t.Fatalf("expected travel-4 at position 3, got %+v pos=%d ok=%v", m, pos, ok)
	}
	if _, _, ok := plan.Find("biz-1"); ok {
		t.Fatalf("biz-1 must not be in the travel plan")
	}
}
