package passport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	progressdto "stepone/internal/modules/progress/dto"
)

type stampStub struct {
	stamps []progressdto.StampOutput
	err    error
}

func (s stampStub) ListStamps(context.Context) ([]progressdto.StampOutput, error) {
	return s.stamps, s.err
}

func TestPassportRendersStampsAndStreak(t *testing.T) {
	t.Parallel()
	port := stampStub{stamps: []progressdto.StampOutput{
		{ID: "s1", MissionTitle: "Hydrate Foundation", EarnedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), BadgeIcon: "Zap", BadgeColor: "#ffb3ba"},
	}}
	m := New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m.SetStreak(4)
	m, _ = m.Update(m.Reload()())

	out := m.View()
	if !strings.Contains(out, "Hydrate Foundation") || !strings.Contains(out, "4 day streak") {
		t.Fatalf("unexpected view:\n%s", out)
	}
}

func TestRepeatedMissionShowsCount(t *testing.T) {
	t.Parallel()
	earned := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	once := stampItem{stamp: progressdto.StampOutput{MissionTitle: "Day 1", EarnedAt: earned, BadgeIcon: "Map", MissionCount: 1}}
	thrice := stampItem{stamp: progressdto.StampOutput{MissionTitle: "Hydrate", EarnedAt: earned, BadgeIcon: "Zap", MissionCount: 3}}
	if strings.Contains(once.Description(), "x1") {
		t.Fatalf("single stamp must not show a count: %q", once.Description())
	}
	if !strings.HasSuffix(thrice.Description(), "x3") {
		t.Fatalf("expected count suffix, got %q", thrice.Description())
	}
}

func TestPassportEmptyAndError(t *testing.T) {
	t.Parallel()
	m := New(stampStub{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m, _ = m.Update(m.Reload()())
	if !strings.Contains(m.View(), "No stamps yet") {
		t.Fatalf("expected empty state")
	}

	broken := New(stampStub{err: errors.New("disk gone")})
	broken, _ = broken.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	broken, _ = broken.Update(broken.Reload()())
	if !strings.Contains(broken.View(), "disk gone") {
		t.Fatalf("expected the load error in view")
	}
}
