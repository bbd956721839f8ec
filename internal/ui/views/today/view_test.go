package today

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	catalogdto "stepone/internal/modules/catalog/dto"
	progressdto "stepone/internal/modules/progress/dto"
	sessiondto "stepone/internal/modules/session/dto"
)

func samplePlan() catalogdto.PlanOutput {
	return catalogdto.PlanOutput{
		Ambition: "Travel",
		Foundation: []catalogdto.MissionOutput{
			{ID: "tf1", Title: "Hydrate Foundation", Kind: "foundation", DurationSeconds: 30, Level: 1},
			{ID: "tf2", Title: "Gear Check", Kind: "foundation", DurationSeconds: 60, Level: 1, Position: 1},
		},
		Journey: []catalogdto.MissionOutput{
			{ID: "travel-1", Title: "Day 1: Passport Research", Kind: "journey", DurationSeconds: 120, Level: 1},
			{ID: "travel-2", Title: "Day 2: Flight Alert Setup", Kind: "journey", DurationSeconds: 150, Level: 1, Position: 1, IsPremium: true},
		},
	}
}

func TestTodayEmitsStartForSelection(t *testing.T) {
	t.Parallel()
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.SetData(samplePlan(), progressdto.ProgressOutput{Ambition: "Travel", Paid: "free"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a start command")
	}
	msg, ok := cmd().(StartMsg)
	if !ok || msg.MissionID != "tf1" {
		t.Fatalf("expected StartMsg for tf1, got %#v", msg)
	}
}

func TestTodayJourneySelectsCursorAndMarksPro(t *testing.T) {
	t.Parallel()
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.SetData(samplePlan(), progressdto.ProgressOutput{Ambition: "Travel", Paid: "free", CompletedJourneyIndex: 1})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	selected, ok := m.Selected()
	if !ok || selected.ID != "travel-2" {
		t.Fatalf("expected the cursor mission selected, got %+v", selected)
	}
	if !strings.Contains(m.View(), "Pro") {
		t.Fatalf("premium mission must be marked")
	}
}

func TestTodayTimerRendering(t *testing.T) {
	t.Parallel()
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.SetData(samplePlan(), progressdto.ProgressOutput{Ambition: "Travel"})
	m.SetSession(sessiondto.SessionOutput{Title: "Hydrate Foundation", Status: "running", TotalSeconds: 90, RemainingSeconds: 75}, true)
	if !strings.Contains(m.View(), "1:15") {
		t.Fatalf("expected remaining time in view")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		if _, isStart := cmd().(StartMsg); isStart {
			t.Fatalf("must not start while a session runs")
		}
	}
}
