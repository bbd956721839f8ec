package onboarding

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stepone/internal/ui/theme"
)

// ChosenMsg carries the picked ambition.
type ChosenMsg struct {
	Ambition string
}

var blurbs = map[string]string{
	"Travel":   "Plan the trip you keep postponing.",
	"Business": "Turn the side idea into a first sale.",
	"Hobby":    "Make room for the thing you love.",
	"Health":   "Build a body that keeps up with you.",
}

type ambitionItem string

func (i ambitionItem) Title() string       { return string(i) }
func (i ambitionItem) Description() string { return blurbs[string(i)] }
func (i ambitionItem) FilterValue() string { return string(i) }

type Model struct {
	list   list.Model
	width  int
	height int
}

func New(ambitions []string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Pink).BorderForeground(theme.Pink)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Orange).BorderForeground(theme.Pink)

	items := make([]list.Item, len(ambitions))
	for i, a := range ambitions {
		items[i] = ambitionItem(a)
	}
	l := list.New(items, delegate, 0, 0)
	l.Title = "What's your one big ambition?"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(min(m.width, 60), max(m.height-4, 1))
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if item, ok := m.list.SelectedItem().(ambitionItem); ok {
				return m, func() tea.Msg { return ChosenMsg{Ambition: string(item)} }
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	intro := theme.Hot.Render("StepOne") + theme.Muted.Render("  one small mission a day")
	body := lipgloss.JoinVertical(lipgloss.Left, intro, "", m.list.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
