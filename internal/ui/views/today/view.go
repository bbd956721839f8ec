package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "stepone/internal/modules/catalog/dto"
	progressdto "stepone/internal/modules/progress/dto"
	sessiondto "stepone/internal/modules/session/dto"
	"stepone/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// StartMsg asks the app to start the selected mission.
type StartMsg struct {
	MissionID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type section int

const (
	sectionFoundation section = iota
	sectionJourney
)

type missionState int

const (
	stateOpen missionState = iota
	stateDone
	stateNext
	stateLocked
)

type missionItem struct {
	mission catalogdto.MissionOutput
	state   missionState
	gated   bool
}

func (i missionItem) Title() string {
	marker := "  "
	switch i.state {
	case stateDone:
		marker = "✓ "
	case stateNext:
		marker = "→ "
	case stateLocked:
		marker = "· "
	}
	title := marker + i.mission.Title
	if i.gated {
		title += " " + theme.Pro.Render("★ Pro")
	}
	return title
}

func (i missionItem) Description() string {
	return fmt.Sprintf("%s  level %d", formatClock(i.mission.DurationSeconds), i.mission.Level)
}

func (i missionItem) FilterValue() string { return i.mission.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	list     list.Model
	detail   viewport.Model
	plan     catalogdto.PlanOutput
	progress progressdto.ProgressOutput
	section  section
	session  sessiondto.SessionOutput
	running  bool
	width    int
	height   int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Pink).BorderForeground(theme.Pink)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Orange).BorderForeground(theme.Pink)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Foundation"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(1)

	return Model{list: l, detail: vp}
}

// SetData replaces the plan and progress the list is rendered from.
func (m *Model) SetData(plan catalogdto.PlanOutput, progress progressdto.ProgressOutput) tea.Cmd {
	m.plan = plan
	m.progress = progress
	return m.rebuild()
}

func (m *Model) SetSession(s sessiondto.SessionOutput, running bool) {
	m.session = s
	m.running = running
	m.refreshDetail()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "f", "left":
			if m.section != sectionFoundation {
				m.section = sectionFoundation
				return m, m.rebuild()
			}
		case "j", "right":
			if m.section != sectionJourney {
				m.section = sectionJourney
				cmd := m.rebuild()
				m.selectCursor()
				return m, cmd
			}
		case "enter", "s":
			if item, ok := m.list.SelectedItem().(missionItem); ok && !m.running {
				id := item.mission.ID
				return m, func() tea.Msg { return StartMsg{MissionID: id} }
			}
		}
	}

	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if m.list.Index() != prev {
		m.refreshDetail()
	}
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	pane := theme.Pane
	if m.running {
		pane = theme.PaneActive
	}
	detailPane := pane.Width(max(detailW-2, 1)).Height(max(m.height-2, 1)).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the highlighted mission, if any.
func (m Model) Selected() (catalogdto.MissionOutput, bool) {
	item, ok := m.list.SelectedItem().(missionItem)
	return item.mission, ok
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) rebuild() tea.Cmd {
	isPro := m.progress.Paid == "pro"
	var items []list.Item
	switch m.section {
	case sectionFoundation:
		m.list.Title = fmt.Sprintf("Foundation · %s", m.plan.Ambition)
		for _, mission := range m.plan.Foundation {
			state := stateOpen
			for _, done := range m.progress.CompletedFoundationIDs {
				if done == mission.ID {
					state = stateDone
				}
			}
			items = append(items, missionItem{mission: mission, state: state})
		}
	case sectionJourney:
		m.list.Title = fmt.Sprintf("Journey · day %d of %d", min(m.progress.CompletedJourneyIndex+1, len(m.plan.Journey)), len(m.plan.Journey))
		for _, mission := range m.plan.Journey {
			state := stateLocked
			switch {
			case mission.Position < m.progress.CompletedJourneyIndex:
				state = stateDone
			case mission.Position == m.progress.CompletedJourneyIndex:
				state = stateNext
			}
			items = append(items, missionItem{mission: mission, state: state, gated: mission.IsPremium && !isPro})
		}
	}
	cmd := m.list.SetItems(items)
	m.refreshDetail()
	return cmd
}

func (m *Model) selectCursor() {
	if m.progress.CompletedJourneyIndex < len(m.list.Items()) {
		m.list.Select(m.progress.CompletedJourneyIndex)
		m.refreshDetail()
	}
}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(detailW-4, 1)
	m.detail.Height = max(m.height-4, 1)
	m.refreshDetail()
}

func (m *Model) refreshDetail() {
	m.detail.SetContent(m.renderDetail())
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render(fmt.Sprintf("🔥 %d day streak", m.progress.StreakCount)) + "\n\n")

	if m.running || m.session.Status == "cancelled" {
		sb.WriteString(m.renderTimer() + "\n\n")
	}

	item, ok := m.list.SelectedItem().(missionItem)
	if !ok {
		sb.WriteString(theme.Muted.Render("Nothing here yet."))
		return sb.String()
	}
	mission := item.mission
	sb.WriteString(theme.Title.Render(mission.Title) + "\n\n")
	sb.WriteString(mission.Description + "\n\n")
	sb.WriteString(theme.Muted.Render("duration: ") + formatClock(mission.DurationSeconds) + "\n")
	sb.WriteString(theme.Muted.Render("level:    ") + fmt.Sprint(mission.Level) + "\n")
	switch item.state {
	case stateDone:
		sb.WriteString("\n" + theme.Good.Render("Done. Come back tomorrow for more."))
	case stateLocked:
		sb.WriteString("\n" + theme.Muted.Render("Finish the earlier days first."))
	}
	if item.gated {
		sb.WriteString("\n" + theme.Pro.Render("★ Pro · part of the full 30-day path."))
	}
	sb.WriteString("\n\n" + theme.Muted.Render("enter: start  f/j: foundation/journey  c: cancel"))
	return sb.String()
}

func (m Model) renderTimer() string {
	s := m.session
	if s.Status == "cancelled" {
		return theme.Muted.Render("Session reset. Stay on this screen to finish a mission.")
	}
	label := s.Title
	if s.Intent != "" {
		label = s.Intent
	}
	width := max(m.detail.Width-2, 10)
	done := 0
	if s.TotalSeconds > 0 {
		done = width * (s.TotalSeconds - s.RemainingSeconds) / s.TotalSeconds
	}
	done = min(max(done, 0), width)
	bar := theme.Hot.Render(strings.Repeat("█", done)) + theme.Muted.Render(strings.Repeat("░", width-done))
	return theme.Title.Render(label) + "\n" +
		lipgloss.NewStyle().Bold(true).Render(formatClock(s.RemainingSeconds)) + "\n" + bar
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
