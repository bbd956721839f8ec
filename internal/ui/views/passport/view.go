package passport

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "stepone/internal/modules/progress/dto"
	"stepone/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type StampPort interface {
	ListStamps(ctx context.Context) ([]progressdto.StampOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StampsLoadedMsg struct {
	Stamps []progressdto.StampOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type stampItem struct {
	stamp progressdto.StampOutput
}

func (i stampItem) Title() string {
	return theme.Badge(i.stamp.BadgeColor) + " " + i.stamp.MissionTitle
}

func (i stampItem) Description() string {
	desc := fmt.Sprintf("%s  %s", i.stamp.EarnedAt.Local().Format("Mon Jan 2 15:04"), i.stamp.BadgeIcon)
	if i.stamp.MissionCount > 1 {
		desc += fmt.Sprintf("  x%d", i.stamp.MissionCount)
	}
	return desc
}

func (i stampItem) FilterValue() string { return i.stamp.MissionTitle }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    StampPort
	list    list.Model
	spinner spinner.Model
	loading bool
	failure string
	streak  int
	count   int
	width   int
	height  int
}

func New(port StampPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Gold).BorderForeground(theme.Gold)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Orange).BorderForeground(theme.Gold)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Passport"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Gold)

	return Model{port: port, list: l, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the stamp list again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return StampsLoadedMsg{}
		}
		stamps, err := m.port.ListStamps(context.Background())
		return StampsLoadedMsg{Stamps: stamps, Err: err}
	}
}

// SetStreak updates the header counter.
func (m *Model) SetStreak(streak int) { m.streak = streak }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, max(m.height-2, 1))

	case StampsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.failure = msg.Err.Error()
			return m, nil
		}
		m.failure = ""
		m.count = len(msg.Stamps)
		items := make([]list.Item, len(msg.Stamps))
		for i, s := range msg.Stamps {
			items[i] = stampItem{stamp: s}
		}
		m.list.Title = "Passport"
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Opening passport…")
	}
	header := theme.Hot.Render(fmt.Sprintf("🔥 %d day streak", m.streak)) +
		theme.Muted.Render(fmt.Sprintf("   %d stamps", m.count))
	if m.failure != "" {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", theme.Hot.Render("passport: "+m.failure))
	}
	if m.count == 0 {
		body := theme.Muted.Render("No stamps yet. Finish a mission to earn your first one.")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.list.View())
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
