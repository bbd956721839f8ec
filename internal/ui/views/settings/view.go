package settings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	entitlementdto "stepone/internal/modules/entitlement/dto"
	"stepone/internal/ui/theme"
)

type Action string

const (
	ActionSubscribe Action = "subscription"
	ActionLifetime  Action = "lifetime"
	ActionRestore   Action = "restore"
	ActionLink      Action = "link"
	ActionExport    Action = "export"
	ActionReset     Action = "reset"
)

// ActionMsg asks the app to run an account or data action.
type ActionMsg struct {
	Action Action
}

type Model struct {
	status     entitlementdto.StatusOutput
	ambition   string
	armedReset bool
	busy       bool
	width      int
	height     int
}

func New() Model { return Model{} }

func (m *Model) SetStatus(status entitlementdto.StatusOutput, ambition string) {
	m.status = status
	m.ambition = ambition
	m.busy = false
}

// SetBusy blocks further actions until the next SetStatus.
func (m *Model) SetBusy(busy bool) { m.busy = busy }

// ResetArmed reports whether the next x confirms a reset.
func (m Model) ResetArmed() bool { return m.armedReset }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		key := msg.String()
		if key != "x" {
			m.armedReset = false
		}
		switch key {
		case "1":
			if !m.status.IsPro {
				return m, emit(ActionSubscribe)
			}
		case "2":
			if m.status.Tier != "lifetime" {
				return m, emit(ActionLifetime)
			}
		case "r":
			return m, emit(ActionRestore)
		case "l":
			if m.status.Account != "member" {
				return m, emit(ActionLink)
			}
		case "e":
			return m, emit(ActionExport)
		case "x":
			if m.armedReset {
				m.armedReset = false
				return m, emit(ActionReset)
			}
			m.armedReset = true
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Account") + "\n\n")
	sb.WriteString(theme.Muted.Render("ambition: ") + m.ambition + "\n")
	if m.status.Account == "member" {
		sb.WriteString(theme.Muted.Render("account:  ") + theme.Good.Render("member "+m.status.AccountID) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("account:  ") + "guest\n")
	}
	if m.status.IsPro {
		sb.WriteString(theme.Muted.Render("plan:     ") + theme.Pro.Render("★ Pro "+m.status.Tier) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("plan:     ") + "free\n")
	}
	sb.WriteString("\n")

	if m.busy {
		sb.WriteString(theme.Muted.Render("Working…") + "\n")
	} else {
		if !m.status.IsPro {
			sb.WriteString("1  subscribe\n")
		}
		if m.status.Tier != "lifetime" {
			sb.WriteString("2  lifetime\n")
		}
		sb.WriteString("r  restore purchases\n")
		if m.status.Account != "member" {
			sb.WriteString("l  sign in to save your progress\n")
		}
		sb.WriteString("e  export passport to markdown\n")
		sb.WriteString("x  reset progress\n")
	}
	if m.armedReset {
		sb.WriteString("\n" + theme.Hot.Render("Press x again to erase streak, stamps and journey."))
	}
	return theme.Pane.Width(max(min(m.width-2, 64), 20)).Render(sb.String())
}

func emit(a Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}
