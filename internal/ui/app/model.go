package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "stepone/internal/modules/catalog/dto"
	entitlementdto "stepone/internal/modules/entitlement/dto"
	progressdto "stepone/internal/modules/progress/dto"
	sessiondto "stepone/internal/modules/session/dto"
	apperrors "stepone/internal/platform/errors"
	"stepone/internal/ui/components"
	"stepone/internal/ui/theme"
	onboardingview "stepone/internal/ui/views/onboarding"
	passportview "stepone/internal/ui/views/passport"
	settingsview "stepone/internal/ui/views/settings"
	todayview "stepone/internal/ui/views/today"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type progressPort interface {
	Snapshot(ctx context.Context) (progressdto.ProgressOutput, error)
	CompleteOnboarding(ctx context.Context, input progressdto.OnboardInput) (progressdto.MutationOutput, error)
	Reset(ctx context.Context) (progressdto.ProgressOutput, error)
	ListStamps(ctx context.Context) ([]progressdto.StampOutput, error)
	ExportPassport(ctx context.Context) (progressdto.ExportOutput, error)
}

type catalogPort interface {
	ListAmbitions(ctx context.Context) []string
	MissionsFor(ctx context.Context, ambition string) (catalogdto.PlanOutput, error)
}

type sessionPort interface {
	Start(ctx context.Context, missionID string) (sessiondto.SessionOutput, error)
	StartVision(ctx context.Context, input sessiondto.StartVisionInput) (sessiondto.SessionOutput, error)
	Tick(ctx context.Context, attempt uint64) (sessiondto.TickOutput, error)
	Cancel(ctx context.Context, reason string) (sessiondto.SessionOutput, error)
	SwitchAmbition(ctx context.Context, ambition string) (progressdto.ProgressOutput, error)
}

type entitlementPort interface {
	Status(ctx context.Context) (entitlementdto.StatusOutput, error)
	Upgrade(ctx context.Context, tier string) (entitlementdto.StatusOutput, error)
	Restore(ctx context.Context) (entitlementdto.RestoreOutput, error)
	LinkAccount(ctx context.Context) (entitlementdto.StatusOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabPassport
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{"Today", "Passport", "Settings"}

type overlayID int

const (
	overlayNone overlayID = iota
	overlayPaywall
	overlayConversion
)

// ─── async messages ───────────────────────────────────────────────────────────

type snapshotMsg struct {
	progress progressdto.ProgressOutput
	plan     catalogdto.PlanOutput
	status   entitlementdto.StatusOutput
	err      error
}

type onboardedMsg struct {
	out progressdto.MutationOutput
	err error
}

type sessionStartedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type tickMsg struct{ attempt uint64 }

type tickedMsg struct {
	attempt uint64
	out     sessiondto.TickOutput
	err     error
}

type sessionCancelledMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type accountMsg struct {
	note string
	err  error
}

type exportedMsg struct {
	out progressdto.ExportOutput
	err error
}

type conversionPromptMsg struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Cancel  key.Binding
	Vision  key.Binding
	Section key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "start mission")),
		Cancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel session")),
		Vision:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vision session")),
		Section: key.NewBinding(key.WithKeys("f", "j"), key.WithHelp("f/j", "foundation/journey")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start, k.Section},
		{k.Cancel, k.Vision},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the running timer,
// the paywall and conversion overlays, and the command palette. Rules live
// behind the ports; rendering is delegated to sub-views.
type Model struct {
	progress    progressPort
	catalog     catalogPort
	session     sessionPort
	entitlement entitlementPort
	prompts     <-chan struct{}

	onboardView onboardingview.Model
	todayView   todayview.Model
	stampView   passportview.Model
	settingView settingsview.Model

	snapshot  progressdto.ProgressOutput
	loaded    bool
	active    sessiondto.SessionOutput
	running   bool
	activeTab tabID
	overlay   overlayID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel builds the root model. prompts may be nil when no conversion
// prompter is wired.
func NewModel(
	progress progressPort,
	catalog catalogPort,
	session sessionPort,
	entitlement entitlementPort,
	prompts <-chan struct{},
) Model {
	return Model{
		progress:    progress,
		catalog:     catalog,
		session:     session,
		entitlement: entitlement,
		prompts:     prompts,
		onboardView: onboardingview.New(catalog.ListAmbitions(context.Background())),
		todayView:   todayview.New(),
		stampView:   passportview.New(stampPortBridge{p: progress}),
		settingView: settingsview.New(),
		activeTab:   tabToday,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSnapshotCmd(),
		m.stampView.Init(),
		m.waitPromptCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tea.BlurMsg:
		// Leaving the terminal counts as walking away from the mission.
		if m.running {
			return m, m.cancelCmd("abandoned")
		}
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.status = "load: " + msg.err.Error()
			return m, nil
		}
		m.loaded = true
		m.snapshot = msg.progress
		m.stampView.SetStreak(msg.progress.StreakCount)
		m.settingView.SetStatus(msg.status, msg.progress.Ambition)
		return m, tea.Batch(m.todayView.SetData(msg.plan, msg.progress), m.stampView.Reload())

	case onboardedMsg:
		if msg.err != nil {
			m.status = "onboarding: " + msg.err.Error()
			return m, nil
		}
		m.status = "welcome aboard: " + msg.out.Progress.Ambition
		if msg.out.Effects.PaywallOffer {
			m.overlay = overlayPaywall
		}
		return m, m.loadSnapshotCmd()

	case sessionStartedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrUpgradeRequired) {
				m.overlay = overlayPaywall
			}
			m.status = "start: " + msg.err.Error()
			return m, nil
		}
		m.active = msg.session
		m.running = true
		m.activeTab = tabToday
		m.todayView.SetSession(m.active, true)
		m.status = "focus: " + m.sessionLabel()
		return m, tickCmd(msg.session.Attempt)

	case tickMsg:
		if !m.running || msg.attempt != m.active.Attempt {
			return m, nil
		}
		return m, m.tickSessionCmd(msg.attempt)

	case tickedMsg:
		if msg.err != nil {
			m.running = false
			m.todayView.SetSession(msg.out.Session, false)
			m.status = "session: " + msg.err.Error()
			return m, m.loadSnapshotCmd()
		}
		if msg.attempt != m.active.Attempt {
			return m, nil
		}
		m.active = msg.out.Session
		if msg.out.Stale {
			// Cancelled elsewhere, for example by a reset.
			m.running = false
			m.todayView.SetSession(m.active, false)
			return m, nil
		}
		if msg.out.Completed {
			m.running = false
			m.todayView.SetSession(m.active, false)
			m.status = "stamp earned: " + m.sessionLabel()
			if msg.out.Recorded != nil {
				m.status += fmt.Sprintf("  🔥 %d", msg.out.Recorded.Progress.StreakCount)
			}
			return m, m.loadSnapshotCmd()
		}
		m.todayView.SetSession(m.active, true)
		return m, tickCmd(m.active.Attempt)

	case sessionCancelledMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "cancel: " + msg.err.Error()
			}
			m.running = false
			return m, nil
		}
		m.running = false
		m.active = msg.session
		m.todayView.SetSession(m.active, false)
		m.status = "session " + msg.session.CancelReason + ", timer reset"
		return m, nil

	case accountMsg:
		switch {
		case errors.Is(msg.err, apperrors.ErrUpgradeRequired):
			m.overlay = overlayPaywall
			m.status = msg.err.Error()
		case msg.err != nil:
			m.status = "account: " + msg.err.Error()
		default:
			m.status = msg.note
			m.overlay = overlayNone
		}
		return m, m.loadSnapshotCmd()

	case exportedMsg:
		if msg.err != nil {
			m.status = "export: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("passport exported: %d written, %d kept  %s", msg.out.Written, msg.out.Skipped, msg.out.IndexPath)
		}
		return m, nil

	case conversionPromptMsg:
		if m.overlay == overlayNone && m.snapshot.Account != "member" {
			m.overlay = overlayConversion
		}
		return m, m.waitPromptCmd()

	// The passport loads in the background whichever tab is showing.
	case passportview.StampsLoadedMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.stampView, cmd = m.stampView.Update(msg)
		return m, cmd

	case onboardingview.ChosenMsg:
		return m, m.onboardCmd(msg.Ambition)

	case todayview.StartMsg:
		return m, m.startCmd(msg.MissionID)

	case settingsview.ActionMsg:
		return m.runAction(msg.Action)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.overlay != overlayNone {
			return m.updateOverlay(msg)
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.loaded && !m.snapshot.Onboarded {
			if msg.String() == "q" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.onboardView, cmd = m.onboardView.Update(msg)
			return m, cmd
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "v":
			return m, m.palette.OpenWith("vision ")
		case "c":
			if m.running {
				return m, m.cancelCmd("cancelled")
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabPassport:
		m.stampView, tabCmd = m.stampView.Update(msg)
	case tabSettings:
		m.settingView, tabCmd = m.settingView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayPaywall:
		switch msg.String() {
		case "1":
			return m, m.purchaseCmd("subscription")
		case "2":
			return m, m.purchaseCmd("lifetime")
		case "r":
			return m, m.restoreCmd()
		case "esc", "q":
			m.overlay = overlayNone
		}
	case overlayConversion:
		switch msg.String() {
		case "l", "enter":
			m.overlay = overlayNone
			return m, m.linkCmd()
		case "esc", "q":
			m.overlay = overlayNone
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.overlay != overlayNone:
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.renderOverlay())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.loaded && !m.snapshot.Onboarded:
		content = m.onboardView.View()
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabPassport:
		return m.stampView.View()
	case tabSettings:
		return m.settingView.View()
	}
	return ""
}

func (m Model) renderOverlay() string {
	var sb strings.Builder
	switch m.overlay {
	case overlayPaywall:
		sb.WriteString(theme.Pro.Render("★ StepOne Pro") + "\n\n")
		sb.WriteString("The full 30-day journey, vision sessions\nand every ambition.\n\n")
		sb.WriteString("1  subscribe\n2  lifetime\nr  restore purchases\n\n")
		sb.WriteString(theme.Muted.Render("esc: maybe later"))
	case overlayConversion:
		sb.WriteString(theme.Hot.Render("Your first stamp!") + "\n\n")
		sb.WriteString("Sign in so your streak and passport\nare never lost.\n\n")
		sb.WriteString(theme.Muted.Render("l: sign in  esc: later"))
	}
	return theme.Overlay.Render(sb.String())
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "stepone  " + strings.Join(parts, sep)
	if m.snapshot.Paid == "pro" {
		bar += "  " + theme.Pro.Render("★ Pro")
	}
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.running {
		left = theme.Hot.Render(fmt.Sprintf("● %s %d:%02d", m.sessionLabel(), m.active.RemainingSeconds/60, m.active.RemainingSeconds%60)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + theme.Bar.Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "start":
		if len(parts) < 2 {
			if mission, ok := m.todayView.Selected(); ok {
				return m, m.startCmd(mission.ID)
			}
			m.status = "usage: start <mission-id>"
			return m, nil
		}
		return m, m.startCmd(parts[1])

	case "vision":
		if len(parts) < 3 {
			m.status = "usage: vision <120|240|360|Nm> <intent>"
			return m, nil
		}
		input, err := parseVision(parts[1])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		input.Intent = strings.Join(parts[2:], " ")
		return m, m.startVisionCmd(input)

	case "cancel":
		return m, m.cancelCmd("cancelled")

	case "ambition":
		if len(parts) < 2 {
			m.status = "usage: ambition <travel|business|hobby|health>"
			return m, nil
		}
		return m, m.switchAmbitionCmd(parts[1])

	case "upgrade":
		tier := "subscription"
		if len(parts) >= 2 {
			tier = parts[1]
		}
		return m, m.purchaseCmd(tier)

	case "restore":
		return m, m.restoreCmd()

	case "link":
		return m, m.linkCmd()

	case "export":
		return m, m.exportCmd()

	case "reset":
		return m, m.resetCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) runAction(action settingsview.Action) (tea.Model, tea.Cmd) {
	switch action {
	case settingsview.ActionSubscribe:
		m.settingView.SetBusy(true)
		return m, m.purchaseCmd("subscription")
	case settingsview.ActionLifetime:
		m.settingView.SetBusy(true)
		return m, m.purchaseCmd("lifetime")
	case settingsview.ActionRestore:
		m.settingView.SetBusy(true)
		return m, m.restoreCmd()
	case settingsview.ActionLink:
		m.settingView.SetBusy(true)
		return m, m.linkCmd()
	case settingsview.ActionExport:
		return m, m.exportCmd()
	case settingsview.ActionReset:
		return m, m.resetCmd()
	}
	return m, nil
}

// parseVision accepts a preset in seconds or a whole number of minutes
// written as "4m".
func parseVision(raw string) (sessiondto.StartVisionInput, error) {
	if strings.HasSuffix(raw, "m") {
		minutes, err := strconv.Atoi(strings.TrimSuffix(raw, "m"))
		if err != nil {
			return sessiondto.StartVisionInput{}, fmt.Errorf("invalid minutes %q", raw)
		}
		return sessiondto.StartVisionInput{Minutes: minutes}, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return sessiondto.StartVisionInput{}, fmt.Errorf("invalid duration %q", raw)
	}
	return sessiondto.StartVisionInput{Seconds: seconds}, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabToday:
		return m.todayView.Filtering()
	case tabPassport:
		return m.stampView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.onboardView, _ = m.onboardView.Update(sz)
	m.todayView, _ = m.todayView.Update(sz)
	m.stampView, _ = m.stampView.Update(sz)
	m.settingView, _ = m.settingView.Update(sz)
}

func (m Model) sessionLabel() string {
	if m.active.Intent != "" {
		return m.active.Intent
	}
	return m.active.Title
}

// ─── async commands ───────────────────────────────────────────────────────────

func tickCmd(attempt uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{attempt: attempt} })
}

func (m Model) waitPromptCmd() tea.Cmd {
	if m.prompts == nil {
		return nil
	}
	prompts := m.prompts
	return func() tea.Msg {
		if _, ok := <-prompts; !ok {
			return nil
		}
		return conversionPromptMsg{}
	}
}

func (m Model) loadSnapshotCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		progress, err := m.progress.Snapshot(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		status, err := m.entitlement.Status(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		out := snapshotMsg{progress: progress, status: status}
		if progress.Onboarded {
			plan, err := m.catalog.MissionsFor(ctx, progress.Ambition)
			if err != nil {
				return snapshotMsg{err: err}
			}
			out.plan = plan
		}
		return out
	}
}

func (m Model) onboardCmd(ambition string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.CompleteOnboarding(context.Background(), progressdto.OnboardInput{Ambition: ambition})
		return onboardedMsg{out: out, err: err}
	}
}

func (m Model) startCmd(missionID string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Start(context.Background(), missionID)
		return sessionStartedMsg{session: session, err: err}
	}
}

func (m Model) startVisionCmd(input sessiondto.StartVisionInput) tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.StartVision(context.Background(), input)
		return sessionStartedMsg{session: session, err: err}
	}
}

func (m Model) tickSessionCmd(attempt uint64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Tick(context.Background(), attempt)
		return tickedMsg{attempt: attempt, out: out, err: err}
	}
}

func (m Model) cancelCmd(reason string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Cancel(context.Background(), reason)
		return sessionCancelledMsg{session: session, err: err}
	}
}

func (m Model) switchAmbitionCmd(ambition string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.SwitchAmbition(context.Background(), ambition)
		if err != nil {
			return accountMsg{err: err}
		}
		return accountMsg{note: "ambition: " + out.Ambition}
	}
}

func (m Model) purchaseCmd(tier string) tea.Cmd {
	return func() tea.Msg {
		status, err := m.entitlement.Upgrade(context.Background(), tier)
		if err != nil {
			return accountMsg{err: err}
		}
		return accountMsg{note: "welcome to Pro (" + status.Tier + ")"}
	}
}

func (m Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.entitlement.Restore(context.Background())
		if err != nil {
			return accountMsg{err: err}
		}
		if !out.Restored {
			return accountMsg{note: "no purchases to restore"}
		}
		return accountMsg{note: "purchases restored (" + out.Status.Tier + ")"}
	}
}

func (m Model) linkCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.entitlement.LinkAccount(context.Background())
		if err != nil {
			return accountMsg{err: err}
		}
		return accountMsg{note: "signed in as " + status.AccountID}
	}
}

func (m Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.ExportPassport(context.Background())
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.session.Cancel(context.Background(), "cancelled"); err != nil && !errors.Is(err, apperrors.ErrNoActiveSession) {
			return accountMsg{err: err}
		}
		if _, err := m.progress.Reset(context.Background()); err != nil {
			return accountMsg{err: err}
		}
		return accountMsg{note: "progress reset"}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type stampPortBridge struct{ p progressPort }

func (b stampPortBridge) ListStamps(ctx context.Context) ([]progressdto.StampOutput, error) {
	return b.p.ListStamps(ctx)
}
