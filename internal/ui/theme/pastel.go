package theme

import "github.com/charmbracelet/lipgloss"

var (
	Pink     = lipgloss.Color("#ffb3ba")
	Orange   = lipgloss.Color("#ffdfba")
	Yellow   = lipgloss.Color("#ffffba")
	Green    = lipgloss.Color("#baffc9")
	Blue     = lipgloss.Color("#bae1ff")
	Teal     = lipgloss.Color("#0F4C47")
	Gold     = lipgloss.Color("#D4AF37")
	Ink      = lipgloss.Color("#1A202C")
	Text     = lipgloss.Color("#F5F5F5")
	Subtext0 = lipgloss.Color("#A0A4AB")
	Surface1 = lipgloss.Color("#4A4A4A")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Pink)

	Bar = lipgloss.NewStyle().Background(Teal).Foreground(Text)

	Title = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Pink).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Pro   = lipgloss.NewStyle().Foreground(Gold).Bold(true)

	Overlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Orange).
		Foreground(Text).
		Padding(1, 2)
)

// Badge renders a stamp dot in its badge color.
func Badge(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
