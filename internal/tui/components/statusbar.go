package components

import (
	"github.com/theirongolddev/lendbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// ledger location and evaluation date on the right.
func RenderStatusBar(width int, hints, ledgerInfo string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " " + hints
	right := ""
	if ledgerInfo != "" {
		right = ledgerInfo + " "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Not enough room for both; hints win.
		return style.Render(left)
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
