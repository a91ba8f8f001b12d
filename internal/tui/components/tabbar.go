package components

import (
	"strings"

	"github.com/theirongolddev/lendbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs, in display order.
var Tabs = []Tab{
	{Name: "New loan", Key: 'n', KeyPos: 0},
	{Name: "Payment", Key: 'p', KeyPos: 0},
	{Name: "Debts", Key: 'd', KeyPos: 0},
	{Name: "Edit", Key: 'e', KeyPos: 0},
	{Name: "Delete", Key: 'x', KeyPos: -1}, // x is not in "Delete"
}

const tabSeparator = " "

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pad := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var parts []string
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}

		// Render with highlighted shortcut key
		var rendered string
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			rendered = inactiveStyle.Render(before) +
				dimKeyStyle.Render("[") + keyStyle.Render(key) + dimKeyStyle.Render("]") +
				inactiveStyle.Render(after)
		} else {
			rendered = inactiveStyle.Render(tab.Name) +
				dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
		}
		parts = append(parts, pad+rendered+pad)
	}

	row := strings.Join(parts, lipgloss.NewStyle().Background(t.Surface).Render(tabSeparator))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabVisualWidth returns the rendered width of a tab, matching RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2 // horizontal padding
	if !active {
		w += 2 // "[" and "]"
		if tab.KeyPos < 0 || tab.KeyPos >= len(tab.Name) {
			w++ // key letter appended after the name
		}
	}
	return w
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
