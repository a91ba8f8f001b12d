// Package tui provides the interactive Bubble Tea loan manager for lendbook.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/config"
	"github.com/theirongolddev/lendbook/internal/ledger"
	"github.com/theirongolddev/lendbook/internal/model"
	"github.com/theirongolddev/lendbook/internal/tui/components"
	"github.com/theirongolddev/lendbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Tab indexes, in components.Tabs order.
const (
	tabNewLoan = iota
	tabPayment
	tabDebts
	tabEdit
	tabDelete
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 140
	minContentHeight = 5
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeOK
	noticeErr
)

// notice is the one-line result of the last action, shown under the form.
type notice struct {
	kind noticeKind
	text string
}

// App is the root Bubble Tea model.
type App struct {
	store *ledger.Store
	cfg   config.Config
	log   zerolog.Logger

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Active huh form, nil when the tab shows its intro card.
	form     *huh.Form
	vals     *formValues
	editStep editStep
	editIdx  int

	// Debts tab
	report model.Report
	table  table.Model

	notice    notice
	lastSaved time.Time
}

// NewApp creates the TUI model over an opened ledger.
func NewApp(s *ledger.Store, cfg config.Config, log zerolog.Logger) App {
	a := App{
		store:     s,
		cfg:       cfg,
		log:       log,
		activeTab: tabNewLoan,
		table:     newDebtTable(),
	}
	a.refresh()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeTable()
		if a.form != nil {
			a.form = a.form.WithWidth(components.CardInnerWidth(a.contentWidth()))
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabDebts {
				a.table.MoveUp(1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabDebts {
				a.table.MoveDown(1)
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.switchTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// An open form owns the keyboard; Esc backs out of it.
		if a.form != nil {
			if key == "esc" {
				a.cancelForm()
				return a, nil
			}
			return a.updateForm(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "left":
			a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
			return a, nil
		case "right", "tab":
			a.switchTab((a.activeTab + 1) % len(components.Tabs))
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if tab := components.TabIdxByKey(msg.Runes[0]); tab >= 0 {
				a.switchTab(tab)
				return a, nil
			}
		}

		if a.activeTab == tabDebts {
			if key == "r" {
				a.reload()
				return a, nil
			}
			var cmd tea.Cmd
			a.table, cmd = a.table.Update(msg)
			return a, cmd
		}

		if key == "enter" {
			return a.startForm()
		}
		return a, nil
	}

	// Cursor blinks and other internal messages belong to the form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

// switchTab moves to tab, clearing the previous tab's notice.
func (a *App) switchTab(tab int) {
	if tab == a.activeTab {
		return
	}
	a.activeTab = tab
	a.notice = notice{}
	if tab == tabDebts {
		a.refresh()
	}
}

// refresh recomputes the debt report from memory for the store's today.
func (a *App) refresh() {
	a.report = a.store.ListWithDebt(a.store.Today())
	a.table.SetRows(debtRows(a.report))
}

// reload re-reads the ledger file, picking up edits made outside the TUI.
func (a *App) reload() {
	if err := a.store.Load(); err != nil {
		a.log.Error().Err(err).Str("path", a.store.Path()).Msg("reload failed")
		a.notice = notice{noticeErr, fmt.Sprintf("Reload failed: %s", err)}
		return
	}
	a.refresh()
	a.notice = notice{noticeInfo, fmt.Sprintf("Reloaded %d loan(s)", a.store.Len())}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  lendbook needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"n p d e x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move through the debt table"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"Enter", "Open the tab's form / Submit"},
			{"Esc", "Cancel the form"},
			{"r", "Reload the ledger file (Debts)"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + ledger row
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	infoRow := dimStyle.Render(" ledger ") + accentStyle.Render(a.store.Path()) +
		dimStyle.Render(" │ as of ") + accentStyle.Render(cli.FormatDate(a.store.Today()))

	header := components.RenderTabBar(a.activeTab, w) +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(infoRow)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.hints(), a.ledgerInfo(time.Now()))

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	if a.activeTab == tabDebts {
		content = a.renderDebtsTab(cw)
	} else {
		content = a.renderFormTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	switch {
	case a.form != nil:
		return "[Enter] next  [Esc] cancel  [^c] quit"
	case a.activeTab == tabDebts:
		return "[j/k] move  [r] reload  [←/→] tabs  [?] help  [q] quit"
	default:
		return "[Enter] start  [←/→] tabs  [?] help  [q] quit"
	}
}

func (a App) ledgerInfo(now time.Time) string {
	info := filepath.Base(a.store.Path())
	if !a.lastSaved.IsZero() {
		info += " · saved " + cli.FormatAge(a.lastSaved, now)
	}
	return info
}

// renderNotice renders the last action's result line.
func (a App) renderNotice() string {
	if a.notice.text == "" {
		return ""
	}
	t := theme.Active
	color := t.TextMuted
	switch a.notice.kind {
	case noticeOK:
		color = t.Green
	case noticeErr:
		color = t.Red
	}
	return lipgloss.NewStyle().Foreground(color).Render(a.notice.text)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
