package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/theirongolddev/lendbook/internal/config"
	"github.com/theirongolddev/lendbook/internal/ledger"
	"github.com/theirongolddev/lendbook/internal/logger"
	"github.com/theirongolddev/lendbook/internal/tui"
	"github.com/theirongolddev/lendbook/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive loan manager",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// The alt screen owns the terminal, so logs go to a file or nowhere.
	log := zerolog.Nop()
	if flagVerbose {
		fileLog, closer, err := logger.NewFile(filepath.Join(config.Dir(), "lendbook.log"))
		if err == nil {
			log = fileLog
			defer func(c io.Closer) { _ = c.Close() }(closer)
		}
	}

	cfg := loadConfig(log)
	theme.SetActive(cfg.Appearance.Theme)

	now, err := clock()
	if err != nil {
		return err
	}

	s, err := ledger.Open(config.LedgerPath(cfg, flagFile), ledger.WithClock(now), ledger.WithLogger(log))
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s, cfg, log)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
