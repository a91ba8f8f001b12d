package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/lendbook/internal/config"
	"github.com/theirongolddev/lendbook/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	ledgerFile := setupLedgerFile(cfg)
	rate := strconv.FormatFloat(cfg.General.DefaultRate, 'f', -1, 64)
	themeName := theme.ByName(cfg.Appearance.Theme).Name

	var themeOpts []huh.Option[string]
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to lendbook!").
				Description("A few settings and you're ready to record loans."),
			huh.NewInput().
				Title("Ledger file").
				Description("CSV file where loans are stored.").
				Value(&ledgerFile).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a path is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Default monthly interest (%)").
				Value(&rate).
				Validate(validateRate),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
		),
	).WithTheme(theme.Form())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("\n  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.LedgerFile = strings.TrimSpace(ledgerFile)
	cfg.General.DefaultRate, _ = strconv.ParseFloat(strings.TrimSpace(rate), 64)
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `lendbook setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

// setupLedgerFile is the wizard's ledger path prefill. It ignores --file and
// $LENDBOOK_FILE so a one-off override is not saved as the default.
func setupLedgerFile(cfg config.Config) string {
	if cfg.General.LedgerFile != "" {
		return cfg.General.LedgerFile
	}
	return config.DefaultLedgerPath()
}

func validateRate(s string) error {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if r < 0 || r > 100 {
		return errors.New("must be between 0 and 100")
	}
	return nil
}
