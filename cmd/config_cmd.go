package cmd

import (
	"fmt"

	"github.com/theirongolddev/lendbook/internal/config"
	"github.com/theirongolddev/lendbook/internal/logger"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Ledger file:   %s\n", config.LedgerPath(cfg, flagFile))
	if cfg.General.LedgerFile == "" {
		fmt.Println("                   (default location)")
	}
	fmt.Printf("    Default rate:  %.2f%% per month\n", cfg.General.DefaultRate)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	log := logger.FromContext(cmd.Context())
	log.Debug().
		Str("config", config.Path()).
		Str("ledger", config.LedgerPath(cfg, flagFile)).
		Msg("resolved paths")

	fmt.Println("  Run `lendbook setup` to reconfigure.")
	return nil
}
