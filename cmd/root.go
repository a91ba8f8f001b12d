// Package cmd implements the lendbook CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/config"
	"github.com/theirongolddev/lendbook/internal/ledger"
	"github.com/theirongolddev/lendbook/internal/logger"
	"github.com/theirongolddev/lendbook/internal/model"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagAsOf    string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "lendbook",
	Short:        "Personal loan ledger",
	Long:         "Track personal loans, payments and simple monthly interest in a CSV ledger.",
	RunE:         runList,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cmd.SetContext(logger.WithContext(cmd.Context(), logger.New(flagVerbose)))
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Ledger CSV file (default from config or $"+config.EnvLedgerFile+")")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Evaluate debts as of this date (YYYY-MM-DD) instead of today")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig loads config, falling back to defaults with a warning.
func loadConfig(log zerolog.Logger) config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", config.Path()).Msg("using default config")
	}
	return cfg
}

// clock returns the "today" source for debt calculations.
func clock() (func() time.Time, error) {
	if flagAsOf == "" {
		return time.Now, nil
	}
	d, err := time.Parse(model.DateLayout, flagAsOf)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of %q: want YYYY-MM-DD", flagAsOf)
	}
	return func() time.Time { return d }, nil
}

// openLedger is the shared store setup used by all commands.
func openLedger(ctx context.Context) (*ledger.Store, config.Config, error) {
	log := logger.FromContext(ctx)
	cfg := loadConfig(log)

	now, err := clock()
	if err != nil {
		return nil, cfg, err
	}

	path := config.LedgerPath(cfg, flagFile)
	s, err := ledger.Open(path, ledger.WithClock(now), ledger.WithLogger(log))
	if err != nil {
		return nil, cfg, err
	}
	return s, cfg, nil
}

// resolve finds the most recent loan for name, printing the empty state
// when there is nothing to act on. ok is false in that case.
// Names are matched trimmed, the way Add stores them.
func resolve(s *ledger.Store, name string) (idx int, ok bool, err error) {
	name = strings.TrimSpace(name)
	idx, err = s.FindLatestByName(name)
	if err == nil {
		return idx, true, nil
	}
	if errors.Is(err, ledger.ErrEmpty) {
		fmt.Println("\n  No loans recorded yet.")
		fmt.Println("  Record one with `lendbook add NAME --amount N`.")
		return 0, false, nil
	}
	if errors.Is(err, ledger.ErrNotFound) {
		fmt.Printf("\n  No loan found for %q.\n", name)
		if names := s.Names(false); len(names) > 0 {
			fmt.Printf("  %s\n", cli.RenderMuted("Borrowers: "+strings.Join(names, ", ")))
		}
		return 0, false, nil
	}
	return 0, false, err
}

func parseDateFlag(name, value string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", name, value)
	}
	return d, nil
}

func info(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, args...)
}
