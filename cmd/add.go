package cmd

import (
	"fmt"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/ledger"
	"github.com/theirongolddev/lendbook/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagAddAmount string
	flagAddDate   string
	flagAddRate   string
)

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Record a new loan",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Amount lent (required)")
	addCmd.Flags().StringVarP(&flagAddDate, "date", "D", "", "Loan date YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&flagAddRate, "rate", "r", "", "Monthly interest percent (default from config)")
	_ = addCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, cfg, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	principal, err := ledger.ParseAmount(flagAddAmount)
	if err != nil {
		return fmt.Errorf("invalid --amount %q: %w", flagAddAmount, err)
	}

	rate := decimal.NewFromFloat(cfg.General.DefaultRate)
	if flagAddRate != "" {
		if rate, err = ledger.ParseAmount(flagAddRate); err != nil {
			return fmt.Errorf("invalid --rate %q: %w", flagAddRate, err)
		}
	}

	start := s.Today()
	if flagAddDate != "" {
		if start, err = parseDateFlag("date", flagAddDate); err != nil {
			return err
		}
	}

	idx, err := s.Add(model.Loan{
		Name:        args[0],
		Principal:   principal,
		StartDate:   start,
		MonthlyRate: rate,
	})
	if err != nil {
		return err
	}

	info("\n  Loan recorded for %s (#%d): %s at %s from %s\n\n",
		args[0], idx, cli.FormatMoney(principal), cli.FormatRate(rate), start.Format(model.DateLayout))
	return nil
}
