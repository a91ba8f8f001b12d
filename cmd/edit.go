package cmd

import (
	"fmt"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/debt"
	"github.com/theirongolddev/lendbook/internal/ledger"

	"github.com/spf13/cobra"
)

var (
	flagEditAmount string
	flagEditDate   string
	flagEditRate   string
	flagEditReset  bool
)

var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Correct a borrower's latest loan",
	Long: "Overwrite principal, date or rate on the most recently added loan for NAME.\n" +
		"Flags left unset keep their current value. --reset-payments zeroes the payments.",
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&flagEditAmount, "amount", "a", "", "New amount lent")
	editCmd.Flags().StringVarP(&flagEditDate, "date", "D", "", "New loan date YYYY-MM-DD")
	editCmd.Flags().StringVarP(&flagEditRate, "rate", "r", "", "New monthly interest percent")
	editCmd.Flags().BoolVar(&flagEditReset, "reset-payments", false, "Set cumulative payments back to zero")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	name := args[0]

	s, _, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	idx, ok, err := resolve(s, name)
	if !ok {
		return err
	}

	cur, err := s.Get(idx)
	if err != nil {
		return err
	}

	req := ledger.EditRequest{
		Principal:     cur.Principal,
		StartDate:     cur.StartDate,
		MonthlyRate:   cur.MonthlyRate,
		ResetPayments: flagEditReset,
	}
	if flagEditAmount != "" {
		if req.Principal, err = ledger.ParseAmount(flagEditAmount); err != nil {
			return fmt.Errorf("invalid --amount %q: %w", flagEditAmount, err)
		}
	}
	if flagEditRate != "" {
		if req.MonthlyRate, err = ledger.ParseAmount(flagEditRate); err != nil {
			return fmt.Errorf("invalid --rate %q: %w", flagEditRate, err)
		}
	}
	if flagEditDate != "" {
		if req.StartDate, err = parseDateFlag("date", flagEditDate); err != nil {
			return err
		}
	}

	owed, err := s.Edit(idx, req)
	if err != nil {
		return err
	}

	info("\n  Updated %s (#%d): %s at %s from %s\n", name, idx,
		cli.FormatMoney(req.Principal), cli.FormatRate(req.MonthlyRate), cli.FormatDate(req.StartDate))
	if flagEditReset {
		info("  Payments reset (was %s)\n", cli.FormatMoney(cur.Payments))
	}
	info("  Current debt: %s  %s\n\n", cli.FormatMoney(owed), cli.RenderStatus(debt.StatusFor(owed)))
	return nil
}
