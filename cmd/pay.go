package cmd

import (
	"fmt"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/debt"
	"github.com/theirongolddev/lendbook/internal/ledger"

	"github.com/spf13/cobra"
)

var payCmd = &cobra.Command{
	Use:   "pay NAME AMOUNT",
	Short: "Register a payment on a borrower's latest loan",
	Long: "Register a payment on the most recently added loan for NAME.\n" +
		"Running it twice records the payment twice.",
	Args: cobra.ExactArgs(2),
	RunE: runPay,
}

func init() {
	rootCmd.AddCommand(payCmd)
}

func runPay(cmd *cobra.Command, args []string) error {
	name, rawAmount := args[0], args[1]

	amount, err := ledger.ParseAmount(rawAmount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", rawAmount, err)
	}

	s, _, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	idx, ok, err := resolve(s, name)
	if !ok {
		return err
	}

	owed, err := s.ApplyPayment(idx, amount)
	if err != nil {
		return err
	}

	info("\n  Payment of %s registered for %s (#%d)\n", cli.FormatMoney(amount), name, idx)
	info("  Remaining debt: %s  %s\n\n", cli.FormatMoney(owed), cli.RenderStatus(debt.StatusFor(owed)))
	return nil
}
