package cmd

import (
	"github.com/theirongolddev/lendbook/internal/cli"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a borrower's latest loan",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, _, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	idx, ok, err := resolve(s, args[0])
	if !ok {
		return err
	}

	removed, err := s.Delete(idx)
	if err != nil {
		return err
	}

	info("\n  Deleted loan #%d for %s (%s from %s)\n\n",
		idx, removed.Name, cli.FormatMoney(removed.Principal), cli.FormatDate(removed.StartDate))
	return nil
}
