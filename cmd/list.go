package cmd

import (
	"fmt"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/model"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "status"},
	Short:   "Show all loans with their current debt",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, _, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	rep := s.ListWithDebt(s.Today())
	if len(rep.Rows) == 0 {
		fmt.Println("\n  No loans recorded yet.")
		fmt.Println("  Record one with `lendbook add NAME --amount N`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LOANS  as of %s", cli.FormatDate(rep.AsOf))))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "#", "Start", "Elapsed", "Rate", "Principal", "Paid", "Debt", "Status"},
		Rows:    reportRows(rep),
	}))

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Summary", "Value"},
		Rows: [][]string{
			{"Pending loans", cli.FormatNumber(int64(rep.PendingCount))},
			{"Paid loans", cli.FormatNumber(int64(rep.PaidCount))},
			{"---"},
			{"Total receivable", cli.FormatMoneyWhole(rep.TotalReceivable)},
		},
	}))

	if rep.Malformed > 0 {
		fmt.Printf("\n  %s\n", cli.RenderError(fmt.Sprintf(
			"%d row(s) in %s could not be read and are excluded from the total", rep.Malformed, s.Path())))
	}
	return nil
}

func reportRows(rep model.Report) [][]string {
	rows := make([][]string, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		idx := fmt.Sprintf("%d", r.Index)
		if r.Err != nil {
			rows = append(rows, []string{
				r.Loan.Name, idx, "-", "-", "-", "-", "-", "-", cli.RenderError("unreadable"),
			})
			continue
		}
		l := r.Loan
		rows = append(rows, []string{
			l.Name,
			idx,
			cli.FormatDate(l.StartDate),
			cli.FormatMonths(r.Elapsed),
			cli.FormatRate(l.MonthlyRate),
			cli.FormatMoney(l.Principal),
			cli.FormatMoney(l.Payments),
			cli.FormatMoney(r.CurrentDebt),
			cli.RenderStatus(l.Status),
		})
	}
	return rows
}
