package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/ledger"
	"github.com/theirongolddev/lendbook/internal/model"
	"github.com/theirongolddev/lendbook/internal/store"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the debt report to a SQLite database",
	Long: "Write every loan with its freshly computed debt to a SQLite database\n" +
		"for ad-hoc SQL queries. The CSV ledger is left untouched.",
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Database path (default: ledger path with .db extension)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, _, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}

	out := flagExportOut
	if out == "" {
		out = strings.TrimSuffix(s.Path(), filepath.Ext(s.Path())) + ".db"
	}

	rep, total, err := exportReport(s, out)
	if err != nil {
		return err
	}

	info("\n  Exported %s loans to %s\n", cli.FormatNumber(int64(len(rep.Rows))), out)
	info("  Total receivable as of %s: %s\n\n", cli.FormatDate(rep.AsOf), total)
	if rep.Malformed > 0 {
		fmt.Fprintf(os.Stderr, "  %d unreadable row(s) exported with their error only\n", rep.Malformed)
	}
	return nil
}

// exportReport writes the current report to the database at out and reads
// it back, failing if the stored rows do not match the ledger.
func exportReport(s *ledger.Store, out string) (model.Report, string, error) {
	ex, err := store.Open(out)
	if err != nil {
		return model.Report{}, "", err
	}
	defer ex.Close()

	rep := s.ListWithDebt(s.Today())
	if err := ex.WriteReport(s.Path(), rep); err != nil {
		return rep, "", fmt.Errorf("writing report: %w", err)
	}

	total, err := ex.TotalReceivable()
	if err != nil {
		return rep, "", fmt.Errorf("reading back report: %w", err)
	}
	loans, err := ex.LoadLoans()
	if err != nil {
		return rep, "", fmt.Errorf("reading back loans: %w", err)
	}
	if len(loans) != len(rep.Rows) {
		return rep, "", fmt.Errorf("export holds %d loans, ledger has %d", len(loans), len(rep.Rows))
	}
	return rep, total, nil
}
