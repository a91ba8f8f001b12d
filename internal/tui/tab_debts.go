package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/model"
	"github.com/theirongolddev/lendbook/internal/tui/components"
	"github.com/theirongolddev/lendbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// debtColumns are the Debts table columns. Widths are the minimums;
// resizeTable hands spare width to the name column.
var debtColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Name", Width: 18},
	{Title: "Start", Width: 10},
	{Title: "Elapsed", Width: 10},
	{Title: "Rate", Width: 8},
	{Title: "Principal", Width: 14},
	{Title: "Paid", Width: 14},
	{Title: "Debt", Width: 14},
	{Title: "Status", Width: 10},
}

// cards (4 lines) + table header (2) + card border and title (3)
const debtsChrome = 9

func newDebtTable() table.Model {
	t := theme.Active

	tbl := table.New(
		table.WithColumns(append([]table.Column(nil), debtColumns...)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.TextMuted).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(t.TextPrimary).
		Background(t.SurfaceHover).
		Bold(true)
	tbl.SetStyles(s)
	return tbl
}

// resizeTable fits the table to the content card for the current window.
func (a *App) resizeTable() {
	inner := components.CardInnerWidth(a.contentWidth())

	cols := append([]table.Column(nil), debtColumns...)
	used := 0
	for _, c := range cols {
		used += c.Width + 2 // cell padding
	}
	if spare := inner - used; spare > 0 {
		cols[1].Width += spare
	}
	a.table.SetColumns(cols)
	a.table.SetWidth(inner)

	// header + status rows of the main view
	h := a.height - 3 - debtsChrome
	if h < 3 {
		h = 3
	}
	a.table.SetHeight(h)
}

// debtRows projects the report into plain table rows. Cells carry no
// styling since the table measures raw text.
func debtRows(rep model.Report) []table.Row {
	rows := make([]table.Row, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		idx := strconv.Itoa(r.Index)
		if r.Err != nil {
			rows = append(rows, table.Row{idx, r.Loan.Name, "-", "-", "-", "-", "-", "-", "Unreadable"})
			continue
		}
		l := r.Loan
		rows = append(rows, table.Row{
			idx,
			l.Name,
			cli.FormatDate(l.StartDate),
			cli.FormatMonths(r.Elapsed),
			cli.FormatRate(l.MonthlyRate),
			cli.FormatMoney(l.Principal),
			cli.FormatMoney(l.Payments),
			cli.FormatMoney(r.CurrentDebt),
			string(l.Status),
		})
	}
	return rows
}

func (a App) renderDebtsTab(cw int) string {
	t := theme.Active
	rep := a.report

	unreadable := components.Metric{Label: "Unreadable rows", Value: cli.FormatNumber(int64(rep.Malformed))}
	if rep.Malformed > 0 {
		unreadable.Color = t.Red
		unreadable.Note = "excluded from total"
	}

	cards := components.MetricCardRow([]components.Metric{
		{
			Label: "Total receivable",
			Value: cli.FormatMoneyWhole(rep.TotalReceivable),
			Color: t.AccentBright,
		},
		{Label: "Pending", Value: cli.FormatNumber(int64(rep.PendingCount)), Color: t.Orange},
		{Label: "Paid", Value: cli.FormatNumber(int64(rep.PaidCount)), Color: t.Green},
		unreadable,
	}, cw)

	var body strings.Builder
	if len(rep.Rows) == 0 {
		body.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Render("No loans recorded yet. Press n to add one."))
	} else {
		body.WriteString(a.table.View())
		if r, ok := a.selectedRow(); ok && r.Err != nil {
			body.WriteString("\n")
			body.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(r.Err.Error()))
		}
	}
	if n := a.renderNotice(); n != "" {
		body.WriteString("\n")
		body.WriteString(n)
	}

	title := fmt.Sprintf("Debts as of %s", cli.FormatDate(rep.AsOf))
	return cards + "\n" + components.ContentCard(title, body.String(), cw, true)
}

// selectedRow returns the report row under the table cursor.
func (a App) selectedRow() (model.Row, bool) {
	i := a.table.Cursor()
	if i < 0 || i >= len(a.report.Rows) {
		return model.Row{}, false
	}
	return a.report.Rows[i], true
}
