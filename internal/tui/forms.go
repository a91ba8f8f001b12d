package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/lendbook/internal/cli"
	"github.com/theirongolddev/lendbook/internal/debt"
	"github.com/theirongolddev/lendbook/internal/ledger"
	"github.com/theirongolddev/lendbook/internal/model"
	"github.com/theirongolddev/lendbook/internal/tui/components"
	"github.com/theirongolddev/lendbook/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// formValues backs every huh field. It lives on the heap so the pointers
// handed to huh stay valid while App is copied through Update.
type formValues struct {
	name    string
	amount  string
	date    string
	rate    string
	reset   bool
	confirm bool
}

// editStep tracks the two-stage edit flow: pick a borrower, then change it.
type editStep int

const (
	editSelect editStep = iota
	editDetails
)

// startForm opens the active tab's form, or posts the empty-state notice
// when there is nothing to act on.
func (a App) startForm() (tea.Model, tea.Cmd) {
	vals := &formValues{}
	var form *huh.Form

	switch a.activeTab {
	case tabNewLoan:
		vals.date = cli.FormatDate(a.store.Today())
		vals.rate = decimal.NewFromFloat(a.cfg.General.DefaultRate).String()
		form = newLoanForm(vals)
	case tabPayment:
		names := a.store.Names(true)
		if len(names) == 0 {
			a.notice = notice{noticeInfo, "No pending loans. Nothing to collect."}
			return a, nil
		}
		vals.name = names[0]
		form = paymentForm(names, vals)
	case tabEdit:
		names := a.store.Names(false)
		if len(names) == 0 {
			a.notice = notice{noticeInfo, "No loans recorded yet."}
			return a, nil
		}
		vals.name = names[len(names)-1]
		a.editStep = editSelect
		form = selectBorrowerForm("Loan to edit", names, vals)
	case tabDelete:
		names := a.store.Names(false)
		if len(names) == 0 {
			a.notice = notice{noticeInfo, "No loans recorded yet."}
			return a, nil
		}
		vals.name = names[len(names)-1]
		form = deleteForm(names, vals)
	default:
		return a, nil
	}

	a.notice = notice{}
	return a.openForm(form, vals)
}

func (a App) openForm(form *huh.Form, vals *formValues) (tea.Model, tea.Cmd) {
	a.vals = vals
	a.form = form.
		WithTheme(theme.Form()).
		WithShowHelp(true).
		WithWidth(components.CardInnerWidth(a.contentWidth()))
	return a, a.form.Init()
}

func (a *App) cancelForm() {
	a.form = nil
	a.vals = nil
	a.editStep = editSelect
	a.notice = notice{noticeInfo, "Cancelled."}
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.submit()
	case huh.StateAborted:
		a.cancelForm()
		return a, nil
	}
	return a, cmd
}

// submit applies the completed form of the active tab.
func (a App) submit() (tea.Model, tea.Cmd) {
	vals := a.vals
	a.form = nil
	a.vals = nil

	var err error
	switch a.activeTab {
	case tabNewLoan:
		err = a.applyNewLoan(vals)
	case tabPayment:
		err = a.applyPayment(vals)
	case tabEdit:
		if a.editStep == editSelect {
			return a.beginEditDetails(vals)
		}
		a.editStep = editSelect
		err = a.applyEdit(vals)
	case tabDelete:
		err = a.applyDelete(vals)
	}

	if err != nil {
		a.notice = failureNotice(err)
	}
	a.refresh()
	return a, nil
}

// beginEditDetails resolves the chosen borrower and opens the prefilled
// second stage of the edit flow.
func (a App) beginEditDetails(vals *formValues) (tea.Model, tea.Cmd) {
	idx, err := a.store.FindLatestByName(vals.name)
	if err == nil {
		var cur model.Loan
		if cur, err = a.store.Get(idx); err == nil {
			a.editIdx = idx
			a.editStep = editDetails
			details := &formValues{
				name:   cur.Name,
				amount: cur.Principal.String(),
				date:   cli.FormatDate(cur.StartDate),
				rate:   cur.MonthlyRate.String(),
			}
			return a.openForm(editForm(cur, details), details)
		}
	}
	a.editStep = editSelect
	a.notice = failureNotice(err)
	return a, nil
}

func (a *App) applyNewLoan(v *formValues) error {
	principal, err := ledger.ParseAmount(v.amount)
	if err != nil {
		return fmt.Errorf("%w: amount %q", ledger.ErrInvalidInput, v.amount)
	}
	rate, err := ledger.ParseAmount(v.rate)
	if err != nil {
		return fmt.Errorf("%w: rate %q", ledger.ErrInvalidInput, v.rate)
	}
	start, err := parseFormDate(v.date)
	if err != nil {
		return err
	}

	if _, err := a.store.Add(model.Loan{
		Name:        v.name,
		Principal:   principal,
		StartDate:   start,
		MonthlyRate: rate,
	}); err != nil {
		return err
	}

	a.saved(fmt.Sprintf("Recorded loan of %s to %s at %s.",
		cli.FormatMoney(principal), strings.TrimSpace(v.name), cli.FormatRate(rate)))
	return nil
}

func (a *App) applyPayment(v *formValues) error {
	amount, err := ledger.ParseAmount(v.amount)
	if err != nil {
		return fmt.Errorf("%w: amount %q", ledger.ErrInvalidInput, v.amount)
	}
	idx, err := a.store.FindLatestByName(v.name)
	if err != nil {
		return err
	}
	owed, err := a.store.ApplyPayment(idx, amount)
	if err != nil {
		return err
	}

	if debt.StatusFor(owed) == model.StatusPaid {
		a.saved(fmt.Sprintf("Payment of %s registered. %s's loan is settled.", cli.FormatMoney(amount), v.name))
		return nil
	}
	a.saved(fmt.Sprintf("Payment of %s registered. %s still owes %s.",
		cli.FormatMoney(amount), v.name, cli.FormatMoney(owed)))
	return nil
}

func (a *App) applyEdit(v *formValues) error {
	principal, err := ledger.ParseAmount(v.amount)
	if err != nil {
		return fmt.Errorf("%w: amount %q", ledger.ErrInvalidInput, v.amount)
	}
	rate, err := ledger.ParseAmount(v.rate)
	if err != nil {
		return fmt.Errorf("%w: rate %q", ledger.ErrInvalidInput, v.rate)
	}
	start, err := parseFormDate(v.date)
	if err != nil {
		return err
	}

	owed, err := a.store.Edit(a.editIdx, ledger.EditRequest{
		Principal:     principal,
		StartDate:     start,
		MonthlyRate:   rate,
		ResetPayments: v.reset,
	})
	if err != nil {
		return err
	}

	a.saved(fmt.Sprintf("Updated %s. Current debt %s (%s).",
		v.name, cli.FormatMoney(owed), debt.StatusFor(owed)))
	return nil
}

func (a *App) applyDelete(v *formValues) error {
	if !v.confirm {
		a.notice = notice{noticeInfo, "Nothing deleted."}
		return nil
	}
	idx, err := a.store.FindLatestByName(v.name)
	if err != nil {
		return err
	}
	removed, err := a.store.Delete(idx)
	if err != nil {
		return err
	}
	a.saved(fmt.Sprintf("Deleted %s's loan of %s.", removed.Name, cli.FormatMoney(removed.Principal)))
	return nil
}

func (a *App) saved(msg string) {
	a.lastSaved = time.Now()
	a.notice = notice{noticeOK, msg}
}

func failureNotice(err error) notice {
	if ledger.IsEmptyState(err) {
		return notice{noticeInfo, err.Error()}
	}
	return notice{noticeErr, "Error: " + err.Error()}
}

// ─── Form builders ──────────────────────────────────────────────

func newLoanForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Borrower").
				Value(&v.name).
				Validate(requireText("a name is required")),
			huh.NewInput().
				Title("Amount lent").
				Placeholder("1,000,000").
				Value(&v.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Loan date").
				Description("YYYY-MM-DD").
				Value(&v.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Monthly interest (%)").
				Value(&v.rate).
				Validate(validateRate),
		),
	)
}

func paymentForm(names []string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Borrower").
				Options(huh.NewOptions(names...)...).
				Value(&v.name),
			huh.NewInput().
				Title("Payment amount").
				Value(&v.amount).
				Validate(validateAmount),
		),
	)
}

func selectBorrowerForm(title string, names []string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description("The most recent loan for the name is used.").
				Options(huh.NewOptions(names...)...).
				Value(&v.name),
		),
	)
}

func editForm(cur model.Loan, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Editing "+cur.Name).
				Description(fmt.Sprintf("Payments so far: %s", cli.FormatMoney(cur.Payments))),
			huh.NewInput().
				Title("Amount lent").
				Value(&v.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Loan date").
				Description("YYYY-MM-DD").
				Value(&v.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Monthly interest (%)").
				Value(&v.rate).
				Validate(validateRate),
			huh.NewConfirm().
				Title("Reset payments to zero?").
				Affirmative("Reset").
				Negative("Keep").
				Value(&v.reset),
		),
	)
}

func deleteForm(names []string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Loan to delete").
				Description("The most recent loan for the name is removed.").
				Options(huh.NewOptions(names...)...).
				Value(&v.name),
			huh.NewConfirm().
				Title("Delete this loan permanently?").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&v.confirm),
		),
	)
}

// ─── Validation ─────────────────────────────────────────────────

func requireText(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("an amount is required")
	}
	d, err := ledger.ParseAmount(s)
	if err != nil {
		return errors.New("not a number")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

func validateRate(s string) error {
	d, err := ledger.ParseAmount(s)
	if err != nil {
		return errors.New("not a number")
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return errors.New("must be between 0 and 100")
	}
	return nil
}

func validateDate(s string) error {
	_, err := parseFormDate(s)
	return err
}

func parseFormDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, want YYYY-MM-DD", ledger.ErrInvalidInput, s)
	}
	return d, nil
}

// ─── Form tab view ──────────────────────────────────────────────

var tabIntros = map[int]struct{ title, body string }{
	tabNewLoan: {"New loan", "Record money lent to a borrower. Payments start at zero and the loan is pending."},
	tabPayment: {"Register payment", "Add a payment to a borrower's most recent loan. The loan is marked paid once nothing is owed."},
	tabEdit:    {"Edit loan", "Correct the amount, date or rate of a borrower's most recent loan, optionally resetting its payments."},
	tabDelete:  {"Delete loan", "Remove a borrower's most recent loan from the ledger. Other loans keep their values."},
}

func (a App) renderFormTab(cw int) string {
	t := theme.Active
	intro := tabIntros[a.activeTab]

	var body strings.Builder
	if a.form != nil {
		body.WriteString(a.form.View())
	} else {
		body.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Render(intro.body))
		body.WriteString("\n\n")
		body.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("Press Enter to start."))
	}
	if n := a.renderNotice(); n != "" {
		body.WriteString("\n\n")
		body.WriteString(n)
	}

	return components.ContentCard(intro.title, body.String(), cw, a.form != nil)
}
