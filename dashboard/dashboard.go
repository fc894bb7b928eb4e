// Package dashboard keeps the expense list on the client side and derives
// what the dashboard shows from it.
package dashboard

import (
	"context"
	"sync"

	"spendbook/client"
	"spendbook/models"
	"spendbook/report"

	"github.com/rs/zerolog/log"
)

// Notification texts
const (
	MsgLoadFailed   = "Failed to load expenses"
	MsgAdded        = "Expense added successfully"
	MsgAddFailed    = "Failed to add expense"
	MsgUpdated      = "Expense updated successfully"
	MsgUpdateFailed = "Failed to update expense"
	MsgDeleted      = "Expense deleted successfully"
	MsgDeleteFailed = "Failed to delete expense"
)

// ExpenseAPI is the part of the API client the dashboard uses.
type ExpenseAPI interface {
	List(ctx context.Context) ([]models.Expense, error)
	Create(ctx context.Context, in client.Input) (*models.Expense, error)
	Update(ctx context.Context, id string, in client.Patch) (*models.Expense, error)
	Delete(ctx context.Context, id string) error
}

// Dashboard holds the loaded expenses and the active filter.
// Mutations go to the API first and are then applied to the local list
// without reloading it.
type Dashboard struct {
	api      ExpenseAPI
	notifier Notifier

	mu       sync.RWMutex
	expenses []models.Expense
	filter   report.Filter
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithNotifier replaces the logging notifier.
func WithNotifier(n Notifier) Option {
	return func(d *Dashboard) {
		d.notifier = n
	}
}

// New creates an empty dashboard showing every category and month.
func New(api ExpenseAPI, opts ...Option) *Dashboard {
	d := &Dashboard{
		api:      api,
		notifier: LogNotifier{},
		expenses: []models.Expense{},
		filter:   report.Filter{Category: models.CategoryAll},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load replaces the local list with the server's.
func (d *Dashboard) Load(ctx context.Context) error {
	expenses, err := d.api.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("loading expenses")
		d.notifier.Error(MsgLoadFailed)
		return err
	}

	d.mu.Lock()
	d.expenses = expenses
	d.mu.Unlock()
	return nil
}

// SetFilter changes the active filter.
func (d *Dashboard) SetFilter(f report.Filter) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.Category == "" {
		f.Category = models.CategoryAll
	}

	d.mu.Lock()
	d.filter = f
	d.mu.Unlock()
	return nil
}

// Filter returns the active filter.
func (d *Dashboard) Filter() report.Filter {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filter
}

// Expenses returns a copy of every loaded expense.
func (d *Dashboard) Expenses() []models.Expense {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.Expense(nil), d.expenses...)
}

// Filtered returns the expenses passing the active filter.
func (d *Dashboard) Filtered() []models.Expense {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filter.Apply(d.expenses)
}

// Summary derives the totals of the filtered expenses.
func (d *Dashboard) Summary() report.Summary {
	return report.Summarize(d.Filtered())
}

// Total is the sum of the filtered amounts.
func (d *Dashboard) Total() float64 {
	return d.Summary().Total
}

// Count is the number of filtered expenses.
func (d *Dashboard) Count() int {
	return d.Summary().Count
}

// CategoryTotals sums the filtered expenses per fixed category.
func (d *Dashboard) CategoryTotals() []report.CategoryTotal {
	return d.Summary().CategoryTotals
}

// Chart is the category breakdown without empty categories.
func (d *Dashboard) Chart() []report.Slice {
	return report.Chart(d.CategoryTotals())
}

// Add creates an expense and puts it at the top of the list.
func (d *Dashboard) Add(ctx context.Context, in client.Input) (*models.Expense, error) {
	if err := ValidateForm(in); err != nil {
		return nil, err
	}

	created, err := d.api.Create(ctx, in)
	if err != nil {
		log.Error().Err(err).Msg("adding expense")
		d.notifier.Error(MsgAddFailed)
		return nil, err
	}

	d.mu.Lock()
	d.expenses = append([]models.Expense{*created}, d.expenses...)
	d.mu.Unlock()

	d.notifier.Success(MsgAdded)
	return created, nil
}

// Update sends the whole form for id and replaces the local copy.
func (d *Dashboard) Update(ctx context.Context, id string, in client.Input) (*models.Expense, error) {
	if err := ValidateForm(in); err != nil {
		return nil, err
	}

	updated, err := d.api.Update(ctx, id, client.PatchFromInput(in))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("updating expense")
		d.notifier.Error(MsgUpdateFailed)
		return nil, err
	}

	d.mu.Lock()
	for i := range d.expenses {
		if d.expenses[i].ID == id {
			d.expenses[i] = *updated
		}
	}
	d.mu.Unlock()

	d.notifier.Success(MsgUpdated)
	return updated, nil
}

// Delete removes id on the server and from the list.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	if err := d.api.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("deleting expense")
		d.notifier.Error(MsgDeleteFailed)
		return err
	}

	d.mu.Lock()
	kept := d.expenses[:0]
	for _, e := range d.expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	d.expenses = kept
	d.mu.Unlock()

	d.notifier.Success(MsgDeleted)
	return nil
}
