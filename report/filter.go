package report

import (
	"errors"
	"strings"
	"time"

	"spendbook/models"
)

// ErrInvalidMonth is returned for a month that is not YYYY-MM.
var ErrInvalidMonth = errors.New("month must be formatted as YYYY-MM")

// Filter narrows a list of expenses. Both criteria must hold.
// An empty Category or CategoryAll matches every category, an empty Month every date.
type Filter struct {
	Category string `form:"category" json:"category"`
	Month    string `form:"month" json:"month"`
}

// Validate checks the month format.
func (f Filter) Validate() error {
	if f.Month == "" {
		return nil
	}
	if _, err := time.Parse("2006-01", f.Month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

// Match reports whether e passes the filter. The month is a prefix of the
// record date rendered as YYYY-MM-DD in UTC.
func (f Filter) Match(e models.Expense) bool {
	if f.Category != "" && f.Category != models.CategoryAll && e.Category != f.Category {
		return false
	}
	if f.Month != "" && !strings.HasPrefix(e.Date.UTC().Format(time.DateOnly), f.Month) {
		return false
	}
	return true
}

// Apply returns the matching expenses in their original order.
func (f Filter) Apply(expenses []models.Expense) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
