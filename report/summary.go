package report

import (
	"spendbook/models"

	"github.com/shopspring/decimal"
)

// CategoryTotal sum of one category
type CategoryTotal struct {
	Category string  `json:"category" example:"Food"`
	Total    float64 `json:"total" example:"15"`
}

// Summary totals of a list of expenses
type Summary struct {
	Total          float64         `json:"total" example:"18"`
	Count          int             `json:"count" example:"3"`
	CategoryTotals []CategoryTotal `json:"categoryTotals"`
}

// Slice one non-empty segment of the category breakdown
type Slice struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Percent  float64 `json:"percent"`
}

// Summarize sums expenses overall and per fixed category. Every fixed category
// is present in display order, zero included. Records outside the fixed
// categories count towards Total only.
func Summarize(expenses []models.Expense) Summary {
	categories := models.GetCategories()
	sums := make(map[string]decimal.Decimal, len(categories))
	total := decimal.Zero

	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		total = total.Add(amount)
		sums[e.Category] = sums[e.Category].Add(amount)
	}

	totals := make([]CategoryTotal, 0, len(categories))
	for _, c := range categories {
		totals = append(totals, CategoryTotal{Category: c, Total: sums[c].InexactFloat64()})
	}

	return Summary{
		Total:          total.InexactFloat64(),
		Count:          len(expenses),
		CategoryTotals: totals,
	}
}

// Chart drops empty categories and gives each remaining one its share of the
// sum, in percent rounded to one decimal.
func Chart(totals []CategoryTotal) []Slice {
	sum := decimal.Zero
	for _, t := range totals {
		if t.Total > 0 {
			sum = sum.Add(decimal.NewFromFloat(t.Total))
		}
	}

	slices := []Slice{}
	if sum.IsZero() {
		return slices
	}

	hundred := decimal.NewFromInt(100)
	for _, t := range totals {
		if t.Total <= 0 {
			continue
		}
		share := decimal.NewFromFloat(t.Total).Mul(hundred).Div(sum).Round(1)
		slices = append(slices, Slice{
			Category: t.Category,
			Total:    t.Total,
			Percent:  share.InexactFloat64(),
		})
	}
	return slices
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
