package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() ExpensePayload {
	return ExpensePayload{
		Title:    "Coffee",
		Amount:   4.5,
		Category: "Food",
		Date:     "2024-01-15",
	}
}

func TestValidateExpense_Valid(t *testing.T) {
	assert.Empty(t, ValidateExpense(validPayload()))
}

func TestValidateExpense_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *ExpensePayload)
		message string
	}{
		{"missing title", func(p *ExpensePayload) { p.Title = nil }, MsgTitleRequired},
		{"blank title", func(p *ExpensePayload) { p.Title = "   " }, MsgTitleRequired},
		{"title not a string", func(p *ExpensePayload) { p.Title = 12.0 }, MsgTitleRequired},
		{"missing amount", func(p *ExpensePayload) { p.Amount = nil }, MsgAmountInvalid},
		{"amount not numeric", func(p *ExpensePayload) { p.Amount = "twelve" }, MsgAmountInvalid},
		{"amount boolean", func(p *ExpensePayload) { p.Amount = true }, MsgAmountInvalid},
		{"missing category", func(p *ExpensePayload) { p.Category = nil }, MsgCategoryRequired},
		{"blank category", func(p *ExpensePayload) { p.Category = "\t" }, MsgCategoryRequired},
		{"missing date", func(p *ExpensePayload) { p.Date = nil }, MsgDateInvalid},
		{"garbage date", func(p *ExpensePayload) { p.Date = "not a date" }, MsgDateInvalid},
		{"impossible date", func(p *ExpensePayload) { p.Date = "2024-02-30" }, MsgDateInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)
			assert.Equal(t, []string{tt.message}, ValidateExpense(p))
		})
	}
}

func TestValidateExpense_ReportsEveryError(t *testing.T) {
	errs := ValidateExpense(ExpensePayload{})
	assert.Equal(t, []string{
		MsgTitleRequired,
		MsgAmountInvalid,
		MsgCategoryRequired,
		MsgDateInvalid,
	}, errs)
}

func TestValidateExpense_TitleTooLong(t *testing.T) {
	p := validPayload()
	p.Title = strings.Repeat("a", TitleMaxLength+1)
	assert.Equal(t, []string{MsgTitleTooLong}, ValidateExpense(p))

	p.Title = "  " + strings.Repeat("a", TitleMaxLength) + "  "
	assert.Empty(t, ValidateExpense(p))
}

func TestParseExpense_Normalizes(t *testing.T) {
	f, errs := ParseExpense(ExpensePayload{
		Title:    "  Coffee  ",
		Amount:   " 4.50 ",
		Category: " Food ",
		Date:     "2024-01-15T10:30:00+02:00",
	})
	require.Empty(t, errs)

	assert.Equal(t, "Coffee", f.Title)
	assert.Equal(t, 4.5, f.Amount)
	assert.Equal(t, "Food", f.Category)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), f.Date)
	assert.Equal(t, time.UTC, f.Date.Location())
}

func TestParseExpense_DateForms(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, date := range []any{
		"2024-01-15",
		"2024-01-15T00:00",
		"2024-01-15T00:00:00",
		"2024-01-15T00:00:00.000Z",
		float64(want.UnixMilli()),
		want.In(time.FixedZone("CET", 3600)),
	} {
		p := validPayload()
		p.Date = date
		f, errs := ParseExpense(p)
		require.Empty(t, errs, "date %v", date)
		assert.True(t, want.Equal(f.Date), "date %v parsed as %v", date, f.Date)
	}
}

func TestParseExpense_DateOutOfRange(t *testing.T) {
	for _, date := range []any{
		253402300800000.0, // 10000-01-01
		-62167219200001.0, // just before year 0
		1e20,
		-1e20,
	} {
		p := validPayload()
		p.Date = date
		assert.Equal(t, []string{MsgDateInvalid}, ValidateExpense(p), "date %v", date)
	}

	p := validPayload()
	p.Date = time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{MsgDateInvalid}, ValidateExpense(p))

	// the last representable millisecond is still a date
	p.Date = float64(time.Date(9999, 12, 31, 23, 59, 59, 999e6, time.UTC).UnixMilli())
	assert.Empty(t, ValidateExpense(p))
}

func TestParseExpense_AmountFromJSON(t *testing.T) {
	var p ExpensePayload
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Bus","amount":"12","category":"Transport","date":"2024-03-01"}`), &p))

	f, errs := ParseExpense(p)
	require.Empty(t, errs)
	assert.Equal(t, 12.0, f.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"title":"Bus","amount":"","category":"Transport","date":"2024-03-01"}`), &p))
	assert.Equal(t, []string{MsgAmountInvalid}, ValidateExpense(p))
}

func TestExpensePayload_Merge(t *testing.T) {
	existing := &Expense{
		Title:    "Coffee",
		Amount:   4.5,
		Category: "Food",
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	merged := ExpensePayload{Amount: 6.0}.Merge(existing)
	f, errs := ParseExpense(merged)
	require.Empty(t, errs)

	assert.Equal(t, ExpenseFields{
		Title:    "Coffee",
		Amount:   6,
		Category: "Food",
		Date:     existing.Date,
	}, f)

	// a provided blank value is validated, not replaced
	merged = ExpensePayload{Title: " "}.Merge(existing)
	assert.Equal(t, []string{MsgTitleRequired}, ValidateExpense(merged))
}

func TestExpense_ApplyAndFields(t *testing.T) {
	f := ExpenseFields{Title: "Cinema", Amount: 12, Category: "Entertainment", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}

	var e Expense
	e.Apply(f)
	assert.Equal(t, f, e.Fields())
}

func TestExpense_BeforeCreate(t *testing.T) {
	e := &Expense{}
	require.NoError(t, e.BeforeCreate(nil))
	assert.Len(t, e.ID, 36)
	assert.Equal(t, uint(1), e.Version)

	kept := &Expense{ID: "fixed", Version: 3}
	require.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
	assert.Equal(t, uint(3), kept.Version)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Food", "Transport", "Entertainment", "Shopping", "Bills", "Health", "Other"}, GetCategories())
	assert.True(t, IsCategory("Bills"))
	assert.False(t, IsCategory("bills"))
	assert.False(t, IsCategory(CategoryAll))
}
