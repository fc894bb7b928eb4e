package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// TitleMaxLength is the longest title accepted after trimming.
const TitleMaxLength = 100

// Validation messages, in the order they are reported.
const (
	MsgTitleRequired    = "title is required"
	MsgTitleTooLong     = "title must be at most 100 characters"
	MsgAmountInvalid    = "amount must be a number"
	MsgCategoryRequired = "category is required"
	MsgDateInvalid      = "date must be a valid date"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ExpensePayload create or update request body.
// Fields are decoded loosely so every problem is reported at once.
type ExpensePayload struct {
	Title    any `json:"title" swaggertype:"string" example:"Coffee"`
	Amount   any `json:"amount" swaggertype:"number" example:"4.5"`
	Category any `json:"category" swaggertype:"string" example:"Food"`
	Date     any `json:"date" swaggertype:"string" example:"2024-01-15"`
}

// ExpenseFields is a validated, normalized payload.
type ExpenseFields struct {
	Title    string
	Amount   float64
	Category string
	Date     time.Time
}

// Merge fills the fields absent from p with the values of the existing record.
// A JSON null counts as absent.
func (p ExpensePayload) Merge(existing *Expense) ExpensePayload {
	if p.Title == nil {
		p.Title = existing.Title
	}
	if p.Amount == nil {
		p.Amount = existing.Amount
	}
	if p.Category == nil {
		p.Category = existing.Category
	}
	if p.Date == nil {
		p.Date = existing.Date
	}
	return p
}

// ValidateExpense checks p against the field rules and returns the failures in order.
// An empty result means p is valid.
func ValidateExpense(p ExpensePayload) []string {
	_, errs := ParseExpense(p)
	return errs
}

// ParseExpense validates p and, when valid, returns its normalized fields:
// trimmed strings, a float amount and a UTC date.
func ParseExpense(p ExpensePayload) (ExpenseFields, []string) {
	errs := []string{}
	var f ExpenseFields

	title, ok := nonBlank(p.Title)
	switch {
	case !ok:
		errs = append(errs, MsgTitleRequired)
	case len([]rune(title)) > TitleMaxLength:
		errs = append(errs, MsgTitleTooLong)
	default:
		f.Title = title
	}

	if amount, ok := parseAmount(p.Amount); ok {
		f.Amount = amount
	} else {
		errs = append(errs, MsgAmountInvalid)
	}

	if category, ok := nonBlank(p.Category); ok {
		f.Category = category
	} else {
		errs = append(errs, MsgCategoryRequired)
	}

	if date, ok := parseDate(p.Date); ok {
		f.Date = date
	} else {
		errs = append(errs, MsgDateInvalid)
	}

	return f, errs
}

func nonBlank(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func parseAmount(v any) (float64, bool) {
	var f float64
	switch a := v.(type) {
	case float64:
		f = a
	case float32:
		f = float64(a)
	case int:
		f = float64(a)
	case int64:
		f = float64(a)
	case json.Number:
		n, err := a.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// maxEpochMillis is the largest distance from the epoch a date may have.
const maxEpochMillis = 8.64e15

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return inRange(d.UTC())
	case float64:
		// milliseconds since the epoch; zero counts as absent
		if d == 0 || math.IsNaN(d) || math.Abs(d) > maxEpochMillis {
			return time.Time{}, false
		}
		return inRange(time.UnixMilli(int64(d)).UTC())
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return inRange(t.UTC())
			}
		}
	}
	return time.Time{}, false
}

// inRange keeps dates whose year JSON encoding and the stores can represent.
func inRange(t time.Time) (time.Time, bool) {
	if y := t.Year(); y < 0 || y > 9999 {
		return time.Time{}, false
	}
	return t, true
}
