package dashboard

import (
	"strings"
	"unicode/utf8"

	"spendbook/client"
	"spendbook/models"
)

// Form validation messages
const (
	MsgFormTitleRequired    = "Title is required"
	MsgFormTitleTooLong     = "Title too long"
	MsgFormAmountPositive   = "Amount must be positive"
	MsgFormCategoryRequired = "Category is required"
	MsgFormCategoryUnknown  = "Category must be one of the listed categories"
	MsgFormDateRequired     = "Date is required"
)

// FormError lists the problems found in an expense form before it is sent.
type FormError struct {
	Problems []string
}

func (e *FormError) Error() string {
	return strings.Join(e.Problems, ", ")
}

// ValidateForm applies the stricter client rules: a positive amount and one of
// the fixed categories on top of what the server checks.
func ValidateForm(in client.Input) error {
	var problems []string

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		problems = append(problems, MsgFormTitleRequired)
	case utf8.RuneCountInString(title) > models.TitleMaxLength:
		problems = append(problems, MsgFormTitleTooLong)
	}

	if in.Amount <= 0 {
		problems = append(problems, MsgFormAmountPositive)
	}

	switch category := strings.TrimSpace(in.Category); {
	case category == "":
		problems = append(problems, MsgFormCategoryRequired)
	case !models.IsCategory(category):
		problems = append(problems, MsgFormCategoryUnknown)
	}

	if strings.TrimSpace(in.Date) == "" {
		problems = append(problems, MsgFormDateRequired)
	}

	if len(problems) > 0 {
		return &FormError{Problems: problems}
	}
	return nil
}
