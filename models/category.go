package models

// Fixed expense categories offered by the client side
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills"
	CategoryHealth        = "Health"
	CategoryOther         = "Other"
)

// CategoryAll is the filter wildcard matching every category.
const CategoryAll = "all"

// GetCategories returns the fixed categories in display order
func GetCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryHealth,
		CategoryOther,
	}
}

// IsCategory reports whether name is one of the fixed categories.
func IsCategory(name string) bool {
	for _, c := range GetCategories() {
		if c == name {
			return true
		}
	}
	return false
}
