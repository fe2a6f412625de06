package domain

// Category classifies the purpose of a transaction.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryEducation     Category = "education"
	CategoryHealth        Category = "health"
	CategoryOther         Category = "other"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryEducation,
	CategoryHealth,
	CategoryOther,
}

// IsValid reports whether c is part of the fixed enumeration.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
