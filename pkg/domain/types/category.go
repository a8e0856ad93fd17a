package types

import "fmt"

// FactorCategory groups risk factors by domain
type FactorCategory string

const (
	FactorCategoryEconomic      FactorCategory = "economic"
	FactorCategoryPolitical     FactorCategory = "political"
	FactorCategorySocial        FactorCategory = "social"
	FactorCategoryMilitary      FactorCategory = "military"
	FactorCategoryEnvironmental FactorCategory = "environmental"
)

// AllFactorCategories returns all valid factor categories
func AllFactorCategories() []FactorCategory {
	return []FactorCategory{
		FactorCategoryEconomic,
		FactorCategoryPolitical,
		FactorCategorySocial,
		FactorCategoryMilitary,
		FactorCategoryEnvironmental,
	}
}

// IsValid checks if the factor category is valid
func (c FactorCategory) IsValid() bool {
	switch c {
	case FactorCategoryEconomic,
		FactorCategoryPolitical,
		FactorCategorySocial,
		FactorCategoryMilitary,
		FactorCategoryEnvironmental:
		return true
	default:
		return false
	}
}

// String returns the string representation of the factor category
func (c FactorCategory) String() string {
	return string(c)
}

// ParseFactorCategory parses a string into a FactorCategory
func ParseFactorCategory(s string) (FactorCategory, error) {
	c := FactorCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid factor category: %s", s)
	}
	return c, nil
}
