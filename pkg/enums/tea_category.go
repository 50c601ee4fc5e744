package enums

import "fmt"

// TeaCategory represents the canonical tea categories supported by the catalog.
type TeaCategory string

const (
	TeaCategoryGreen  TeaCategory = "green"
	TeaCategoryBlack  TeaCategory = "black"
	TeaCategoryOolong TeaCategory = "oolong"
	TeaCategoryWhite  TeaCategory = "white"
	TeaCategoryHerbal TeaCategory = "herbal"
	TeaCategoryPuErh  TeaCategory = "pu-erh"
)

var validTeaCategories = []TeaCategory{
	TeaCategoryGreen,
	TeaCategoryBlack,
	TeaCategoryOolong,
	TeaCategoryWhite,
	TeaCategoryHerbal,
	TeaCategoryPuErh,
}

// String implements fmt.Stringer.
func (c TeaCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known TeaCategory.
func (c TeaCategory) IsValid() bool {
	for _, candidate := range validTeaCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseTeaCategory converts raw input into a TeaCategory.
func ParseTeaCategory(value string) (TeaCategory, error) {
	for _, candidate := range validTeaCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tea category %q", value)
}
