package enums

import "fmt"

// CaffeineLevel describes how much caffeine a tea carries.
type CaffeineLevel string

const (
	CaffeineLevelNone   CaffeineLevel = "none"
	CaffeineLevelLow    CaffeineLevel = "low"
	CaffeineLevelMedium CaffeineLevel = "medium"
	CaffeineLevelHigh   CaffeineLevel = "high"
)

var validCaffeineLevels = []CaffeineLevel{
	CaffeineLevelNone,
	CaffeineLevelLow,
	CaffeineLevelMedium,
	CaffeineLevelHigh,
}

// String implements fmt.Stringer.
func (l CaffeineLevel) String() string {
	return string(l)
}

// IsValid reports whether the value is a known CaffeineLevel.
func (l CaffeineLevel) IsValid() bool {
	for _, candidate := range validCaffeineLevels {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseCaffeineLevel converts raw input into a CaffeineLevel.
func ParseCaffeineLevel(value string) (CaffeineLevel, error) {
	for _, candidate := range validCaffeineLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid caffeine level %q", value)
}
