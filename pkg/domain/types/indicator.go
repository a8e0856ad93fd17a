package types

import "fmt"

// Indicator names an economic or political time series that can be forecast
type Indicator string

const (
	IndicatorGDPGrowth          Indicator = "gdp_growth"
	IndicatorInflation          Indicator = "inflation"
	IndicatorUnemployment       Indicator = "unemployment"
	IndicatorPoliticalStability Indicator = "political_stability"
)

// AllIndicators returns every forecastable indicator
func AllIndicators() []Indicator {
	return []Indicator{
		IndicatorGDPGrowth,
		IndicatorInflation,
		IndicatorUnemployment,
		IndicatorPoliticalStability,
	}
}

// IsValid checks if the indicator is valid
func (i Indicator) IsValid() bool {
	switch i {
	case IndicatorGDPGrowth,
		IndicatorInflation,
		IndicatorUnemployment,
		IndicatorPoliticalStability:
		return true
	default:
		return false
	}
}

// Label returns the human readable name of the indicator
func (i Indicator) Label() string {
	switch i {
	case IndicatorGDPGrowth:
		return "GDP Growth"
	case IndicatorInflation:
		return "Inflation"
	case IndicatorUnemployment:
		return "Unemployment"
	case IndicatorPoliticalStability:
		return "Political Stability"
	default:
		return string(i)
	}
}

// String returns the string representation of the indicator
func (i Indicator) String() string {
	return string(i)
}

// ParseIndicator parses a string into an Indicator
func ParseIndicator(s string) (Indicator, error) {
	i := Indicator(s)
	if !i.IsValid() {
		return "", fmt.Errorf("invalid indicator: %s", s)
	}
	return i, nil
}
