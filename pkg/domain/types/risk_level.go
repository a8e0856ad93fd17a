package types

import "fmt"

// RiskLevel is the four-bucket classification of an overall risk score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelModerate RiskLevel = "moderate"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// RiskLevelFromScore buckets a 0-100 score. Boundaries are exclusive on the
// lower side: 75 is high, 75.01 is critical.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score > 75:
		return RiskLevelCritical
	case score > 50:
		return RiskLevelHigh
	case score > 25:
		return RiskLevelModerate
	default:
		return RiskLevelLow
	}
}

// AllRiskLevels returns all valid risk levels ordered from lowest to highest
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelModerate,
		RiskLevelHigh,
		RiskLevelCritical,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow,
		RiskLevelModerate,
		RiskLevelHigh,
		RiskLevelCritical:
		return true
	default:
		return false
	}
}

// Color returns the display color used by the dashboard for the level
func (l RiskLevel) Color() string {
	switch l {
	case RiskLevelCritical:
		return "red"
	case RiskLevelHigh:
		return "orange"
	case RiskLevelModerate:
		return "yellow"
	default:
		return "green"
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return level, nil
}
