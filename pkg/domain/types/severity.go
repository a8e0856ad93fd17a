package types

import (
	"fmt"
	"strings"
)

// FactorSeverity is the severity of a single risk factor
type FactorSeverity string

const (
	FactorSeverityLow      FactorSeverity = "low"
	FactorSeverityMedium   FactorSeverity = "medium"
	FactorSeverityHigh     FactorSeverity = "high"
	FactorSeverityCritical FactorSeverity = "critical"
)

// IsValid checks if the factor severity is valid
func (s FactorSeverity) IsValid() bool {
	switch s {
	case FactorSeverityLow,
		FactorSeverityMedium,
		FactorSeverityHigh,
		FactorSeverityCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the factor severity
func (s FactorSeverity) String() string {
	return string(s)
}

// FactorSeverityFromScore maps a 0-100 likelihood*impact style score to a severity
func FactorSeverityFromScore(score float64) FactorSeverity {
	switch {
	case score > 75:
		return FactorSeverityCritical
	case score > 50:
		return FactorSeverityHigh
	case score > 25:
		return FactorSeverityMedium
	default:
		return FactorSeverityLow
	}
}

// CrisisSeverity is the severity of a crisis alert. Values are capitalized
// because they are rendered verbatim by the dashboard.
type CrisisSeverity string

const (
	CrisisSeverityLow      CrisisSeverity = "Low"
	CrisisSeverityMedium   CrisisSeverity = "Medium"
	CrisisSeverityHigh     CrisisSeverity = "High"
	CrisisSeverityCritical CrisisSeverity = "Critical"
)

// AllCrisisSeverities returns all crisis severities ordered from lowest to highest
func AllCrisisSeverities() []CrisisSeverity {
	return []CrisisSeverity{
		CrisisSeverityLow,
		CrisisSeverityMedium,
		CrisisSeverityHigh,
		CrisisSeverityCritical,
	}
}

// IsValid checks if the crisis severity is valid
func (s CrisisSeverity) IsValid() bool {
	return s.Rank() > 0
}

// Rank returns 1 (Low) to 4 (Critical), or 0 for an unknown value
func (s CrisisSeverity) Rank() int {
	switch s {
	case CrisisSeverityLow:
		return 1
	case CrisisSeverityMedium:
		return 2
	case CrisisSeverityHigh:
		return 3
	case CrisisSeverityCritical:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether s is as severe as min or more
func (s CrisisSeverity) AtLeast(min CrisisSeverity) bool {
	return s.Rank() >= min.Rank()
}

// Color returns the display color used by the dashboard for the severity
func (s CrisisSeverity) Color() string {
	switch s {
	case CrisisSeverityCritical:
		return "red"
	case CrisisSeverityHigh:
		return "orange"
	case CrisisSeverityMedium:
		return "yellow"
	default:
		return "blue"
	}
}

// String returns the string representation of the crisis severity
func (s CrisisSeverity) String() string {
	return string(s)
}

// ParseCrisisSeverity parses a severity case-insensitively ("high" -> High)
func ParseCrisisSeverity(s string) (CrisisSeverity, error) {
	for _, sev := range AllCrisisSeverities() {
		if strings.EqualFold(string(sev), strings.TrimSpace(s)) {
			return sev, nil
		}
	}
	return "", fmt.Errorf("invalid crisis severity: %s", s)
}
