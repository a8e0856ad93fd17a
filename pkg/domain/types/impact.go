package types

import "strings"

// Impact rates how strongly a scenario outcome affects the region
type Impact string

const (
	ImpactLow      Impact = "low"
	ImpactMedium   Impact = "medium"
	ImpactHigh     Impact = "high"
	ImpactCritical Impact = "critical"
)

// IsValid checks if the impact is valid
func (i Impact) IsValid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh, ImpactCritical:
		return true
	default:
		return false
	}
}

// NormalizeImpact lowercases s and returns ImpactMedium when it is not a known impact
func NormalizeImpact(s string) Impact {
	i := Impact(strings.ToLower(strings.TrimSpace(s)))
	if !i.IsValid() {
		return ImpactMedium
	}
	return i
}

// String returns the string representation of the impact
func (i Impact) String() string {
	return string(i)
}
