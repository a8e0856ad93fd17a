package types

import "fmt"

// ScenarioStatus represents the lifecycle state of a scenario
type ScenarioStatus string

const (
	ScenarioStatusDraft    ScenarioStatus = "draft"
	ScenarioStatusActive   ScenarioStatus = "active"
	ScenarioStatusArchived ScenarioStatus = "archived"
)

// IsValid checks if the scenario status is valid
func (s ScenarioStatus) IsValid() bool {
	switch s {
	case ScenarioStatusDraft,
		ScenarioStatusActive,
		ScenarioStatusArchived:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as ScenarioStatusDraft
func (s ScenarioStatus) Normalize() ScenarioStatus {
	if s == "" {
		return ScenarioStatusDraft
	}
	return s
}

// String returns the string representation of the scenario status
func (s ScenarioStatus) String() string {
	return string(s)
}

// ParseScenarioStatus parses a string into a ScenarioStatus
func ParseScenarioStatus(s string) (ScenarioStatus, error) {
	status := ScenarioStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid scenario status: %s", s)
	}
	return status, nil
}
