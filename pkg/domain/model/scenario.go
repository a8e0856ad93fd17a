package model

import (
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// Scenario is a what-if setup whose outcomes are produced by simulation
type Scenario struct {
	ID          string               `json:"id" firestore:"id"`
	UserID      string               `json:"userId,omitempty" firestore:"user_id"`
	Title       string               `json:"title" firestore:"title"`
	Description string               `json:"description" firestore:"description"`
	Region      string               `json:"region" firestore:"region"`
	Category    string               `json:"category" firestore:"category"`
	Parameters  map[string]any       `json:"parameters" firestore:"parameters"`
	Outcomes    []ScenarioOutcome    `json:"outcomes" firestore:"outcomes"`
	Probability float64              `json:"probability" firestore:"probability"`
	Timeframe   string               `json:"timeframe" firestore:"timeframe"`
	Status      types.ScenarioStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time            `json:"createdAt" firestore:"created_at"`
	UpdatedAt   time.Time            `json:"updatedAt" firestore:"updated_at"`
}

// Validate checks the fields a client must provide
func (s *Scenario) Validate() error {
	if s.Title == "" {
		return goerrMissing("title")
	}
	if s.Region == "" {
		return goerrMissing("region")
	}
	if s.Status != "" && !s.Status.IsValid() {
		return goerrInvalid("status", s.Status)
	}
	return nil
}

// Config returns the simulation input derived from the scenario
func (s *Scenario) Config() ScenarioConfig {
	return ScenarioConfig{
		Title:       s.Title,
		Description: s.Description,
		Region:      s.Region,
		Category:    s.Category,
		Parameters:  s.Parameters,
		Timeframe:   s.Timeframe,
	}
}

// ScenarioOutcome is one possible future state. Probabilities of sibling
// outcomes are not required to sum to 100.
type ScenarioOutcome struct {
	ID           string       `json:"id" firestore:"id"`
	Title        string       `json:"title" firestore:"title"`
	Description  string       `json:"description" firestore:"description"`
	Probability  float64      `json:"probability" firestore:"probability"`
	Impact       types.Impact `json:"impact" firestore:"impact"`
	Timeframe    string       `json:"timeframe" firestore:"timeframe"`
	Consequences []string     `json:"consequences" firestore:"consequences"`
	Mitigation   []string     `json:"mitigation" firestore:"mitigation"`
}

// ScenarioConfig is the body accepted by the scenario-simulation function
type ScenarioConfig struct {
	ScenarioID  string         `json:"scenarioId,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Region      string         `json:"region"`
	Category    string         `json:"category"`
	Parameters  map[string]any `json:"parameters"`
	Timeframe   string         `json:"timeframe"`
}

// Validate checks the fields a simulation needs
func (c ScenarioConfig) Validate() error {
	if c.Title == "" {
		return goerrMissing("title")
	}
	if c.Region == "" {
		return goerrMissing("region")
	}
	return nil
}

// ScenarioAnalysis is the validated reply of the scenario-outcome prompt
type ScenarioAnalysis struct {
	Outcomes        []ScenarioOutcome `json:"outcomes"`
	Confidence      float64           `json:"confidence"`
	KeyInsights     []string          `json:"keyInsights"`
	Recommendations []string          `json:"recommendations"`
}

// SimulationRecord is the persisted row of one simulation run
type SimulationRecord struct {
	ID         string            `json:"id" firestore:"id"`
	UserID     string            `json:"userId" firestore:"user_id"`
	ScenarioID string            `json:"scenarioId,omitempty" firestore:"scenario_id"`
	Config     ScenarioConfig    `json:"config" firestore:"config"`
	Outcomes   []ScenarioOutcome `json:"outcomes" firestore:"outcomes"`
	Confidence float64           `json:"confidence" firestore:"confidence"`
	Degraded   bool              `json:"degraded" firestore:"degraded"`
	CreatedAt  time.Time         `json:"createdAt" firestore:"created_at"`
}
