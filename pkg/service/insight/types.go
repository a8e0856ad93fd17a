package insight

import (
	"context"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrNotConfigured is the call error when no generative model is wired
	ErrNotConfigured = goerr.New("generative model is not configured")
	// ErrMalformedReply is the parse error for replies that are not JSON
	ErrMalformedReply = goerr.New("model reply is not valid JSON")
	// ErrMissingField is the parse error for JSON replies without a required field
	ErrMissingField = goerr.New("model reply lacks a required field")
)

// OutcomeKind says where a feature result came from
type OutcomeKind string

const (
	OutcomeLive          OutcomeKind = "live"
	OutcomeParseFallback OutcomeKind = "parse_fallback"
	OutcomeCallFallback  OutcomeKind = "call_fallback"
)

// Outcome accompanies every feature result. Err is the swallowed cause when
// Kind is not OutcomeLive.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// Degraded reports whether the result is a fallback
func (o Outcome) Degraded() bool {
	return o.Kind != OutcomeLive
}

// RiskInput is embedded into the risk-factor prompt
type RiskInput struct {
	Region     string                   `json:"region"`
	Indicators model.EconomicIndicators `json:"economicIndicators"`
	Headlines  []string                 `json:"recentHeadlines"`
}

// CrisisInput is embedded into the crisis-severity prompt
type CrisisInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
}

// PredictionInput is embedded into the predictive-analysis prompt
type PredictionInput struct {
	Region       string          `json:"region"`
	Indicator    types.Indicator `json:"indicator"`
	CurrentValue float64         `json:"currentValue"`
	Timeframe    string          `json:"timeframe"`
	Context      []string        `json:"context,omitempty"`
}

// CollaborationInput is embedded into the collaboration prompt
type CollaborationInput struct {
	Workspace    string   `json:"workspace"`
	Participants int      `json:"participants"`
	OpenTasks    []string `json:"openTasks"`
	Discussions  []string `json:"recentDiscussions"`
	Documents    []string `json:"documents"`
}

// Service runs the five prompt features. No method returns an error: a
// failure is replaced by the feature's fallback and reported in Outcome.
type Service interface {
	AnalyzeRisk(ctx context.Context, input RiskInput) (model.RiskAnalysis, Outcome)
	GenerateScenario(ctx context.Context, cfg model.ScenarioConfig) (model.ScenarioAnalysis, Outcome)
	AnalyzeCrisis(ctx context.Context, input CrisisInput) (model.CrisisAnalysis, Outcome)
	Predict(ctx context.Context, input PredictionInput) (model.PredictionAnalysis, Outcome)
	CollaborationInsights(ctx context.Context, input CollaborationInput) (model.CollaborationInsights, Outcome)
}
