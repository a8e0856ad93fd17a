package model

import (
	"math"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// PredictionValidity is how long a prediction stays valid. It does not depend
// on the requested timeframe.
const PredictionValidity = 180 * 24 * time.Hour

// Prediction is a single indicator forecast
type Prediction struct {
	ID             string          `json:"id" firestore:"id"`
	Indicator      types.Indicator `json:"indicator" firestore:"indicator"`
	Region         string          `json:"region" firestore:"region"`
	CurrentValue   float64         `json:"currentValue" firestore:"current_value"`
	PredictedValue float64         `json:"predictedValue" firestore:"predicted_value"`
	Change         float64         `json:"change" firestore:"change"`
	Confidence     float64         `json:"confidence" firestore:"confidence"`
	Timeframe      string          `json:"timeframe" firestore:"timeframe"`
	Trend          types.Direction `json:"trend" firestore:"trend"`
	Factors        []string        `json:"factors" firestore:"factors"`
	Methodology    string          `json:"methodology" firestore:"methodology"`
	CreatedAt      time.Time       `json:"createdAt" firestore:"created_at"`
	ValidUntil     time.Time       `json:"validUntil" firestore:"valid_until"`
}

// SetValues assigns the current/predicted pair and derives Trend and Change
// from their delta.
func (p *Prediction) SetValues(current, predicted float64) {
	p.CurrentValue = current
	p.PredictedValue = predicted
	p.Trend = types.DirectionFromDelta(predicted - current)
	p.Change = PercentChange(current, predicted)
}

// SetCreatedAt assigns CreatedAt and the fixed validity window
func (p *Prediction) SetCreatedAt(t time.Time) {
	p.CreatedAt = t
	p.ValidUntil = t.Add(PredictionValidity)
}

// PercentChange returns (predicted-current)/|current|*100 rounded to two
// decimals. A zero current value yields 0.
func PercentChange(current, predicted float64) float64 {
	if current == 0 {
		return 0
	}
	v := (predicted - current) / math.Abs(current) * 100
	return math.Round(v*100) / 100
}

// PredictionAnalysis is the validated reply of the predictive-analysis prompt
type PredictionAnalysis struct {
	PredictedValue float64  `json:"predictedValue"`
	Confidence     float64  `json:"confidence"`
	Factors        []string `json:"factors"`
	Methodology    string   `json:"methodology"`
}
