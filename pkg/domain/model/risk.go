package model

import (
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// RiskAssessment is the result of one region risk analysis. It is superseded,
// never mutated, when the region is analyzed again.
type RiskAssessment struct {
	ID               string          `json:"id" firestore:"id"`
	UserID           string          `json:"userId,omitempty" firestore:"user_id"`
	Region           string          `json:"region" firestore:"region"`
	OverallRiskScore float64         `json:"overallRiskScore" firestore:"overall_risk_score"`
	RiskLevel        types.RiskLevel `json:"riskLevel" firestore:"risk_level"`
	Confidence       float64         `json:"confidence" firestore:"confidence"`
	Factors          []RiskFactor    `json:"factors" firestore:"factors"`
	Trends           []RiskTrend     `json:"trends" firestore:"trends"`
	Recommendations  []string        `json:"recommendations" firestore:"recommendations"`
	LastAnalyzed     time.Time       `json:"lastAnalyzed" firestore:"last_analyzed"`
}

// SetScore clamps score into 0-100 and derives RiskLevel from it. It is the
// only way adapters assign the overall score so the level can never drift.
func (a *RiskAssessment) SetScore(score float64) {
	a.OverallRiskScore = ClampScore(score)
	a.RiskLevel = types.RiskLevelFromScore(a.OverallRiskScore)
}

// RiskFactor is owned by exactly one RiskAssessment
type RiskFactor struct {
	ID          string               `json:"id" firestore:"id"`
	Name        string               `json:"name" firestore:"name"`
	Description string               `json:"description" firestore:"description"`
	Severity    types.FactorSeverity `json:"severity" firestore:"severity"`
	Likelihood  float64              `json:"likelihood" firestore:"likelihood"`
	Impact      float64              `json:"impact" firestore:"impact"`
	Category    types.FactorCategory `json:"category" firestore:"category"`
	Region      string               `json:"region" firestore:"region"`
	Sources     []string             `json:"sources" firestore:"sources"`
	LastUpdated time.Time            `json:"lastUpdated" firestore:"last_updated"`
}

// RiskTrend describes how a factor is moving
type RiskTrend struct {
	Factor    string          `json:"factor" firestore:"factor"`
	Direction types.Direction `json:"direction" firestore:"direction"`
	Rate      float64         `json:"rate" firestore:"rate"`
}

// RiskAnalysis is the validated reply of the risk-factor prompt
type RiskAnalysis struct {
	RiskScore       float64     `json:"riskScore"`
	Confidence      float64     `json:"confidence"`
	RiskFactors     []string    `json:"riskFactors"`
	Recommendations []string    `json:"recommendations"`
	Trends          []RiskTrend `json:"trends,omitempty"`
}

// RiskAssessmentRequest is the body accepted by the risk-assessment function
type RiskAssessmentRequest struct {
	Region     string              `json:"region"`
	Indicators *EconomicIndicators `json:"indicators,omitempty"`
	Headlines  []string            `json:"headlines,omitempty"`
}
