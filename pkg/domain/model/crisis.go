package model

import (
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// CrisisAlert is recomputed on every monitoring cycle
type CrisisAlert struct {
	ID             string               `json:"id" firestore:"id"`
	Title          string               `json:"title" firestore:"title"`
	Severity       types.CrisisSeverity `json:"severity" firestore:"severity"`
	Region         string               `json:"region" firestore:"region"`
	Type           string               `json:"type" firestore:"type"`
	Description    string               `json:"description" firestore:"description"`
	Sources        []string             `json:"sources" firestore:"sources"`
	Timestamp      time.Time            `json:"timestamp" firestore:"timestamp"`
	EscalationRisk float64              `json:"escalationRisk" firestore:"escalation_risk"`
	// Fingerprint identifies the underlying article so a persisted alert is
	// not stored again on the next cycle.
	Fingerprint string `json:"fingerprint,omitempty" firestore:"fingerprint"`
}

// CrisisAnalysis is the validated reply of the crisis-severity prompt
type CrisisAnalysis struct {
	Severity        types.CrisisSeverity `json:"severity"`
	EscalationRisk  float64              `json:"escalationRisk"`
	KeyFactors      []string             `json:"keyFactors"`
	AffectedRegions []string             `json:"affectedRegions"`
}
