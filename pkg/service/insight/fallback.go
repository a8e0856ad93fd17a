package insight

import (
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// riskParseFallback is used when the model answered with an unusable reply
func riskParseFallback() model.RiskAnalysis {
	return model.RiskAnalysis{
		RiskScore:       50,
		Confidence:      30,
		RiskFactors:     []string{"Data parsing error"},
		Recommendations: []string{"Manual analysis recommended"},
		Trends:          []model.RiskTrend{},
	}
}

// riskCallFallback is used when the model could not be reached. Regions in
// the catalog get their regional entry.
func riskCallFallback(catalog *model.Catalog, region string) model.RiskAnalysis {
	if fb, ok := catalog.RiskFallback(region); ok {
		fb.Trends = []model.RiskTrend{}
		return fb
	}
	return model.RiskAnalysis{
		RiskScore:       50,
		Confidence:      30,
		RiskFactors:     []string{"Limited data availability"},
		Recommendations: []string{"Manual analysis recommended"},
		Trends:          []model.RiskTrend{},
	}
}

func scenarioFallback() model.ScenarioAnalysis {
	return model.ScenarioAnalysis{
		Outcomes: []model.ScenarioOutcome{
			{
				ID:           "outcome-1",
				Title:        "Status Quo Maintained",
				Description:  "Current conditions persist with no significant change in the balance of interests.",
				Probability:  50,
				Impact:       types.ImpactMedium,
				Timeframe:    "6-12 months",
				Consequences: []string{"Continued uncertainty", "Limited policy change"},
				Mitigation:   []string{"Maintain monitoring", "Keep contingency plans current"},
			},
			{
				ID:           "outcome-2",
				Title:        "Gradual Escalation",
				Description:  "Tensions rise step by step as parties respond to each other's moves.",
				Probability:  30,
				Impact:       types.ImpactHigh,
				Timeframe:    "3-6 months",
				Consequences: []string{"Increased volatility", "Pressure on supply chains"},
				Mitigation:   []string{"Diversify exposure", "Prepare escalation playbooks"},
			},
			{
				ID:           "outcome-3",
				Title:        "Diplomatic Resolution",
				Description:  "Negotiations produce an agreement that reduces tensions.",
				Probability:  20,
				Impact:       types.ImpactLow,
				Timeframe:    "12-24 months",
				Consequences: []string{"Improved stability", "Gradual market recovery"},
				Mitigation:   []string{"Support confidence-building measures"},
			},
		},
		Confidence:      40,
		KeyInsights:     []string{"AI analysis unavailable; baseline outcomes shown"},
		Recommendations: []string{"Re-run the simulation later for a tailored analysis"},
	}
}

var highSeverityKeywords = []string{"war", "attack*", "disaster"}

// crisisFallback classifies by keyword: war, attack or disaster as words in
// the title mean High, anything else Medium
func crisisFallback(title string) model.CrisisAnalysis {
	for _, kw := range highSeverityKeywords {
		if model.MatchKeyword(title, kw) {
			return model.CrisisAnalysis{
				Severity:        types.CrisisSeverityHigh,
				EscalationRisk:  70,
				KeyFactors:      []string{"Keyword-based classification"},
				AffectedRegions: []string{},
			}
		}
	}
	return model.CrisisAnalysis{
		Severity:        types.CrisisSeverityMedium,
		EscalationRisk:  40,
		KeyFactors:      []string{"Keyword-based classification"},
		AffectedRegions: []string{},
	}
}

func predictionFallback(current float64) model.PredictionAnalysis {
	return model.PredictionAnalysis{
		PredictedValue: current,
		Confidence:     50,
		Factors:        []string{"Insufficient data for AI forecast"},
		Methodology:    "Baseline persistence (fallback)",
	}
}

func collaborationFallback() model.CollaborationInsights {
	return model.CollaborationInsights{
		Summary:         "Collaboration insights are temporarily unavailable",
		ConsensusLevel:  50,
		KeyThemes:       []string{},
		Recommendations: []string{"Review recent discussions manually"},
		ActionItems:     []string{},
	}
}
