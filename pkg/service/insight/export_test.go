package insight

import "github.com/gametheory-pro/gtpro/pkg/domain/model"

var (
	StripFence         = stripFence
	Truncate           = truncate
	ParseRisk          = parseRisk
	ParseScenario      = parseScenario
	ParseCrisis        = parseCrisis
	ParsePrediction    = parsePrediction
	ParseCollaboration = parseCollaboration

	RiskConfig          = riskConfig
	ScenarioConfig      = scenarioConfig
	CrisisConfig        = crisisConfig
	PredictionConfig    = predictionConfig
	CollaborationConfig = collaborationConfig
)

func RiskParseFallback() model.RiskAnalysis            { return riskParseFallback() }
func ScenarioFallback() model.ScenarioAnalysis         { return scenarioFallback() }
func CrisisFallback(title string) model.CrisisAnalysis { return crisisFallback(title) }
func PredictionFallback(v float64) model.PredictionAnalysis {
	return predictionFallback(v)
}
func CollaborationFallback() model.CollaborationInsights { return collaborationFallback() }
