package insight

import "github.com/gametheory-pro/gtpro/pkg/service/gemini"

const (
	defaultTopK = 40
	defaultTopP = 0.95
)

var (
	riskConfig = gemini.GenerationConfig{
		Temperature: 0.3, TopK: defaultTopK, TopP: defaultTopP, MaxOutputTokens: 2048,
	}
	scenarioConfig = gemini.GenerationConfig{
		Temperature: 0.7, TopK: defaultTopK, TopP: defaultTopP, MaxOutputTokens: 4096,
	}
	crisisConfig = gemini.GenerationConfig{
		Temperature: 0.2, TopK: defaultTopK, TopP: defaultTopP, MaxOutputTokens: 2048,
	}
	predictionConfig = gemini.GenerationConfig{
		Temperature: 0.3, TopK: defaultTopK, TopP: defaultTopP, MaxOutputTokens: 2048,
	}
	collaborationConfig = gemini.GenerationConfig{
		Temperature: 0.5, TopK: defaultTopK, TopP: defaultTopP, MaxOutputTokens: 2048,
	}
)
