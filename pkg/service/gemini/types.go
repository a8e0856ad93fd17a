package gemini

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = goerr.New("generative model returned no candidates")

// GenerationConfig controls sampling for one request
type GenerationConfig struct {
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

// Service sends a single prompt to a generative model and returns the text
// of the first candidate
type Service interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

type generateRequest struct {
	Contents         []content              `json:"contents"`
	GenerationConfig generationConfigObject `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfigObject struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}
