package gemini

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// gollemClient runs prompts through a gollem LLM client (Vertex AI). Sampling
// parameters are fixed when the LLM client is built, so cfg is only used for
// logging context.
type gollemClient struct {
	llm gollem.LLMClient
}

// NewGollem wraps llm as a Service
func NewGollem(llm gollem.LLMClient) (Service, error) {
	if llm == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &gollemClient{llm: llm}, nil
}

func (c *gollemClient) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	session, err := c.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM",
			goerr.V("temperature", cfg.Temperature), goerr.V("max_output_tokens", cfg.MaxOutputTokens))
	}

	if resp == nil || len(resp.Texts) == 0 || resp.Texts[0] == "" {
		return "", goerr.Wrap(ErrEmptyResponse, "no text in LLM response")
	}
	return resp.Texts[0], nil
}
