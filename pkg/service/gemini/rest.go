package gemini

import (
	"context"
	"strings"

	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash"
)

// restClient calls the public generateContent endpoint with an API key
type restClient struct {
	http    *httpclient.Client
	baseURL string
	model   string
}

type RESTOption func(*restClient)

// WithBaseURL overrides the endpoint, used by tests
func WithBaseURL(u string) RESTOption {
	return func(c *restClient) {
		c.baseURL = u
	}
}

// WithModel selects the model name
func WithModel(model string) RESTOption {
	return func(c *restClient) {
		if model != "" {
			c.model = model
		}
	}
}

// APIKeyHeader is the request header the generateContent endpoint reads the key from
const APIKeyHeader = "x-goog-api-key"

// NewREST creates a Service over hc, which must carry the API key in
// APIKeyHeader
func NewREST(hc *httpclient.Client, opts ...RESTOption) Service {
	c := &restClient{
		http:    hc,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *restClient) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfigObject{
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	}

	var resp generateResponse
	path := "/v1beta/models/" + c.model + ":generateContent"
	if err := c.http.PostJSON(ctx, c.baseURL, path, nil, req, &resp); err != nil {
		return "", goerr.Wrap(err, "failed to call generative model", goerr.V("model", c.model))
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", goerr.Wrap(ErrEmptyResponse, "no text in response", goerr.V("model", c.model))
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", goerr.Wrap(ErrEmptyResponse, "empty text in response",
			goerr.V("model", c.model), goerr.V("finish_reason", resp.Candidates[0].FinishReason))
	}
	return text, nil
}
