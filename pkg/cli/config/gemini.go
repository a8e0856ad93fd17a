package config

import (
	"context"
	"log/slog"

	"github.com/gametheory-pro/gtpro/pkg/service/gemini"
	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	vertex "github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

// Gemini holds configuration for the generative model. An API key selects
// the public REST endpoint; a project ID selects Vertex AI through gollem.
type Gemini struct {
	apiKey    string `masq:"secret"`
	model     string
	projectID string
	location  string
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "API key for the Gemini generateContent endpoint",
			Category:    "Gemini",
			Sources:     cli.EnvVars("GTPRO_GEMINI_API_KEY"),
			Destination: &g.apiKey,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model name",
			Category:    "Gemini",
			Value:       gemini.DefaultModel,
			Sources:     cli.EnvVars("GTPRO_GEMINI_MODEL"),
			Destination: &g.model,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini on Vertex AI (used when no API key is set)",
			Category:    "Gemini",
			Sources:     cli.EnvVars("GTPRO_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini on Vertex AI",
			Category:    "Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GTPRO_GEMINI_LOCATION"),
			Destination: &g.location,
		},
	}
}

// LogAttrs returns log attributes for the Gemini configuration
func (g *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("api_key.len", len(g.apiKey)),
		slog.String("model", g.model),
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
	}
}

// Configure creates the generative transport. Returns nil if neither an API
// key nor a project is configured; every AI feature then uses its fallback.
func (g *Gemini) Configure(ctx context.Context) (gemini.Service, error) {
	if g.apiKey != "" {
		hc := httpclient.New("gemini", httpclient.WithAPIKeyHeader(gemini.APIKeyHeader, g.apiKey))
		return gemini.NewREST(hc, gemini.WithModel(g.model)), nil
	}

	if g.projectID == "" {
		logging.From(ctx).Warn("Gemini is not configured, AI features will use fallbacks")
		return nil, nil
	}

	llm, err := vertex.New(ctx, g.projectID, g.location, vertex.WithModel(g.model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	svc, err := gemini.NewGollem(llm)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to wrap Gemini client")
	}
	return svc, nil
}
