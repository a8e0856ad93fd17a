package insight

import (
	"context"
	"log/slog"
	"text/template"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/service/gemini"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
)

type client struct {
	gen     gemini.Service
	catalog *model.Catalog
}

type Option func(*client)

// WithCatalog sets the tables used by the regional risk fallback
func WithCatalog(c *model.Catalog) Option {
	return func(cl *client) {
		cl.catalog = c
	}
}

// New creates a Service. gen may be nil, in which case every feature
// returns its call fallback.
func New(gen gemini.Service, opts ...Option) Service {
	c := &client{gen: gen, catalog: model.DefaultCatalog()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ask renders the prompt and calls the model. A non-nil error means the call
// failed and the caller must use its call fallback.
func (c *client) ask(ctx context.Context, feature string, tmpl *template.Template, input any, cfg gemini.GenerationConfig) (string, error) {
	if c.gen == nil {
		return "", ErrNotConfigured
	}
	prompt, err := render(tmpl, input)
	if err != nil {
		return "", err
	}
	logging.From(ctx).Debug("calling generative model", slog.String("feature", feature), slog.Int("prompt_len", len(prompt)))
	return c.gen.Generate(ctx, prompt, cfg)
}

func fallback(ctx context.Context, feature string, kind OutcomeKind, err error) Outcome {
	logging.From(ctx).Warn("using fallback insight",
		slog.String("feature", feature),
		slog.String("outcome", string(kind)),
		slog.Any("error", err),
	)
	return Outcome{Kind: kind, Err: err}
}

var live = Outcome{Kind: OutcomeLive}

func (c *client) AnalyzeRisk(ctx context.Context, input RiskInput) (model.RiskAnalysis, Outcome) {
	reply, err := c.ask(ctx, "risk", riskPrompt, input, riskConfig)
	if err != nil {
		return riskCallFallback(c.catalog, input.Region), fallback(ctx, "risk", OutcomeCallFallback, err)
	}
	result, err := parseRisk(reply)
	if err != nil {
		return riskParseFallback(), fallback(ctx, "risk", OutcomeParseFallback, err)
	}
	return result, live
}

func (c *client) GenerateScenario(ctx context.Context, cfg model.ScenarioConfig) (model.ScenarioAnalysis, Outcome) {
	reply, err := c.ask(ctx, "scenario", scenarioPrompt, cfg, scenarioConfig)
	if err != nil {
		return scenarioFallback(), fallback(ctx, "scenario", OutcomeCallFallback, err)
	}
	result, err := parseScenario(reply)
	if err != nil {
		return scenarioFallback(), fallback(ctx, "scenario", OutcomeParseFallback, err)
	}
	return result, live
}

func (c *client) AnalyzeCrisis(ctx context.Context, input CrisisInput) (model.CrisisAnalysis, Outcome) {
	reply, err := c.ask(ctx, "crisis", crisisPrompt, input, crisisConfig)
	if err != nil {
		return crisisFallback(input.Title), fallback(ctx, "crisis", OutcomeCallFallback, err)
	}
	result, err := parseCrisis(reply)
	if err != nil {
		return crisisFallback(input.Title), fallback(ctx, "crisis", OutcomeParseFallback, err)
	}
	return result, live
}

func (c *client) Predict(ctx context.Context, input PredictionInput) (model.PredictionAnalysis, Outcome) {
	reply, err := c.ask(ctx, "prediction", predictionPrompt, input, predictionConfig)
	if err != nil {
		return predictionFallback(input.CurrentValue), fallback(ctx, "prediction", OutcomeCallFallback, err)
	}
	result, err := parsePrediction(reply)
	if err != nil {
		return predictionFallback(input.CurrentValue), fallback(ctx, "prediction", OutcomeParseFallback, err)
	}
	return result, live
}

func (c *client) CollaborationInsights(ctx context.Context, input CollaborationInput) (model.CollaborationInsights, Outcome) {
	reply, err := c.ask(ctx, "collaboration", collaborationPrompt, input, collaborationConfig)
	if err != nil {
		return collaborationFallback(), fallback(ctx, "collaboration", OutcomeCallFallback, err)
	}
	result, err := parseCollaboration(reply)
	if err != nil {
		return collaborationFallback(), fallback(ctx, "collaboration", OutcomeParseFallback, err)
	}
	return result, live
}
