package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/service/insight"
)

type fakeNews struct {
	search func(ctx context.Context, query string, limit int) ([]model.NewsArticle, error)
}

func (f *fakeNews) Search(ctx context.Context, query string, limit int) ([]model.NewsArticle, error) {
	return f.search(ctx, query, limit)
}

type fakeEconomic struct {
	indicators func(ctx context.Context, region string) (*model.EconomicIndicators, error)
}

func (f *fakeEconomic) Indicators(ctx context.Context, region string) (*model.EconomicIndicators, error) {
	return f.indicators(ctx, region)
}

type fakeSlack struct {
	mu     sync.Mutex
	posted []*model.CrisisAlert
}

func (f *fakeSlack) PostCrisisAlert(ctx context.Context, alert *model.CrisisAlert) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, alert)
	return "1700000000.000100", nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*model.CrisisAlert
}

func (f *fakePublisher) PublishCrisisAlerts(ctx context.Context, alerts []*model.CrisisAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, alerts...)
	return nil
}

func (f *fakePublisher) Close() error {
	return nil
}

func fixedClock() func() time.Time {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func articles(titles ...string) []model.NewsArticle {
	out := make([]model.NewsArticle, 0, len(titles))
	for i, title := range titles {
		out = append(out, model.NewsArticle{
			Title:       title,
			Description: title + " (details)",
			URL:         "https://news.example.com/" + string(rune('a'+i)),
			Source:      "Example Wire",
			PublishedAt: time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC),
		})
	}
	return out
}

// fakeInsight answers with the configured functions and falls back to the
// unconfigured service for the rest
type fakeInsight struct {
	insight.Service
	analyzeRisk      func(ctx context.Context, input insight.RiskInput) (model.RiskAnalysis, insight.Outcome)
	generateScenario func(ctx context.Context, cfg model.ScenarioConfig) (model.ScenarioAnalysis, insight.Outcome)
	predict          func(ctx context.Context, input insight.PredictionInput) (model.PredictionAnalysis, insight.Outcome)
}

func newFakeInsight() *fakeInsight {
	return &fakeInsight{Service: insight.New(nil)}
}

func (f *fakeInsight) AnalyzeRisk(ctx context.Context, input insight.RiskInput) (model.RiskAnalysis, insight.Outcome) {
	if f.analyzeRisk != nil {
		return f.analyzeRisk(ctx, input)
	}
	return f.Service.AnalyzeRisk(ctx, input)
}

func (f *fakeInsight) GenerateScenario(ctx context.Context, cfg model.ScenarioConfig) (model.ScenarioAnalysis, insight.Outcome) {
	if f.generateScenario != nil {
		return f.generateScenario(ctx, cfg)
	}
	return f.Service.GenerateScenario(ctx, cfg)
}

func (f *fakeInsight) Predict(ctx context.Context, input insight.PredictionInput) (model.PredictionAnalysis, insight.Outcome) {
	if f.predict != nil {
		return f.predict(ctx, input)
	}
	return f.Service.Predict(ctx, input)
}
