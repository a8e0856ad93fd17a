package usecase

import (
	"context"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/service/economic"
	"github.com/gametheory-pro/gtpro/pkg/service/insight"
	"github.com/gametheory-pro/gtpro/pkg/service/mockdata"
	"github.com/gametheory-pro/gtpro/pkg/service/news"
	"github.com/gametheory-pro/gtpro/pkg/service/publisher"
	"github.com/gametheory-pro/gtpro/pkg/service/slack"
)

// UseCases wires the domain adapters to their collaborators. Every
// collaborator except the repository is optional; a missing one degrades to
// its fallback.
type UseCases struct {
	repo      interfaces.Repository
	insight   insight.Service
	news      news.Service
	economic  economic.Service
	mock      *mockdata.Generator
	catalog   *model.Catalog
	slack     slack.Service
	publisher publisher.Publisher
	now       func() time.Time

	slackMinSev types.CrisisSeverity

	Risk          *RiskUseCase
	Crisis        *CrisisUseCase
	Scenario      *ScenarioUseCase
	Prediction    *PredictionUseCase
	Collaboration *CollaborationUseCase
	Signals       *SignalsUseCase
	Persistence   *PersistenceUseCase
	Features      *FeatureUseCase
	Auth          Authenticator
}

type Option func(*UseCases)

func WithInsight(svc insight.Service) Option {
	return func(uc *UseCases) {
		uc.insight = svc
	}
}

func WithNews(svc news.Service) Option {
	return func(uc *UseCases) {
		uc.news = svc
	}
}

func WithEconomic(svc economic.Service) Option {
	return func(uc *UseCases) {
		uc.economic = svc
	}
}

// WithMockData sets the generator that stands in for unavailable upstreams
func WithMockData(g *mockdata.Generator) Option {
	return func(uc *UseCases) {
		uc.mock = g
	}
}

func WithCatalog(c *model.Catalog) Option {
	return func(uc *UseCases) {
		uc.catalog = c
	}
}

// WithSlack enables crisis alert notifications
func WithSlack(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slack = svc
	}
}

// WithSlackMinSeverity sets the lowest severity posted to Slack
func WithSlackMinSeverity(sev types.CrisisSeverity) Option {
	return func(uc *UseCases) {
		uc.slackMinSev = sev
	}
}

// WithPublisher enables crisis alert fan-out
func WithPublisher(p publisher.Publisher) Option {
	return func(uc *UseCases) {
		uc.publisher = p
	}
}

func WithAuth(auth Authenticator) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// WithClock replaces time.Now, used by tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.catalog == nil {
		uc.catalog = model.DefaultCatalog()
	}
	if uc.insight == nil {
		uc.insight = insight.New(nil, insight.WithCatalog(uc.catalog))
	}
	if uc.mock == nil {
		uc.mock = mockdata.NewSeeded(uint64(time.Now().UnixNano()), mockdata.WithCatalog(uc.catalog))
	}
	if uc.publisher == nil {
		uc.publisher = publisher.Nop{}
	}
	if uc.Auth == nil {
		uc.Auth = denyAll{}
	}

	uc.Persistence = &PersistenceUseCase{repo: repo, now: uc.now}
	uc.Features = &FeatureUseCase{kv: repo.KV()}
	uc.Risk = newRiskUseCase(uc)
	uc.Crisis = newCrisisUseCase(uc)
	uc.Scenario = &ScenarioUseCase{uc: uc}
	uc.Prediction = &PredictionUseCase{uc: uc}
	uc.Collaboration = &CollaborationUseCase{uc: uc}
	uc.Signals = &SignalsUseCase{uc: uc}

	return uc
}

// indicators returns the live snapshot of region or the catalog baseline
// together with the reason the live snapshot was not used
func (uc *UseCases) indicators(ctx context.Context, region string) (model.EconomicIndicators, error) {
	if uc.economic == nil {
		return uc.catalog.Indicators(region), economic.ErrNotConfigured
	}
	ind, err := uc.economic.Indicators(ctx, region)
	if err != nil {
		return uc.catalog.Indicators(region), err
	}
	return *ind, nil
}

// headlines returns live articles matching query or generated substitutes
// for category together with the reason live articles were not used
func (uc *UseCases) headlines(ctx context.Context, query, category string, limit int) ([]model.NewsArticle, error) {
	if uc.news == nil {
		return uc.mock.NewsArticles(category, limit), news.ErrNotConfigured
	}
	articles, err := uc.news.Search(ctx, query, limit)
	if err != nil {
		return uc.mock.NewsArticles(category, limit), err
	}
	if len(articles) == 0 {
		return uc.mock.NewsArticles(category, limit), errNoArticles
	}
	return articles, nil
}
