package mockdata

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// Generator produces plausible substitute data when a live provider fails.
// Output is fully determined by the injected random source and clock.
type Generator struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	now     func() time.Time
	catalog *model.Catalog
}

type Option func(*Generator)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithCatalog sets the tables used for regional baselines
func WithCatalog(c *model.Catalog) Option {
	return func(g *Generator) {
		g.catalog = c
	}
}

// New creates a Generator over src
func New(src rand.Source, opts ...Option) *Generator {
	g := &Generator{
		rnd:     rand.New(src),
		now:     time.Now,
		catalog: model.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSeeded creates a Generator with a PCG source seeded by seed
func NewSeeded(seed uint64, opts ...Option) *Generator {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), opts...)
}

func (g *Generator) intn(n int) int {
	return g.rnd.IntN(n)
}

// between returns a value in [lo, hi) rounded to one decimal
func (g *Generator) between(lo, hi float64) float64 {
	return math.Round((lo+g.rnd.Float64()*(hi-lo))*10) / 10
}

func selectPool(category string) pool {
	key := strings.ToLower(category)
	for _, p := range pools {
		for _, kw := range p.keywords {
			if strings.Contains(key, kw) {
				return p
			}
		}
	}
	return generalPool
}

// NewsArticles returns n articles drawn from the pool matching category
func (g *Generator) NewsArticles(category string, n int) []model.NewsArticle {
	g.mu.Lock()
	defer g.mu.Unlock()

	n = max(n, 0)
	p := selectPool(category)
	now := g.now().UTC()
	articles := make([]model.NewsArticle, 0, n)
	for i := 0; i < n; i++ {
		seed := p.articles[g.intn(len(p.articles))]
		src := sources[g.intn(len(sources))]
		articles = append(articles, model.NewsArticle{
			Title:       seed.title,
			Description: seed.description,
			URL:         fmt.Sprintf("https://news.example.com/%s/%d", strings.ToLower(strings.ReplaceAll(src, " ", "-")), g.intn(1_000_000)),
			Source:      src,
			PublishedAt: now.Add(-time.Duration(g.intn(48*60)) * time.Minute),
		})
	}
	return articles
}

// EconomicIndicators returns the regional baseline with small noise
func (g *Generator) EconomicIndicators(region string) model.EconomicIndicators {
	g.mu.Lock()
	defer g.mu.Unlock()

	base := g.catalog.Indicators(region)
	return model.EconomicIndicators{
		Region:             base.Region,
		GDPGrowth:          round1(base.GDPGrowth + g.between(-0.5, 0.5)),
		Inflation:          round1(math.Max(0, base.Inflation+g.between(-0.5, 0.5))),
		Unemployment:       round1(math.Max(0, base.Unemployment+g.between(-0.3, 0.3))),
		PoliticalStability: model.ClampScore(round1(base.PoliticalStability + g.between(-5, 5))),
	}
}

// CrisisAlerts returns n alerts built from the crisis pool
func (g *Generator) CrisisAlerts(n int) []model.CrisisAlert {
	g.mu.Lock()
	defer g.mu.Unlock()

	n = max(n, 0)
	p := selectPool("crisis")
	severities := types.AllCrisisSeverities()
	now := g.now().UTC()
	alerts := make([]model.CrisisAlert, 0, n)
	for i := 0; i < n; i++ {
		seed := p.articles[g.intn(len(p.articles))]
		sev := severities[g.intn(len(severities))]
		alerts = append(alerts, model.CrisisAlert{
			ID:             fmt.Sprintf("mock-alert-%d", g.intn(1_000_000)),
			Title:          seed.title,
			Severity:       sev,
			Region:         crisisRegions[g.intn(len(crisisRegions))],
			Type:           crisisTypes[g.intn(len(crisisTypes))],
			Description:    seed.description,
			Sources:        []string{sources[g.intn(len(sources))]},
			Timestamp:      now.Add(-time.Duration(g.intn(24*60)) * time.Minute),
			EscalationRisk: g.between(float64(sev.Rank()-1)*25, float64(sev.Rank())*25),
		})
	}
	return alerts
}

// RiskFactors returns n distinct factors for region, n capped at the pool size
func (g *Generator) RiskFactors(region string, n int) []model.RiskFactor {
	g.mu.Lock()
	defer g.mu.Unlock()

	n = min(max(n, 0), len(factorNames))
	now := g.now().UTC()
	idx := g.rnd.Perm(len(factorNames))[:n]
	factors := make([]model.RiskFactor, 0, n)
	for i, j := range idx {
		f := factorNames[j]
		likelihood := g.between(20, 90)
		impact := g.between(20, 90)
		factors = append(factors, model.RiskFactor{
			ID:          fmt.Sprintf("%s-factor-%d", strings.ToLower(region), i+1),
			Name:        f.name,
			Description: fmt.Sprintf("%s observed in %s", f.name, strings.ToUpper(region)),
			Severity:    types.FactorSeverityFromScore(likelihood * impact / 100),
			Likelihood:  likelihood,
			Impact:      impact,
			Category:    f.category,
			Region:      strings.ToUpper(region),
			Sources:     []string{sources[g.intn(len(sources))]},
			LastUpdated: now,
		})
	}
	return factors
}

// SocialSentiment returns a sentiment split that sums to 100
func (g *Generator) SocialSentiment(topic string) model.SocialSentiment {
	g.mu.Lock()
	defer g.mu.Unlock()

	pos := g.between(10, 50)
	neg := g.between(10, 100-pos-5)
	return model.SocialSentiment{
		Topic:    topic,
		Positive: pos,
		Negative: neg,
		Neutral:  round1(100 - pos - neg),
		Volume:   1000 + g.intn(50_000),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
