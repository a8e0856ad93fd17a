package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/service/insight"
	"github.com/gametheory-pro/gtpro/pkg/utils/latest"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

const headlineLimit = 5

type RiskUseCase struct {
	uc      *UseCases
	current *latest.Tracker[*model.RiskAssessment]
}

func newRiskUseCase(uc *UseCases) *RiskUseCase {
	return &RiskUseCase{
		uc:      uc,
		current: latest.New[*model.RiskAssessment](),
	}
}

// Assess builds a fresh risk assessment of region. Upstream and model
// failures degrade the result; only an invalid region fails it.
func (r *RiskUseCase) Assess(ctx context.Context, region string) model.Result[*model.RiskAssessment] {
	return r.assess(ctx, model.RiskAssessmentRequest{Region: region})
}

// AssessRequest backs the risk-assessment function: indicators and headlines
// supplied by the caller replace the upstream fetches, and the assessment is
// stored for userID. A storage failure fails the result.
func (r *RiskUseCase) AssessRequest(ctx context.Context, userID string, req model.RiskAssessmentRequest) model.Result[*model.RiskAssessment] {
	result := r.assess(ctx, req)
	if !result.Success {
		return result
	}

	result.Data.UserID = userID
	stored, err := r.uc.repo.RiskAssessment().Create(ctx, result.Data)
	if err != nil {
		return model.Failed[*model.RiskAssessment](goerr.Wrap(err, "failed to store risk assessment",
			goerr.V(UserIDKey, userID), goerr.V(RegionKey, result.Data.Region)))
	}
	result.Data = stored
	return result
}

func (r *RiskUseCase) assess(ctx context.Context, req model.RiskAssessmentRequest) model.Result[*model.RiskAssessment] {
	code := types.NewRegionCode(req.Region)
	if err := code.Validate(); err != nil {
		return model.Failed[*model.RiskAssessment](err)
	}

	var (
		mu         sync.Mutex
		causes     []error
		indicators model.EconomicIndicators
		headlines  = req.Headlines
	)
	degrade := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		causes = append(causes, err)
	}

	var eg errgroup.Group
	if req.Indicators != nil {
		indicators = *req.Indicators
		indicators.Region = code.String()
	} else {
		eg.Go(func() error {
			ind, err := r.uc.indicators(ctx, code.String())
			if err != nil {
				degrade(goerr.Wrap(err, "economic indicators unavailable", goerr.V(RegionKey, code)))
			}
			indicators = ind
			return nil
		})
	}
	if len(headlines) == 0 {
		eg.Go(func() error {
			query := code.String() + " geopolitical risk"
			if p, ok := r.uc.catalog.Region(code.String()); ok {
				query = p.Name + " geopolitical risk"
			}
			articles, err := r.uc.headlines(ctx, query, "geopolitical", headlineLimit)
			if err != nil {
				degrade(goerr.Wrap(err, "headlines unavailable", goerr.V(RegionKey, code)))
			}
			titles := make([]string, 0, len(articles))
			for _, a := range articles {
				titles = append(titles, a.Title)
			}
			headlines = titles
			return nil
		})
	}
	_ = eg.Wait()

	analysis, outcome := r.uc.insight.AnalyzeRisk(ctx, insight.RiskInput{
		Region:     code.String(),
		Indicators: indicators,
		Headlines:  headlines,
	})
	if outcome.Degraded() {
		causes = append(causes, outcome.Err)
	}

	assessment := r.build(code.String(), indicators, analysis, outcome)
	if len(causes) > 0 {
		return model.Degraded(assessment, errors.Join(causes...))
	}
	return model.OK(assessment)
}

func (r *RiskUseCase) build(region string, ind model.EconomicIndicators, analysis model.RiskAnalysis, outcome insight.Outcome) *model.RiskAssessment {
	now := r.uc.now().UTC()
	a := &model.RiskAssessment{
		ID:              model.NewID(),
		Region:          region,
		Confidence:      model.ClampScore(analysis.Confidence),
		Recommendations: analysis.Recommendations,
		LastAnalyzed:    now,
	}
	a.SetScore(analysis.RiskScore)

	source := "AI analysis"
	if outcome.Degraded() {
		source = "Regional baseline"
	}

	a.Factors = make([]model.RiskFactor, 0, len(analysis.RiskFactors))
	for i, name := range analysis.RiskFactors {
		a.Factors = append(a.Factors, r.factor(region, i, name, a.OverallRiskScore, source, now))
	}

	a.Trends = analysis.Trends
	if len(a.Trends) == 0 {
		a.Trends = deriveTrends(ind)
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	return a
}

// factor enriches a factor name with the catalog details matching it. Names
// without details inherit the overall score.
func (r *RiskUseCase) factor(region string, i int, name string, overall float64, source string, now time.Time) model.RiskFactor {
	f := model.RiskFactor{
		ID:          fmt.Sprintf("%s-factor-%d", strings.ToLower(region), i+1),
		Name:        name,
		Description: name,
		Category:    types.FactorCategoryPolitical,
		Likelihood:  overall,
		Impact:      overall,
		Region:      region,
		Sources:     []string{source},
		LastUpdated: now,
	}
	if d, ok := r.uc.catalog.FactorDetail(name); ok {
		f.Description = d.Description
		f.Category = d.Category
		f.Likelihood = d.Likelihood
		f.Impact = d.Impact
	}
	f.Severity = types.FactorSeverityFromScore(f.Likelihood * f.Impact / 100)
	return f
}

// deriveTrends reads trends off the indicator snapshot when the model
// reported none
func deriveTrends(ind model.EconomicIndicators) []model.RiskTrend {
	const (
		inflationTarget = 2.0
		stabilityMid    = 50.0
	)
	return []model.RiskTrend{
		{Factor: "Economic growth", Direction: types.DirectionFromDelta(ind.GDPGrowth), Rate: round2(math.Abs(ind.GDPGrowth))},
		{Factor: "Inflation pressure", Direction: types.DirectionFromDelta(ind.Inflation - inflationTarget), Rate: round2(math.Abs(ind.Inflation - inflationTarget))},
		{Factor: "Political stability", Direction: types.DirectionFromDelta(ind.PoliticalStability - stabilityMid), Rate: round2(math.Abs(ind.PoliticalStability-stabilityMid) / 10)},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Select assesses region as userID's current view. Only the newest selection
// of a user is committed; an older one finishing late is returned with
// committed=false and neither stored nor published.
func (r *RiskUseCase) Select(ctx context.Context, userID, region string) (result model.Result[*model.RiskAssessment], committed bool) {
	ticket := r.current.Begin(userID)
	result = r.Assess(ctx, region)
	if !result.Success {
		return result, false
	}

	result.Data.UserID = userID
	if !r.current.Commit(ticket, result.Data) {
		logging.From(ctx).Info("discarding stale risk assessment",
			"user_id", userID, "region", result.Data.Region)
		return result, false
	}

	if userID != "" {
		if stored := r.uc.Persistence.SaveRiskAssessment(ctx, result.Data); stored != nil {
			result.Data = stored
		}
	}
	return result, true
}

// Current returns the committed assessment of userID
func (r *RiskUseCase) Current(userID string) (*model.RiskAssessment, bool) {
	return r.current.Get(userID)
}
