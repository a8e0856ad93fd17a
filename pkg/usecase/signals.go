package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

const (
	signalHeadlines = 5
	signalFactors   = 4
	signalAlerts    = 3
)

// SignalsUseCase assembles the upstream signals of a region. Every source
// that is unavailable is replaced by generated data and marks the result
// degraded.
type SignalsUseCase struct {
	uc *UseCases
}

// Region returns the signals of region as seen by userID. Factors come from
// the user's latest stored assessment of the region.
func (s *SignalsUseCase) Region(ctx context.Context, userID, region string) model.Result[*model.RegionSignals] {
	code := types.NewRegionCode(region)
	if err := code.Validate(); err != nil {
		return model.Failed[*model.RegionSignals](err)
	}

	name := code.String()
	if p, ok := s.uc.catalog.Region(name); ok {
		name = p.Name
	}

	var (
		mu     sync.Mutex
		causes []error
	)
	degrade := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		causes = append(causes, err)
	}

	signals := &model.RegionSignals{
		Region:      code.String(),
		GeneratedAt: s.uc.now().UTC(),
	}

	var eg errgroup.Group
	eg.Go(func() error {
		ind, err := s.uc.indicators(ctx, code.String())
		if err != nil {
			ind = s.uc.mock.EconomicIndicators(code.String())
			degrade(goerr.Wrap(err, "economic indicators unavailable", goerr.V(RegionKey, code)))
		}
		signals.Indicators = ind
		return nil
	})
	eg.Go(func() error {
		articles, err := s.uc.headlines(ctx, name, "geopolitical", signalHeadlines)
		if err != nil {
			degrade(goerr.Wrap(err, "headlines unavailable", goerr.V(RegionKey, code)))
		}
		signals.Headlines = articles
		return nil
	})
	eg.Go(func() error {
		signals.Factors = s.factors(ctx, userID, code.String(), degrade)
		return nil
	})
	_ = eg.Wait()

	signals.Sentiment = s.uc.mock.SocialSentiment(name)
	causes = append(causes, ErrNoSentimentSource)

	if alerts := s.uc.Crisis.Current(); alerts != nil {
		signals.Alerts = alerts
	} else {
		for _, a := range s.uc.mock.CrisisAlerts(signalAlerts) {
			signals.Alerts = append(signals.Alerts, &a)
		}
		causes = append(causes, errNoMonitoringCycle)
	}

	return model.Degraded(signals, errors.Join(causes...))
}

func (s *SignalsUseCase) factors(ctx context.Context, userID, region string, degrade func(error)) []model.RiskFactor {
	for _, a := range s.uc.Persistence.ListRiskAssessments(ctx, userID, 0) {
		if a.Region == region && len(a.Factors) > 0 {
			return a.Factors
		}
	}
	degrade(goerr.Wrap(errNoAssessment, "risk factors generated", goerr.V(RegionKey, region), goerr.V(UserIDKey, userID)))
	return s.uc.mock.RiskFactors(region, signalFactors)
}
