package usecase

import (
	"context"
	"errors"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/service/insight"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeframe is used when a forecast names no timeframe
const DefaultTimeframe = "12 months"

type PredictionUseCase struct {
	uc *UseCases
}

// Forecast predicts one indicator of region
func (p *PredictionUseCase) Forecast(ctx context.Context, region string, indicator types.Indicator, timeframe string) model.Result[*model.Prediction] {
	code := types.NewRegionCode(region)
	if err := code.Validate(); err != nil {
		return model.Failed[*model.Prediction](err)
	}
	if !indicator.IsValid() {
		return model.Failed[*model.Prediction](goerr.Wrap(model.ErrInvalidValue, "unknown indicator", goerr.V("indicator", indicator)))
	}

	ind, err := p.uc.indicators(ctx, code.String())
	var causes []error
	if err != nil {
		causes = append(causes, goerr.Wrap(err, "economic indicators unavailable", goerr.V(RegionKey, code)))
	}

	pred, outcome := p.forecast(ctx, code.String(), indicator, timeframe, ind)
	if outcome.Degraded() {
		causes = append(causes, outcome.Err)
	}
	if len(causes) > 0 {
		return model.Degraded(pred, errors.Join(causes...))
	}
	return model.OK(pred)
}

// ForecastAll predicts every indicator of region from one indicator snapshot
func (p *PredictionUseCase) ForecastAll(ctx context.Context, region, timeframe string) model.Result[[]*model.Prediction] {
	code := types.NewRegionCode(region)
	if err := code.Validate(); err != nil {
		return model.Failed[[]*model.Prediction](err)
	}

	ind, err := p.uc.indicators(ctx, code.String())
	var causes []error
	if err != nil {
		causes = append(causes, goerr.Wrap(err, "economic indicators unavailable", goerr.V(RegionKey, code)))
	}

	all := types.AllIndicators()
	preds := make([]*model.Prediction, len(all))
	outcomes := make([]insight.Outcome, len(all))

	var eg errgroup.Group
	for i, indicator := range all {
		eg.Go(func() error {
			preds[i], outcomes[i] = p.forecast(ctx, code.String(), indicator, timeframe, ind)
			return nil
		})
	}
	_ = eg.Wait()

	for _, o := range outcomes {
		if o.Degraded() {
			causes = append(causes, o.Err)
			break
		}
	}
	if len(causes) > 0 {
		return model.Degraded(preds, errors.Join(causes...))
	}
	return model.OK(preds)
}

func (p *PredictionUseCase) forecast(ctx context.Context, region string, indicator types.Indicator, timeframe string, ind model.EconomicIndicators) (*model.Prediction, insight.Outcome) {
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	current, _ := ind.Value(indicator.String())

	analysis, outcome := p.uc.insight.Predict(ctx, insight.PredictionInput{
		Region:       region,
		Indicator:    indicator,
		CurrentValue: current,
		Timeframe:    timeframe,
	})

	pred := &model.Prediction{
		ID:          model.NewID(),
		Indicator:   indicator,
		Region:      region,
		Confidence:  model.ClampScore(analysis.Confidence),
		Timeframe:   timeframe,
		Factors:     analysis.Factors,
		Methodology: analysis.Methodology,
	}
	if pred.Factors == nil {
		pred.Factors = []string{}
	}
	pred.SetValues(current, analysis.PredictedValue)
	pred.SetCreatedAt(p.uc.now().UTC())
	return pred, outcome
}
