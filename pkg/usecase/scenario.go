package usecase

import (
	"context"
	"errors"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type ScenarioUseCase struct {
	uc *UseCases
}

// Create stores a new draft scenario owned by userID
func (s *ScenarioUseCase) Create(ctx context.Context, userID string, scenario *model.Scenario) (*model.Scenario, error) {
	if err := scenario.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scenario")
	}

	scenario.ID = ""
	scenario.UserID = userID
	scenario.Status = scenario.Status.Normalize()
	if scenario.Parameters == nil {
		scenario.Parameters = map[string]any{}
	}
	if scenario.Outcomes == nil {
		scenario.Outcomes = []model.ScenarioOutcome{}
	}

	if err := s.uc.repo.Scenario().Put(ctx, scenario); err != nil {
		return nil, goerr.Wrap(err, "failed to create scenario", goerr.V(UserIDKey, userID))
	}
	return scenario, nil
}

func (s *ScenarioUseCase) List(ctx context.Context, userID string) ([]*model.Scenario, error) {
	scenarios, err := s.uc.repo.Scenario().List(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list scenarios", goerr.V(UserIDKey, userID))
	}
	return scenarios, nil
}

func (s *ScenarioUseCase) Get(ctx context.Context, userID, id string) (*model.Scenario, error) {
	scenario, err := s.uc.repo.Scenario().Get(ctx, userID, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(ErrScenarioNotFound, "scenario not found", goerr.V(ScenarioIDKey, id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get scenario", goerr.V(ScenarioIDKey, id))
	}
	return scenario, nil
}

// Archive moves the scenario to the archived state
func (s *ScenarioUseCase) Archive(ctx context.Context, userID, id string) (*model.Scenario, error) {
	scenario, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	scenario.Status = types.ScenarioStatusArchived
	if err := s.uc.repo.Scenario().Put(ctx, scenario); err != nil {
		return nil, goerr.Wrap(err, "failed to archive scenario", goerr.V(ScenarioIDKey, id))
	}
	return scenario, nil
}

// Simulate generates outcomes for a stored scenario. The outcome list is
// replaced as a whole and the scenario becomes active.
func (s *ScenarioUseCase) Simulate(ctx context.Context, userID, id string) model.Result[*model.Scenario] {
	scenario, err := s.Get(ctx, userID, id)
	if err != nil {
		return model.Failed[*model.Scenario](err)
	}

	cfg := scenario.Config()
	cfg.ScenarioID = scenario.ID
	result := s.RunSimulation(ctx, userID, cfg)
	if !result.Success {
		return model.Failed[*model.Scenario](goerr.New(result.Error, goerr.V(ScenarioIDKey, id)))
	}

	updated, err := s.Get(ctx, userID, id)
	if err != nil {
		return model.Failed[*model.Scenario](err)
	}
	if result.Degraded {
		return model.Result[*model.Scenario]{Success: true, Degraded: true, Data: updated, Error: result.Error}
	}
	return model.OK(updated)
}

// RunSimulation generates outcomes for cfg and records the run. When
// cfg.ScenarioID names a scenario of userID, its outcomes, probability and
// status are updated as well.
func (s *ScenarioUseCase) RunSimulation(ctx context.Context, userID string, cfg model.ScenarioConfig) model.Result[*model.SimulationRecord] {
	if err := cfg.Validate(); err != nil {
		return model.Failed[*model.SimulationRecord](goerr.Wrap(err, "invalid scenario configuration"))
	}
	if cfg.Parameters == nil {
		cfg.Parameters = map[string]any{}
	}

	analysis, outcome := s.uc.insight.GenerateScenario(ctx, cfg)

	rec := &model.SimulationRecord{
		UserID:     userID,
		ScenarioID: cfg.ScenarioID,
		Config:     cfg,
		Outcomes:   analysis.Outcomes,
		Confidence: model.ClampScore(analysis.Confidence),
		Degraded:   outcome.Degraded(),
	}
	for i := range rec.Outcomes {
		if rec.Outcomes[i].ID == "" {
			rec.Outcomes[i].ID = model.NewID()
		}
	}

	stored, err := s.uc.repo.Simulation().Create(ctx, rec)
	if err != nil {
		return model.Failed[*model.SimulationRecord](goerr.Wrap(err, "failed to record simulation", goerr.V(UserIDKey, userID)))
	}

	if cfg.ScenarioID != "" {
		if err := s.apply(ctx, userID, cfg.ScenarioID, stored); err != nil {
			return model.Failed[*model.SimulationRecord](err)
		}
	}

	if outcome.Degraded() {
		return model.Degraded(stored, outcome.Err)
	}
	return model.OK(stored)
}

func (s *ScenarioUseCase) apply(ctx context.Context, userID, id string, rec *model.SimulationRecord) error {
	scenario, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	scenario.Outcomes = append([]model.ScenarioOutcome(nil), rec.Outcomes...)
	scenario.Probability = rec.Confidence
	scenario.Status = types.ScenarioStatusActive
	if err := s.uc.repo.Scenario().Put(ctx, scenario); err != nil {
		return goerr.Wrap(err, "failed to update scenario outcomes", goerr.V(ScenarioIDKey, id))
	}
	return nil
}
