package memory

import (
	"context"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type scenarioRepository struct {
	table *table[model.Scenario]
}

func newScenarioRepository() *scenarioRepository {
	return &scenarioRepository{table: newTable(cloneScenario)}
}

func (r *scenarioRepository) Put(ctx context.Context, s *model.Scenario) error {
	if s.ID == "" {
		s.ID = model.NewID()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	r.table.put(s.ID, s)
	return nil
}

func (r *scenarioRepository) Get(ctx context.Context, userID, id string) (*model.Scenario, error) {
	s, ok := r.table.get(id)
	if !ok || s.UserID != userID {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "scenario not found", goerr.V("id", id))
	}
	return s, nil
}

func (r *scenarioRepository) List(ctx context.Context, userID string) ([]*model.Scenario, error) {
	return r.table.filter(
		func(s *model.Scenario) bool { return s.UserID == userID },
		func(a, b *model.Scenario) int { return b.UpdatedAt.Compare(a.UpdatedAt) },
		0,
	), nil
}

type simulationRepository struct {
	table *table[model.SimulationRecord]
}

func newSimulationRepository() *simulationRepository {
	return &simulationRepository{table: newTable(cloneSimulation)}
}

func (r *simulationRepository) Create(ctx context.Context, rec *model.SimulationRecord) (*model.SimulationRecord, error) {
	created := cloneSimulation(rec)
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.table.put(created.ID, created)
	return created, nil
}

func (r *simulationRepository) List(ctx context.Context, userID string, limit int) ([]*model.SimulationRecord, error) {
	return r.table.filter(
		func(s *model.SimulationRecord) bool { return s.UserID == userID },
		func(a, b *model.SimulationRecord) int { return b.CreatedAt.Compare(a.CreatedAt) },
		limit,
	), nil
}
