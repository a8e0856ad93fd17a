package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type scenarioRepository struct {
	store *store
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

	if _, err := r.store.collection(CollectionScenarios).Doc(s.ID).Set(ctx, s); err != nil {
		return goerr.Wrap(err, "failed to put scenario", goerr.V("id", s.ID))
	}
	return nil
}

func (r *scenarioRepository) Get(ctx context.Context, userID, id string) (*model.Scenario, error) {
	s, err := getDoc[model.Scenario](ctx, r.store.collection(CollectionScenarios).Doc(id))
	if err != nil {
		return nil, err
	}
	if s.UserID != userID {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "scenario not found", goerr.V("id", id))
	}
	return s, nil
}

func (r *scenarioRepository) List(ctx context.Context, userID string) ([]*model.Scenario, error) {
	q := r.store.collection(CollectionScenarios).
		Where("user_id", "==", userID).
		OrderBy("updated_at", firestore.Desc)
	return collect[model.Scenario](ctx, q)
}

type simulationRepository struct {
	store *store
}

func (r *simulationRepository) Create(ctx context.Context, rec *model.SimulationRecord) (*model.SimulationRecord, error) {
	created := *rec
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.store.collection(CollectionSimulations).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create simulation", goerr.V("user_id", created.UserID))
	}
	return &created, nil
}

func (r *simulationRepository) List(ctx context.Context, userID string, limit int) ([]*model.SimulationRecord, error) {
	q := r.store.collection(CollectionSimulations).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc)
	return collect[model.SimulationRecord](ctx, withLimit(q, limit))
}
