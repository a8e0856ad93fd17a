package postgres

import (
	"context"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type scenarioRepository struct {
	pool *pgxpool.Pool
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

	raw, err := encode(s)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO scenarios (id, user_id, updated_at, doc) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, updated_at = EXCLUDED.updated_at, doc = EXCLUDED.doc
	`, s.ID, s.UserID, s.UpdatedAt, raw); err != nil {
		return goerr.Wrap(err, "failed to put scenario", goerr.V("id", s.ID))
	}
	return nil
}

func (r *scenarioRepository) Get(ctx context.Context, userID, id string) (*model.Scenario, error) {
	s, err := queryDoc[model.Scenario](ctx, r.pool,
		`SELECT doc FROM scenarios WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get scenario", goerr.V("id", id))
	}
	return s, nil
}

func (r *scenarioRepository) List(ctx context.Context, userID string) ([]*model.Scenario, error) {
	return queryDocs[model.Scenario](ctx, r.pool,
		`SELECT doc FROM scenarios WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
}

type simulationRepository struct {
	pool *pgxpool.Pool
}

func (r *simulationRepository) Create(ctx context.Context, rec *model.SimulationRecord) (*model.SimulationRecord, error) {
	created := *rec
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	raw, err := encode(&created)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO simulations (id, user_id, created_at, doc) VALUES ($1, $2, $3, $4)`,
		created.ID, created.UserID, created.CreatedAt, raw); err != nil {
		return nil, goerr.Wrap(err, "failed to create simulation", goerr.V("user_id", created.UserID))
	}
	return &created, nil
}

func (r *simulationRepository) List(ctx context.Context, userID string, limit int) ([]*model.SimulationRecord, error) {
	return queryDocs[model.SimulationRecord](ctx, r.pool, `
		SELECT doc FROM simulations WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, userID, limitArg(limit))
}
