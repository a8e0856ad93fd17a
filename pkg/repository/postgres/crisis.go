package postgres

import (
	"context"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type crisisEventRepository struct {
	pool *pgxpool.Pool
}

func prepareCrisisEvent(alert *model.CrisisAlert) model.CrisisAlert {
	created := *alert
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}
	return created
}

func (r *crisisEventRepository) Create(ctx context.Context, alert *model.CrisisAlert) (*model.CrisisAlert, error) {
	created := prepareCrisisEvent(alert)
	raw, err := encode(&created)
	if err != nil {
		return nil, err
	}
	if err := insertAndNotify(ctx, r.pool, ChannelCrisisEvents, created.ID,
		`INSERT INTO crisis_events (id, fingerprint, created_at, doc) VALUES ($1, $2, $3, $4)`,
		created.ID, created.Fingerprint, created.Timestamp, raw); err != nil {
		return nil, goerr.Wrap(err, "failed to create crisis event", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *crisisEventRepository) List(ctx context.Context, limit int) ([]*model.CrisisAlert, error) {
	return queryDocs[model.CrisisAlert](ctx, r.pool,
		`SELECT doc FROM crisis_events ORDER BY created_at DESC LIMIT $1`, limitArg(limit))
}

// CreateIfAbsent relies on the unique partial index on fingerprint
func (r *crisisEventRepository) CreateIfAbsent(ctx context.Context, alert *model.CrisisAlert) (*model.CrisisAlert, bool, error) {
	created := prepareCrisisEvent(alert)
	raw, err := encode(&created)
	if err != nil {
		return nil, false, err
	}
	inserted, err := insertIfAbsentAndNotify(ctx, r.pool, ChannelCrisisEvents, created.ID, `
		INSERT INTO crisis_events (id, fingerprint, created_at, doc) VALUES ($1, $2, $3, $4)
		ON CONFLICT (fingerprint) WHERE fingerprint <> '' DO NOTHING
	`, created.ID, created.Fingerprint, created.Timestamp, raw)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to create crisis event", goerr.V("fingerprint", created.Fingerprint))
	}
	if !inserted {
		return nil, false, nil
	}
	return &created, true, nil
}

func (r *crisisEventRepository) Subscribe(ctx context.Context, fn func(*model.CrisisAlert)) (func(), error) {
	return listen(ctx, r.pool, ChannelCrisisEvents, func(ctx context.Context, id string) {
		alert, err := queryDoc[model.CrisisAlert](ctx, r.pool, `SELECT doc FROM crisis_events WHERE id = $1`, id)
		if err != nil {
			logging.From(ctx).Warn("failed to load notified crisis event", "id", id, "error", err.Error())
			return
		}
		fn(alert)
	})
}

type riskAssessmentRepository struct {
	pool *pgxpool.Pool
}

func (r *riskAssessmentRepository) Create(ctx context.Context, a *model.RiskAssessment) (*model.RiskAssessment, error) {
	created := *a
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.LastAnalyzed.IsZero() {
		created.LastAnalyzed = time.Now().UTC()
	}

	raw, err := encode(&created)
	if err != nil {
		return nil, err
	}
	if err := insertAndNotify(ctx, r.pool, ChannelRiskAssessments, created.ID,
		`INSERT INTO risk_assessments (id, user_id, created_at, doc) VALUES ($1, $2, $3, $4)`,
		created.ID, created.UserID, created.LastAnalyzed, raw); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk assessment", goerr.V("region", created.Region))
	}
	return &created, nil
}

func (r *riskAssessmentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.RiskAssessment, error) {
	return queryDocs[model.RiskAssessment](ctx, r.pool, `
		SELECT doc FROM risk_assessments WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, userID, limitArg(limit))
}

func (r *riskAssessmentRepository) Subscribe(ctx context.Context, fn func(*model.RiskAssessment)) (func(), error) {
	return listen(ctx, r.pool, ChannelRiskAssessments, func(ctx context.Context, id string) {
		a, err := queryDoc[model.RiskAssessment](ctx, r.pool, `SELECT doc FROM risk_assessments WHERE id = $1`, id)
		if err != nil {
			logging.From(ctx).Warn("failed to load notified risk assessment", "id", id, "error", err.Error())
			return
		}
		fn(a)
	})
}
