package memory

import (
	"context"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
)

type crisisEventRepository struct {
	table *table[model.CrisisAlert]
	hub   *hub[model.CrisisAlert]
}

func newCrisisEventRepository() *crisisEventRepository {
	return &crisisEventRepository{
		table: newTable(cloneCrisisAlert),
		hub:   newHub(cloneCrisisAlert),
	}
}

func (r *crisisEventRepository) prepare(alert *model.CrisisAlert) *model.CrisisAlert {
	created := cloneCrisisAlert(alert)
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}
	return created
}

func (r *crisisEventRepository) Create(ctx context.Context, alert *model.CrisisAlert) (*model.CrisisAlert, error) {
	created := r.prepare(alert)
	r.table.put(created.ID, created)
	r.hub.publish(created)
	return created, nil
}

func (r *crisisEventRepository) CreateIfAbsent(ctx context.Context, alert *model.CrisisAlert) (*model.CrisisAlert, bool, error) {
	created := r.prepare(alert)
	fp := created.Fingerprint
	if !r.table.putIfAbsent(created.ID, created, func(a *model.CrisisAlert) bool {
		return fp != "" && a.Fingerprint == fp
	}) {
		return nil, false, nil
	}
	r.hub.publish(created)
	return created, true, nil
}

func (r *crisisEventRepository) List(ctx context.Context, limit int) ([]*model.CrisisAlert, error) {
	return r.table.filter(nil,
		func(a, b *model.CrisisAlert) int { return b.Timestamp.Compare(a.Timestamp) },
		limit,
	), nil
}

func (r *crisisEventRepository) Subscribe(ctx context.Context, fn func(*model.CrisisAlert)) (func(), error) {
	return r.hub.subscribe(ctx, fn), nil
}

type riskAssessmentRepository struct {
	table *table[model.RiskAssessment]
	hub   *hub[model.RiskAssessment]
}

func newRiskAssessmentRepository() *riskAssessmentRepository {
	return &riskAssessmentRepository{
		table: newTable(cloneRiskAssessment),
		hub:   newHub(cloneRiskAssessment),
	}
}

func (r *riskAssessmentRepository) Create(ctx context.Context, a *model.RiskAssessment) (*model.RiskAssessment, error) {
	created := cloneRiskAssessment(a)
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.LastAnalyzed.IsZero() {
		created.LastAnalyzed = time.Now().UTC()
	}

	r.table.put(created.ID, created)
	r.hub.publish(created)
	return created, nil
}

func (r *riskAssessmentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.RiskAssessment, error) {
	return r.table.filter(
		func(a *model.RiskAssessment) bool { return a.UserID == userID },
		func(a, b *model.RiskAssessment) int { return b.LastAnalyzed.Compare(a.LastAnalyzed) },
		limit,
	), nil
}

func (r *riskAssessmentRepository) Subscribe(ctx context.Context, fn func(*model.RiskAssessment)) (func(), error) {
	return r.hub.subscribe(ctx, fn), nil
}
