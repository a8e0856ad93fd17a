package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type crisisEventRepository struct {
	store *store
}

func (r *crisisEventRepository) Create(ctx context.Context, alert *model.CrisisAlert) (*model.CrisisAlert, error) {
	created := *alert
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	if _, err := r.store.collection(CollectionCrisisEvents).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create crisis event", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *crisisEventRepository) List(ctx context.Context, limit int) ([]*model.CrisisAlert, error) {
	q := r.store.collection(CollectionCrisisEvents).OrderBy("timestamp", firestore.Desc)
	return collect[model.CrisisAlert](ctx, withLimit(q, limit))
}

// CreateIfAbsent keys fingerprinted alerts by their fingerprint so the
// document create itself rejects duplicates
func (r *crisisEventRepository) CreateIfAbsent(ctx context.Context, alert *model.CrisisAlert) (*model.CrisisAlert, bool, error) {
	if alert.Fingerprint == "" {
		created, err := r.Create(ctx, alert)
		return created, err == nil, err
	}

	created := *alert
	created.ID = fingerprintDocID(alert.Fingerprint)
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	if _, err := r.store.collection(CollectionCrisisEvents).Doc(created.ID).Create(ctx, &created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, false, nil
		}
		return nil, false, goerr.Wrap(err, "failed to create crisis event", goerr.V("fingerprint", alert.Fingerprint))
	}
	return &created, true, nil
}

func (r *crisisEventRepository) Subscribe(ctx context.Context, fn func(*model.CrisisAlert)) (func(), error) {
	q := r.store.collection(CollectionCrisisEvents).Where("timestamp", ">", time.Now().UTC())
	return watchAdded(ctx, q, fn), nil
}

type riskAssessmentRepository struct {
	store *store
}

func (r *riskAssessmentRepository) Create(ctx context.Context, a *model.RiskAssessment) (*model.RiskAssessment, error) {
	created := *a
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.LastAnalyzed.IsZero() {
		created.LastAnalyzed = time.Now().UTC()
	}

	if _, err := r.store.collection(CollectionRiskAssessments).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk assessment", goerr.V("region", created.Region))
	}
	return &created, nil
}

func (r *riskAssessmentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.RiskAssessment, error) {
	q := r.store.collection(CollectionRiskAssessments).
		Where("user_id", "==", userID).
		OrderBy("last_analyzed", firestore.Desc)
	return collect[model.RiskAssessment](ctx, withLimit(q, limit))
}

func (r *riskAssessmentRepository) Subscribe(ctx context.Context, fn func(*model.RiskAssessment)) (func(), error) {
	q := r.store.collection(CollectionRiskAssessments).Where("last_analyzed", ">", time.Now().UTC())
	return watchAdded(ctx, q, fn), nil
}

func fingerprintDocID(fingerprint string) string {
	sum := sha256.Sum256([]byte(fingerprint))
	return "fp-" + hex.EncodeToString(sum[:16])
}
