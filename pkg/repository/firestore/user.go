package firestore

import (
	"context"
	"errors"
	"net/url"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileRepository struct {
	store *store
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	return getDoc[model.UserProfile](ctx, r.store.collection(CollectionProfiles).Doc(userID))
}

func (r *profileRepository) Put(ctx context.Context, profile *model.UserProfile) error {
	if profile.ID == "" {
		return goerr.New("profile id is required")
	}

	now := time.Now().UTC()
	ref := r.store.collection(CollectionProfiles).Doc(profile.ID)
	existing, err := getDoc[model.UserProfile](ctx, ref)
	switch {
	case err == nil:
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, interfaces.ErrNotFound):
		if profile.CreatedAt.IsZero() {
			profile.CreatedAt = now
		}
	default:
		return err
	}
	profile.UpdatedAt = now

	if _, err := ref.Set(ctx, profile); err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("user_id", profile.ID))
	}
	return nil
}

type notificationRepository struct {
	store *store
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n.UserID == "" {
		return nil, goerr.New("notification user id is required")
	}

	created := *n
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.store.collection(CollectionNotifications).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("user_id", created.UserID))
	}
	return &created, nil
}

func (r *notificationRepository) List(ctx context.Context, userID string, limit int) ([]*model.Notification, error) {
	q := r.store.collection(CollectionNotifications).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc)
	return collect[model.Notification](ctx, withLimit(q, limit))
}

// owned loads a notification and hides those of other users
func (r *notificationRepository) owned(ctx context.Context, userID, id string) (*firestore.DocumentRef, error) {
	ref := r.store.collection(CollectionNotifications).Doc(id)
	n, err := getDoc[model.Notification](ctx, ref)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "notification not found", goerr.V("id", id))
	}
	return ref, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	ref, err := r.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if _, err := ref.Update(ctx, []firestore.Update{{Path: "read", Value: true}}); err != nil {
		return goerr.Wrap(err, "failed to mark notification read", goerr.V("id", id))
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, userID, id string) error {
	ref, err := r.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete notification", goerr.V("id", id))
	}
	return nil
}

type learningProgressRepository struct {
	store *store
}

func learningDocID(userID, moduleID string) string {
	return url.PathEscape(userID) + ":" + url.PathEscape(moduleID)
}

func (r *learningProgressRepository) Put(ctx context.Context, p *model.LearningProgress) error {
	if p.UserID == "" || p.ModuleID == "" {
		return goerr.New("learning progress requires user id and module id",
			goerr.V("user_id", p.UserID), goerr.V("module_id", p.ModuleID))
	}

	ref := r.store.collection(CollectionLearningProgress).Doc(learningDocID(p.UserID, p.ModuleID))
	err := r.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing model.LearningProgress
			if err := doc.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to unmarshal learning progress")
			}
			p.ID = existing.ID
		case status.Code(err) == codes.NotFound:
			if p.ID == "" {
				p.ID = model.NewID()
			}
		default:
			return goerr.Wrap(err, "failed to get learning progress")
		}
		p.UpdatedAt = time.Now().UTC()
		return tx.Set(ref, p)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put learning progress",
			goerr.V("user_id", p.UserID), goerr.V("module_id", p.ModuleID))
	}
	return nil
}

func (r *learningProgressRepository) List(ctx context.Context, userID string) ([]*model.LearningProgress, error) {
	q := r.store.collection(CollectionLearningProgress).
		Where("user_id", "==", userID).
		OrderBy("module_id", firestore.Asc)
	return collect[model.LearningProgress](ctx, q)
}

type alertConfigRepository struct {
	store *store
}

func (r *alertConfigRepository) Put(ctx context.Context, cfg *model.AlertConfig) error {
	if cfg.UserID == "" {
		return goerr.New("alert config user id is required")
	}
	if cfg.ID == "" {
		cfg.ID = model.NewID()
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now().UTC()
	}

	if _, err := r.store.collection(CollectionAlertConfigs).Doc(cfg.ID).Set(ctx, cfg); err != nil {
		return goerr.Wrap(err, "failed to put alert config", goerr.V("id", cfg.ID))
	}
	return nil
}

func (r *alertConfigRepository) List(ctx context.Context, userID string) ([]*model.AlertConfig, error) {
	q := r.store.collection(CollectionAlertConfigs).
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Asc)
	return collect[model.AlertConfig](ctx, q)
}

func (r *alertConfigRepository) ListEnabled(ctx context.Context) ([]*model.AlertConfig, error) {
	q := r.store.collection(CollectionAlertConfigs).Where("enabled", "==", true)
	return collect[model.AlertConfig](ctx, q)
}

func (r *alertConfigRepository) Delete(ctx context.Context, userID, id string) error {
	ref := r.store.collection(CollectionAlertConfigs).Doc(id)
	cfg, err := getDoc[model.AlertConfig](ctx, ref)
	if err != nil {
		return err
	}
	if cfg.UserID != userID {
		return goerr.Wrap(interfaces.ErrNotFound, "alert config not found", goerr.V("id", id))
	}
	if _, err := ref.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete alert config", goerr.V("id", id))
	}
	return nil
}
