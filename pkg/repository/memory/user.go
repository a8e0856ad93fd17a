package memory

import (
	"cmp"
	"context"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type profileRepository struct {
	table *table[model.UserProfile]
}

func newProfileRepository() *profileRepository {
	return &profileRepository{table: newTable(cloneProfile)}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	p, ok := r.table.get(userID)
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "profile not found", goerr.V("user_id", userID))
	}
	return p, nil
}

func (r *profileRepository) Put(ctx context.Context, profile *model.UserProfile) error {
	if profile.ID == "" {
		return goerr.New("profile id is required")
	}

	now := time.Now().UTC()
	if existing, ok := r.table.get(profile.ID); ok {
		profile.CreatedAt = existing.CreatedAt
	} else if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	r.table.put(profile.ID, profile)
	return nil
}

type notificationRepository struct {
	table *table[model.Notification]
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{table: newTable(cloneNotification)}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n.UserID == "" {
		return nil, goerr.New("notification user id is required")
	}

	created := cloneNotification(n)
	if created.ID == "" {
		created.ID = model.NewID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.table.put(created.ID, created)
	return created, nil
}

func (r *notificationRepository) List(ctx context.Context, userID string, limit int) ([]*model.Notification, error) {
	return r.table.filter(
		func(n *model.Notification) bool { return n.UserID == userID },
		func(a, b *model.Notification) int { return b.CreatedAt.Compare(a.CreatedAt) },
		limit,
	), nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	ok := r.table.update(id, func(n *model.Notification) bool {
		if n.UserID != userID {
			return false
		}
		n.Read = true
		return true
	})
	if !ok {
		return goerr.Wrap(interfaces.ErrNotFound, "notification not found", goerr.V("id", id))
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, userID, id string) error {
	n, ok := r.table.get(id)
	if !ok || n.UserID != userID {
		return goerr.Wrap(interfaces.ErrNotFound, "notification not found", goerr.V("id", id))
	}
	r.table.remove(id)
	return nil
}

type learningProgressRepository struct {
	table *table[model.LearningProgress]
}

func newLearningProgressRepository() *learningProgressRepository {
	return &learningProgressRepository{table: newTable(cloneLearningProgress)}
}

func learningKey(userID, moduleID string) string {
	return userID + "/" + moduleID
}

func (r *learningProgressRepository) Put(ctx context.Context, p *model.LearningProgress) error {
	if p.UserID == "" || p.ModuleID == "" {
		return goerr.New("learning progress requires user id and module id",
			goerr.V("user_id", p.UserID), goerr.V("module_id", p.ModuleID))
	}

	key := learningKey(p.UserID, p.ModuleID)
	if existing, ok := r.table.get(key); ok {
		p.ID = existing.ID
	} else if p.ID == "" {
		p.ID = model.NewID()
	}
	p.UpdatedAt = time.Now().UTC()

	r.table.put(key, p)
	return nil
}

func (r *learningProgressRepository) List(ctx context.Context, userID string) ([]*model.LearningProgress, error) {
	return r.table.filter(
		func(p *model.LearningProgress) bool { return p.UserID == userID },
		func(a, b *model.LearningProgress) int { return cmp.Compare(a.ModuleID, b.ModuleID) },
		0,
	), nil
}

type alertConfigRepository struct {
	table *table[model.AlertConfig]
}

func newAlertConfigRepository() *alertConfigRepository {
	return &alertConfigRepository{table: newTable(cloneAlertConfig)}
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

	r.table.put(cfg.ID, cfg)
	return nil
}

func byCreatedAsc(a, b *model.AlertConfig) int {
	return a.CreatedAt.Compare(b.CreatedAt)
}

func (r *alertConfigRepository) List(ctx context.Context, userID string) ([]*model.AlertConfig, error) {
	return r.table.filter(func(c *model.AlertConfig) bool { return c.UserID == userID }, byCreatedAsc, 0), nil
}

func (r *alertConfigRepository) ListEnabled(ctx context.Context) ([]*model.AlertConfig, error) {
	return r.table.filter(func(c *model.AlertConfig) bool { return c.Enabled }, byCreatedAsc, 0), nil
}

func (r *alertConfigRepository) Delete(ctx context.Context, userID, id string) error {
	c, ok := r.table.get(id)
	if !ok || c.UserID != userID {
		return goerr.Wrap(interfaces.ErrNotFound, "alert config not found", goerr.V("id", id))
	}
	r.table.remove(id)
	return nil
}
