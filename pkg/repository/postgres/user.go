package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	p, err := queryDoc[model.UserProfile](ctx, r.pool, `SELECT doc FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("user_id", userID))
	}
	return p, nil
}

func (r *profileRepository) Put(ctx context.Context, profile *model.UserProfile) error {
	if profile.ID == "" {
		return goerr.New("profile id is required")
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		existing, err := queryDoc[model.UserProfile](ctx, tx,
			`SELECT doc FROM profiles WHERE user_id = $1 FOR UPDATE`, profile.ID)
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

		raw, err := encode(profile)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO profiles (user_id, updated_at, doc) VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at, doc = EXCLUDED.doc
		`, profile.ID, profile.UpdatedAt, raw); err != nil {
			return goerr.Wrap(err, "failed to put profile", goerr.V("user_id", profile.ID))
		}
		return nil
	})
}

type notificationRepository struct {
	pool *pgxpool.Pool
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

	raw, err := encode(&created)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO notifications (id, user_id, created_at, doc) VALUES ($1, $2, $3, $4)`,
		created.ID, created.UserID, created.CreatedAt, raw); err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("user_id", created.UserID))
	}
	return &created, nil
}

func (r *notificationRepository) List(ctx context.Context, userID string, limit int) ([]*model.Notification, error) {
	return queryDocs[model.Notification](ctx, r.pool, `
		SELECT doc FROM notifications WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, userID, limitArg(limit))
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET doc = jsonb_set(doc, '{read}', 'true'::jsonb)
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to mark notification read", goerr.V("id", id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(interfaces.ErrNotFound, "notification not found", goerr.V("id", id))
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to delete notification", goerr.V("id", id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(interfaces.ErrNotFound, "notification not found", goerr.V("id", id))
	}
	return nil
}

type learningProgressRepository struct {
	pool *pgxpool.Pool
}

func (r *learningProgressRepository) Put(ctx context.Context, p *model.LearningProgress) error {
	if p.UserID == "" || p.ModuleID == "" {
		return goerr.New("learning progress requires user id and module id",
			goerr.V("user_id", p.UserID), goerr.V("module_id", p.ModuleID))
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		existing, err := queryDoc[model.LearningProgress](ctx, tx,
			`SELECT doc FROM learning_progress WHERE user_id = $1 AND module_id = $2 FOR UPDATE`,
			p.UserID, p.ModuleID)
		switch {
		case err == nil:
			p.ID = existing.ID
		case errors.Is(err, interfaces.ErrNotFound):
			if p.ID == "" {
				p.ID = model.NewID()
			}
		default:
			return err
		}
		p.UpdatedAt = time.Now().UTC()

		raw, err := encode(p)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO learning_progress (user_id, module_id, doc) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, module_id) DO UPDATE SET doc = EXCLUDED.doc
		`, p.UserID, p.ModuleID, raw); err != nil {
			return goerr.Wrap(err, "failed to put learning progress",
				goerr.V("user_id", p.UserID), goerr.V("module_id", p.ModuleID))
		}
		return nil
	})
}

func (r *learningProgressRepository) List(ctx context.Context, userID string) ([]*model.LearningProgress, error) {
	return queryDocs[model.LearningProgress](ctx, r.pool,
		`SELECT doc FROM learning_progress WHERE user_id = $1 ORDER BY module_id`, userID)
}

type alertConfigRepository struct {
	pool *pgxpool.Pool
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

	raw, err := encode(cfg)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO alert_configs (id, user_id, enabled, created_at, doc) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, enabled = EXCLUDED.enabled, doc = EXCLUDED.doc
	`, cfg.ID, cfg.UserID, cfg.Enabled, cfg.CreatedAt, raw); err != nil {
		return goerr.Wrap(err, "failed to put alert config", goerr.V("id", cfg.ID))
	}
	return nil
}

func (r *alertConfigRepository) List(ctx context.Context, userID string) ([]*model.AlertConfig, error) {
	return queryDocs[model.AlertConfig](ctx, r.pool,
		`SELECT doc FROM alert_configs WHERE user_id = $1 ORDER BY created_at`, userID)
}

func (r *alertConfigRepository) ListEnabled(ctx context.Context) ([]*model.AlertConfig, error) {
	return queryDocs[model.AlertConfig](ctx, r.pool,
		`SELECT doc FROM alert_configs WHERE enabled ORDER BY created_at`)
}

func (r *alertConfigRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM alert_configs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to delete alert config", goerr.V("id", id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(interfaces.ErrNotFound, "alert config not found", goerr.V("id", id))
	}
	return nil
}
