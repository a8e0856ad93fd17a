package postgres

import (
	"context"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

func memberIDs(w *model.CollaborationWorkspace) []string {
	ids := []string{w.OwnerID}
	for _, p := range w.Participants {
		if p.UserID != "" && p.UserID != w.OwnerID {
			ids = append(ids, p.UserID)
		}
	}
	return ids
}

type workspaceRepository struct {
	pool *pgxpool.Pool
}

func (r *workspaceRepository) Put(ctx context.Context, w *model.CollaborationWorkspace) error {
	if w.ID == "" {
		w.ID = model.NewID()
	}
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	raw, err := encode(w)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO workspaces (id, owner_id, member_ids, updated_at, doc) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET owner_id = EXCLUDED.owner_id, member_ids = EXCLUDED.member_ids,
			updated_at = EXCLUDED.updated_at, doc = EXCLUDED.doc
	`, w.ID, w.OwnerID, memberIDs(w), w.UpdatedAt, raw); err != nil {
		return goerr.Wrap(err, "failed to put workspace", goerr.V("id", w.ID))
	}
	return nil
}

func (r *workspaceRepository) Get(ctx context.Context, id string) (*model.CollaborationWorkspace, error) {
	w, err := queryDoc[model.CollaborationWorkspace](ctx, r.pool, `SELECT doc FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get workspace", goerr.V("id", id))
	}
	return w, nil
}

func (r *workspaceRepository) List(ctx context.Context, userID string) ([]*model.CollaborationWorkspace, error) {
	return queryDocs[model.CollaborationWorkspace](ctx, r.pool,
		`SELECT doc FROM workspaces WHERE $1 = ANY(member_ids) ORDER BY updated_at DESC`, userID)
}

func (r *workspaceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete workspace", goerr.V("id", id))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(interfaces.ErrNotFound, "workspace not found", goerr.V("id", id))
	}
	return nil
}
