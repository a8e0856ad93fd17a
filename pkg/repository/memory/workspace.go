package memory

import (
	"context"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type workspaceRepository struct {
	table *table[model.CollaborationWorkspace]
}

func newWorkspaceRepository() *workspaceRepository {
	return &workspaceRepository{table: newTable(cloneWorkspace)}
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

	r.table.put(w.ID, w)
	return nil
}

func (r *workspaceRepository) Get(ctx context.Context, id string) (*model.CollaborationWorkspace, error) {
	w, ok := r.table.get(id)
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "workspace not found", goerr.V("id", id))
	}
	return w, nil
}

func (r *workspaceRepository) List(ctx context.Context, userID string) ([]*model.CollaborationWorkspace, error) {
	return r.table.filter(
		func(w *model.CollaborationWorkspace) bool { return isMember(w, userID) },
		func(a, b *model.CollaborationWorkspace) int { return b.UpdatedAt.Compare(a.UpdatedAt) },
		0,
	), nil
}

func (r *workspaceRepository) Delete(ctx context.Context, id string) error {
	if !r.table.remove(id) {
		return goerr.Wrap(interfaces.ErrNotFound, "workspace not found", goerr.V("id", id))
	}
	return nil
}

func isMember(w *model.CollaborationWorkspace, userID string) bool {
	if w.OwnerID == userID {
		return true
	}
	for _, p := range w.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
