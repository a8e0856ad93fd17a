package firestore

import (
	"context"
	"slices"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// workspaceDocument adds the member index Firestore needs for
// array-contains queries
type workspaceDocument struct {
	model.CollaborationWorkspace
	MemberIDs []string `firestore:"member_ids"`
}

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
	store *store
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

	doc := &workspaceDocument{CollaborationWorkspace: *w, MemberIDs: memberIDs(w)}
	if _, err := r.store.collection(CollectionWorkspaces).Doc(w.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put workspace", goerr.V("id", w.ID))
	}
	return nil
}

func (r *workspaceRepository) Get(ctx context.Context, id string) (*model.CollaborationWorkspace, error) {
	doc, err := getDoc[workspaceDocument](ctx, r.store.collection(CollectionWorkspaces).Doc(id))
	if err != nil {
		return nil, err
	}
	return &doc.CollaborationWorkspace, nil
}

func (r *workspaceRepository) List(ctx context.Context, userID string) ([]*model.CollaborationWorkspace, error) {
	// Ordered in memory so the query needs no array composite index
	q := r.store.collection(CollectionWorkspaces).Where("member_ids", "array-contains", userID)
	docs, err := collect[workspaceDocument](ctx, q)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(docs, func(a, b *workspaceDocument) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	result := make([]*model.CollaborationWorkspace, len(docs))
	for i, d := range docs {
		result[i] = &d.CollaborationWorkspace
	}
	return result, nil
}

func (r *workspaceRepository) Delete(ctx context.Context, id string) error {
	ref := r.store.collection(CollectionWorkspaces).Doc(id)
	if _, err := getDoc[workspaceDocument](ctx, ref); err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete workspace", goerr.V("id", id))
	}
	return nil
}
