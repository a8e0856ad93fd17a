package usecase

import (
	"context"
	"errors"
	"slices"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/service/insight"
	"github.com/m-mizutani/goerr/v2"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"

	insightRecentDiscussions = 10
)

type CollaborationUseCase struct {
	uc *UseCases
}

func isMember(w *model.CollaborationWorkspace, userID string) bool {
	if w.OwnerID == userID {
		return true
	}
	return slices.ContainsFunc(w.Participants, func(p model.Participant) bool {
		return p.UserID == userID
	})
}

// CreateWorkspace stores a workspace owned by owner, who also becomes its
// first participant
func (c *CollaborationUseCase) CreateWorkspace(ctx context.Context, owner *model.AuthUser, w *model.CollaborationWorkspace) (*model.CollaborationWorkspace, error) {
	if err := w.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid workspace")
	}

	now := c.uc.now().UTC()
	w.ID = ""
	w.OwnerID = owner.ID
	w.Participants = []model.Participant{{UserID: owner.ID, Name: owner.Name, Role: RoleOwner, JoinedAt: now}}
	w.Tasks = []model.Task{}
	w.Discussions = []model.Discussion{}
	w.Documents = []model.Document{}

	if err := c.uc.repo.Workspace().Put(ctx, w); err != nil {
		return nil, goerr.Wrap(err, "failed to create workspace", goerr.V(UserIDKey, owner.ID))
	}
	return w, nil
}

func (c *CollaborationUseCase) ListWorkspaces(ctx context.Context, userID string) ([]*model.CollaborationWorkspace, error) {
	list, err := c.uc.repo.Workspace().List(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list workspaces", goerr.V(UserIDKey, userID))
	}
	return list, nil
}

// GetWorkspace returns the workspace when userID is its owner or a participant
func (c *CollaborationUseCase) GetWorkspace(ctx context.Context, userID, id string) (*model.CollaborationWorkspace, error) {
	w, err := c.uc.repo.Workspace().Get(ctx, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(ErrWorkspaceNotFound, "workspace not found", goerr.V(WorkspaceIDKey, id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get workspace", goerr.V(WorkspaceIDKey, id))
	}
	if !isMember(w, userID) {
		return nil, goerr.Wrap(ErrForbidden, "not a workspace participant",
			goerr.V(WorkspaceIDKey, id), goerr.V(UserIDKey, userID))
	}
	return w, nil
}

// mutate applies fn to the workspace and stores it. ownerOnly restricts the
// change to the workspace owner.
func (c *CollaborationUseCase) mutate(ctx context.Context, userID, id string, ownerOnly bool, fn func(w *model.CollaborationWorkspace) error) (*model.CollaborationWorkspace, error) {
	w, err := c.GetWorkspace(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if ownerOnly && w.OwnerID != userID {
		return nil, goerr.Wrap(ErrForbidden, "only the owner can change this",
			goerr.V(WorkspaceIDKey, id), goerr.V(UserIDKey, userID))
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := c.uc.repo.Workspace().Put(ctx, w); err != nil {
		return nil, goerr.Wrap(err, "failed to save workspace", goerr.V(WorkspaceIDKey, id))
	}
	return w, nil
}

// UpdateWorkspace changes name and description
func (c *CollaborationUseCase) UpdateWorkspace(ctx context.Context, userID, id, name, description string) (*model.CollaborationWorkspace, error) {
	return c.mutate(ctx, userID, id, true, func(w *model.CollaborationWorkspace) error {
		if name != "" {
			w.Name = name
		}
		w.Description = description
		return nil
	})
}

func (c *CollaborationUseCase) DeleteWorkspace(ctx context.Context, userID, id string) error {
	w, err := c.GetWorkspace(ctx, userID, id)
	if err != nil {
		return err
	}
	if w.OwnerID != userID {
		return goerr.Wrap(ErrForbidden, "only the owner can delete a workspace", goerr.V(WorkspaceIDKey, id))
	}
	if err := c.uc.repo.Workspace().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete workspace", goerr.V(WorkspaceIDKey, id))
	}
	return nil
}

// AddParticipant adds or updates a participant. The user id is not checked
// against known profiles.
func (c *CollaborationUseCase) AddParticipant(ctx context.Context, userID, id string, p model.Participant) (*model.CollaborationWorkspace, error) {
	if p.UserID == "" {
		return nil, goerr.Wrap(model.ErrMissingRequired, "participant user id is required")
	}
	return c.mutate(ctx, userID, id, true, func(w *model.CollaborationWorkspace) error {
		if p.Role == "" {
			p.Role = RoleMember
		}
		p.JoinedAt = c.uc.now().UTC()
		for i := range w.Participants {
			if w.Participants[i].UserID == p.UserID {
				p.JoinedAt = w.Participants[i].JoinedAt
				w.Participants[i] = p
				return nil
			}
		}
		w.Participants = append(w.Participants, p)
		return nil
	})
}

// RemoveParticipant drops a participant. The owner cannot be removed.
func (c *CollaborationUseCase) RemoveParticipant(ctx context.Context, userID, id, participantID string) (*model.CollaborationWorkspace, error) {
	return c.mutate(ctx, userID, id, true, func(w *model.CollaborationWorkspace) error {
		if participantID == w.OwnerID {
			return goerr.Wrap(ErrForbidden, "owner cannot be removed", goerr.V(WorkspaceIDKey, id))
		}
		w.Participants = slices.DeleteFunc(w.Participants, func(p model.Participant) bool {
			return p.UserID == participantID
		})
		return nil
	})
}

func (c *CollaborationUseCase) AddTask(ctx context.Context, userID, id string, task model.Task) (*model.CollaborationWorkspace, error) {
	if task.Title == "" {
		return nil, goerr.Wrap(model.ErrMissingRequired, "task title is required")
	}
	return c.mutate(ctx, userID, id, false, func(w *model.CollaborationWorkspace) error {
		task.ID = model.NewID()
		task.Status = task.Status.Normalize()
		if !task.Status.IsValid() {
			return goerr.Wrap(model.ErrInvalidValue, "invalid task status", goerr.V("status", task.Status))
		}
		task.CreatedAt = c.uc.now().UTC()
		w.Tasks = append(w.Tasks, task)
		return nil
	})
}

func (c *CollaborationUseCase) UpdateTaskStatus(ctx context.Context, userID, id, taskID string, status types.TaskStatus) (*model.CollaborationWorkspace, error) {
	if !status.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidValue, "invalid task status", goerr.V("status", status))
	}
	return c.mutate(ctx, userID, id, false, func(w *model.CollaborationWorkspace) error {
		for i := range w.Tasks {
			if w.Tasks[i].ID == taskID {
				w.Tasks[i].Status = status
				return nil
			}
		}
		return goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V("task_id", taskID))
	})
}

func (c *CollaborationUseCase) AddDiscussion(ctx context.Context, userID, id string, d model.Discussion) (*model.CollaborationWorkspace, error) {
	if d.Message == "" {
		return nil, goerr.Wrap(model.ErrMissingRequired, "discussion message is required")
	}
	return c.mutate(ctx, userID, id, false, func(w *model.CollaborationWorkspace) error {
		d.ID = model.NewID()
		d.AuthorID = userID
		d.CreatedAt = c.uc.now().UTC()
		w.Discussions = append(w.Discussions, d)
		return nil
	})
}

func (c *CollaborationUseCase) AddDocument(ctx context.Context, userID, id string, doc model.Document) (*model.CollaborationWorkspace, error) {
	if doc.Title == "" {
		return nil, goerr.Wrap(model.ErrMissingRequired, "document title is required")
	}
	return c.mutate(ctx, userID, id, false, func(w *model.CollaborationWorkspace) error {
		doc.ID = model.NewID()
		doc.AuthorID = userID
		doc.CreatedAt = c.uc.now().UTC()
		w.Documents = append(w.Documents, doc)
		return nil
	})
}

// Insights summarizes the workspace activity
func (c *CollaborationUseCase) Insights(ctx context.Context, userID, id string) model.Result[*model.CollaborationInsights] {
	w, err := c.GetWorkspace(ctx, userID, id)
	if err != nil {
		return model.Failed[*model.CollaborationInsights](err)
	}

	input := insight.CollaborationInput{
		Workspace:    w.Name,
		Participants: len(w.Participants),
		OpenTasks:    []string{},
		Discussions:  []string{},
		Documents:    []string{},
	}
	for _, t := range w.Tasks {
		if t.Status != types.TaskStatusDone {
			input.OpenTasks = append(input.OpenTasks, t.Title)
		}
	}
	start := max(0, len(w.Discussions)-insightRecentDiscussions)
	for _, d := range w.Discussions[start:] {
		input.Discussions = append(input.Discussions, d.Topic+": "+d.Message)
	}
	for _, d := range w.Documents {
		input.Documents = append(input.Documents, d.Title)
	}

	result, outcome := c.uc.insight.CollaborationInsights(ctx, input)
	if outcome.Degraded() {
		return model.Degraded(&result, outcome.Err)
	}
	return model.OK(&result)
}
