package usecase_test

import (
	"context"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/repository/memory"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestCollaborationUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), usecase.WithClock(fixedClock()))
	owner := &model.AuthUser{ID: "owner-1", Name: "Owner"}

	ws, err := uc.Collaboration.CreateWorkspace(ctx, owner, &model.CollaborationWorkspace{Name: "Black Sea desk"})
	gt.NoError(t, err).Required()
	gt.Value(t, ws.OwnerID).Equal("owner-1")
	gt.Array(t, ws.Participants).Length(1)
	gt.Value(t, ws.Participants[0].Role).Equal(usecase.RoleOwner)

	t.Run("outsiders are rejected", func(t *testing.T) {
		_, err := uc.Collaboration.GetWorkspace(ctx, "stranger", ws.ID)
		gt.Error(t, err).Is(usecase.ErrForbidden)
	})

	t.Run("unknown workspace", func(t *testing.T) {
		_, err := uc.Collaboration.GetWorkspace(ctx, "owner-1", "missing")
		gt.Error(t, err).Is(usecase.ErrWorkspaceNotFound)
	})

	t.Run("participants are added without validation", func(t *testing.T) {
		updated, err := uc.Collaboration.AddParticipant(ctx, "owner-1", ws.ID, model.Participant{UserID: "ghost-user"})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Participants).Length(2)
		gt.Value(t, updated.Participants[1].Role).Equal(usecase.RoleMember)

		list, err := uc.Collaboration.ListWorkspaces(ctx, "ghost-user")
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
	})

	t.Run("members cannot manage participants", func(t *testing.T) {
		_, err := uc.Collaboration.AddParticipant(ctx, "ghost-user", ws.ID, model.Participant{UserID: "another"})
		gt.Error(t, err).Is(usecase.ErrForbidden)
	})

	t.Run("tasks", func(t *testing.T) {
		updated, err := uc.Collaboration.AddTask(ctx, "ghost-user", ws.ID, model.Task{Title: "Map shipping routes"})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Tasks).Length(1)
		task := updated.Tasks[0]
		gt.Value(t, task.Status).Equal(types.TaskStatusTodo)

		updated, err = uc.Collaboration.UpdateTaskStatus(ctx, "owner-1", ws.ID, task.ID, types.TaskStatusDone)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Tasks[0].Status).Equal(types.TaskStatusDone)

		_, err = uc.Collaboration.UpdateTaskStatus(ctx, "owner-1", ws.ID, "missing", types.TaskStatusDone)
		gt.Error(t, err).Is(usecase.ErrTaskNotFound)
	})

	t.Run("discussions and documents", func(t *testing.T) {
		updated, err := uc.Collaboration.AddDiscussion(ctx, "ghost-user", ws.ID, model.Discussion{Topic: "Ports", Message: "Odesa traffic down"})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Discussions[0].AuthorID).Equal("ghost-user")

		updated, err = uc.Collaboration.AddDocument(ctx, "owner-1", ws.ID, model.Document{Title: "Brief", URL: "https://docs.example.com/brief"})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Documents).Length(1)
	})

	t.Run("insights fall back without a model", func(t *testing.T) {
		result := uc.Collaboration.Insights(ctx, "owner-1", ws.ID)
		gt.Bool(t, result.Success).True()
		gt.Bool(t, result.Degraded).True()
		gt.Value(t, result.Data.Summary).Equal("Collaboration insights are temporarily unavailable")
		gt.Number(t, result.Data.ConsensusLevel).Equal(50)
	})

	t.Run("owner cannot be removed and only the owner deletes", func(t *testing.T) {
		_, err := uc.Collaboration.RemoveParticipant(ctx, "owner-1", ws.ID, "owner-1")
		gt.Error(t, err).Is(usecase.ErrForbidden)

		gt.Error(t, uc.Collaboration.DeleteWorkspace(ctx, "ghost-user", ws.ID)).Is(usecase.ErrForbidden)
		gt.NoError(t, uc.Collaboration.DeleteWorkspace(ctx, "owner-1", ws.ID))

		_, err = uc.Collaboration.GetWorkspace(ctx, "owner-1", ws.ID)
		gt.Error(t, err).Is(usecase.ErrWorkspaceNotFound)
	})
}
