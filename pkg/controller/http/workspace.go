package http

import (
	"net/http"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

func workspaceID(r *http.Request) string {
	return chi.URLParam(r, "workspaceID")
}

// workspaceMutation decodes a body of type T and applies fn to the workspace
func workspaceMutation[T any](fn func(r *http.Request, userID, id string, body T) (*model.CollaborationWorkspace, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var body T
		if err := decodeBody(r, &body); err != nil {
			writeError(ctx, w, err)
			return
		}
		ws, err := fn(r, userFrom(ctx).ID, workspaceID(r), body)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, ws)
	}
}

func listWorkspacesHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		list, err := uc.Collaboration.ListWorkspaces(ctx, userFrom(ctx).ID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, list)
	}
}

func createWorkspaceHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var ws model.CollaborationWorkspace
		if err := decodeBody(r, &ws); err != nil {
			writeError(ctx, w, err)
			return
		}
		created, err := uc.Collaboration.CreateWorkspace(ctx, userFrom(ctx), &ws)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusCreated, created)
	}
}

func getWorkspaceHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ws, err := uc.Collaboration.GetWorkspace(ctx, userFrom(ctx).ID, workspaceID(r))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, ws)
	}
}

type updateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func updateWorkspaceHandler(uc *usecase.UseCases) http.HandlerFunc {
	return workspaceMutation(func(r *http.Request, userID, id string, body updateWorkspaceRequest) (*model.CollaborationWorkspace, error) {
		return uc.Collaboration.UpdateWorkspace(r.Context(), userID, id, body.Name, body.Description)
	})
}

func deleteWorkspaceHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := uc.Collaboration.DeleteWorkspace(ctx, userFrom(ctx).ID, workspaceID(r)); err != nil {
			writeError(ctx, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addParticipantHandler(uc *usecase.UseCases) http.HandlerFunc {
	return workspaceMutation(func(r *http.Request, userID, id string, body model.Participant) (*model.CollaborationWorkspace, error) {
		return uc.Collaboration.AddParticipant(r.Context(), userID, id, body)
	})
}

func removeParticipantHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ws, err := uc.Collaboration.RemoveParticipant(ctx, userFrom(ctx).ID, workspaceID(r), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, ws)
	}
}

func addTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return workspaceMutation(func(r *http.Request, userID, id string, body model.Task) (*model.CollaborationWorkspace, error) {
		return uc.Collaboration.AddTask(r.Context(), userID, id, body)
	})
}

type updateTaskRequest struct {
	Status types.TaskStatus `json:"status"`
}

func updateTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return workspaceMutation(func(r *http.Request, userID, id string, body updateTaskRequest) (*model.CollaborationWorkspace, error) {
		return uc.Collaboration.UpdateTaskStatus(r.Context(), userID, id, chi.URLParam(r, "taskID"), body.Status)
	})
}

func addDiscussionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return workspaceMutation(func(r *http.Request, userID, id string, body model.Discussion) (*model.CollaborationWorkspace, error) {
		return uc.Collaboration.AddDiscussion(r.Context(), userID, id, body)
	})
}

func addDocumentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return workspaceMutation(func(r *http.Request, userID, id string, body model.Document) (*model.CollaborationWorkspace, error) {
		return uc.Collaboration.AddDocument(r.Context(), userID, id, body)
	})
}

func workspaceInsightsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := userFrom(ctx).ID
		if _, err := uc.Collaboration.GetWorkspace(ctx, userID, workspaceID(r)); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeResult(ctx, w, uc.Collaboration.Insights(ctx, userID, workspaceID(r)))
	}
}
