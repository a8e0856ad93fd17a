package http

import (
	"net/http"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func listNotificationsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		writeData(ctx, w, http.StatusOK, uc.Persistence.ListNotifications(ctx, userFrom(ctx).ID, queryInt(r, "limit")))
	}
}

func markNotificationReadHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ok := uc.Persistence.MarkNotificationRead(ctx, userFrom(ctx).ID, chi.URLParam(r, "notificationID"))
		writeData(ctx, w, http.StatusOK, map[string]bool{"updated": ok})
	}
}

func deleteNotificationHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ok := uc.Persistence.DeleteNotification(ctx, userFrom(ctx).ID, chi.URLParam(r, "notificationID"))
		writeData(ctx, w, http.StatusOK, map[string]bool{"deleted": ok})
	}
}

func listLearningHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		writeData(ctx, w, http.StatusOK, uc.Persistence.ListLearningProgress(ctx, userFrom(ctx).ID))
	}
}

func saveLearningHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var p model.LearningProgress
		if err := decodeBody(r, &p); err != nil {
			writeError(ctx, w, err)
			return
		}
		p.ModuleID = chi.URLParam(r, "moduleID")
		saved := uc.Persistence.SaveLearningProgress(ctx, userFrom(ctx).ID, &p)
		if saved == nil {
			writeError(ctx, w, goerr.New("failed to save learning progress"))
			return
		}
		writeData(ctx, w, http.StatusOK, saved)
	}
}

func listAlertConfigsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		writeData(ctx, w, http.StatusOK, uc.Persistence.ListAlertConfigs(ctx, userFrom(ctx).ID))
	}
}

func saveAlertConfigHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var cfg model.AlertConfig
		if err := decodeBody(r, &cfg); err != nil {
			writeError(ctx, w, err)
			return
		}
		if cfg.MinSeverity != "" && !cfg.MinSeverity.IsValid() {
			writeError(ctx, w, goerr.Wrap(errBadRequest, "invalid minimum severity", goerr.V("severity", cfg.MinSeverity)))
			return
		}
		saved := uc.Persistence.SaveAlertConfig(ctx, userFrom(ctx).ID, &cfg)
		if saved == nil {
			writeError(ctx, w, goerr.New("failed to save alert config"))
			return
		}
		writeData(ctx, w, http.StatusOK, saved)
	}
}

func deleteAlertConfigHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ok := uc.Persistence.DeleteAlertConfig(ctx, userFrom(ctx).ID, chi.URLParam(r, "configID"))
		writeData(ctx, w, http.StatusOK, map[string]bool{"deleted": ok})
	}
}

type featureResponse struct {
	Feature   string `json:"feature"`
	Dismissed bool   `json:"dismissed"`
}

func featureHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		feature := chi.URLParam(r, "feature")
		writeData(ctx, w, http.StatusOK, featureResponse{
			Feature:   feature,
			Dismissed: uc.Features.IsDismissed(ctx, userFrom(ctx).ID, feature),
		})
	}
}

func dismissFeatureHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		feature := chi.URLParam(r, "feature")
		if err := uc.Features.Dismiss(ctx, userFrom(ctx).ID, feature); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, featureResponse{Feature: feature, Dismissed: true})
	}
}

func restoreFeatureHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		feature := chi.URLParam(r, "feature")
		if err := uc.Features.Restore(ctx, userFrom(ctx).ID, feature); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, featureResponse{Feature: feature, Dismissed: false})
	}
}
