package http

import (
	"net/http"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/gametheory-pro/gtpro/pkg/utils/async"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func meHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profile := uc.Persistence.GetProfile(ctx, userFrom(ctx).ID)
		if profile == nil {
			writeError(ctx, w, goerr.New("profile is not available"))
			return
		}
		writeData(ctx, w, http.StatusOK, profile)
	}
}

func updateProfileHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var profile model.UserProfile
		if err := decodeBody(r, &profile); err != nil {
			writeError(ctx, w, err)
			return
		}
		saved := uc.Persistence.SaveProfile(ctx, userFrom(ctx).ID, &profile)
		if saved == nil {
			writeError(ctx, w, goerr.New("failed to save profile"))
			return
		}
		writeData(ctx, w, http.StatusOK, saved)
	}
}

func riskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		region := chi.URLParam(r, "region")

		result, _ := uc.Risk.Select(ctx, userFrom(ctx).ID, region)
		if !result.Success {
			writeError(ctx, w, goerr.Wrap(errBadRequest, result.Error, goerr.V(usecase.RegionKey, region)))
			return
		}
		writeResult(ctx, w, result)
	}
}

func riskHistoryHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		writeData(ctx, w, http.StatusOK, uc.Persistence.ListRiskAssessments(ctx, userFrom(ctx).ID, queryInt(r, "limit")))
	}
}

func signalsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		region := chi.URLParam(r, "region")

		result := uc.Signals.Region(ctx, userFrom(ctx).ID, region)
		if !result.Success {
			writeError(ctx, w, goerr.Wrap(errBadRequest, result.Error, goerr.V(usecase.RegionKey, region)))
			return
		}
		writeResult(ctx, w, result)
	}
}

// crisisAlertsHandler serves the alerts of the last monitoring cycle and
// runs a fetch when no cycle has completed yet
func crisisAlertsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if alerts := uc.Crisis.Current(); alerts != nil {
			writeData(ctx, w, http.StatusOK, alerts)
			return
		}
		writeResult(ctx, w, uc.Crisis.FetchAlerts(ctx))
	}
}

func crisisEventsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		writeData(ctx, w, http.StatusOK, uc.Persistence.ListCrisisEvents(ctx, queryInt(r, "limit")))
	}
}

// crisisRefreshHandler starts a monitoring cycle in the background
func crisisRefreshHandler(uc *usecase.UseCases, d *async.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		d.Dispatch(ctx, "crisis_refresh", uc.Crisis.RefreshCrises)
		writeData(ctx, w, http.StatusAccepted, map[string]string{"status": "started"})
	}
}

func listScenariosHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		list, err := uc.Scenario.List(ctx, userFrom(ctx).ID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, list)
	}
}

func createScenarioHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var s model.Scenario
		if err := decodeBody(r, &s); err != nil {
			writeError(ctx, w, err)
			return
		}
		created, err := uc.Scenario.Create(ctx, userFrom(ctx).ID, &s)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusCreated, created)
	}
}

func getScenarioHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := uc.Scenario.Get(ctx, userFrom(ctx).ID, chi.URLParam(r, "scenarioID"))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, s)
	}
}

func simulateScenarioHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "scenarioID")
		if _, err := uc.Scenario.Get(ctx, userFrom(ctx).ID, id); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeResult(ctx, w, uc.Scenario.Simulate(ctx, userFrom(ctx).ID, id))
	}
}

func archiveScenarioHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := uc.Scenario.Archive(ctx, userFrom(ctx).ID, chi.URLParam(r, "scenarioID"))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeData(ctx, w, http.StatusOK, s)
	}
}

func listSimulationsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		writeData(ctx, w, http.StatusOK, uc.Persistence.ListSimulations(ctx, userFrom(ctx).ID, queryInt(r, "limit")))
	}
}

// predictionsHandler forecasts one indicator when ?indicator= is given and
// all of them otherwise
func predictionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		region := chi.URLParam(r, "region")
		timeframe := r.URL.Query().Get("timeframe")

		if name := r.URL.Query().Get("indicator"); name != "" {
			indicator, err := types.ParseIndicator(name)
			if err != nil {
				writeError(ctx, w, goerr.Wrap(errBadRequest, err.Error()))
				return
			}
			result := uc.Prediction.Forecast(ctx, region, indicator, timeframe)
			if !result.Success {
				writeError(ctx, w, goerr.Wrap(errBadRequest, result.Error))
				return
			}
			writeResult(ctx, w, result)
			return
		}

		result := uc.Prediction.ForecastAll(ctx, region, timeframe)
		if !result.Success {
			writeError(ctx, w, goerr.Wrap(errBadRequest, result.Error))
			return
		}
		writeResult(ctx, w, result)
	}
}
