package http

import (
	"net/http"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
)

// The function endpoints answer every failure, malformed input included,
// with 500 and the error envelope.

func scenarioSimulationHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var cfg model.ScenarioConfig
		if err := decodeBody(r, &cfg); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		result := uc.Scenario.RunSimulation(ctx, userFrom(ctx).ID, cfg)
		writeResult(ctx, w, result)
	}
}

func riskAssessmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req model.RiskAssessmentRequest
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		result := uc.Risk.AssessRequest(ctx, userFrom(ctx).ID, req)
		writeResult(ctx, w, result)
	}
}
