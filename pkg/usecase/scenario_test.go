package usecase_test

import (
	"context"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/repository/memory"
	"github.com/gametheory-pro/gtpro/pkg/service/insight"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestScenarioUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	created, err := uc.Scenario.Create(ctx, "user-1", &model.Scenario{
		Title:  "Strait blockade",
		Region: "CHN",
	})
	gt.NoError(t, err).Required()
	gt.String(t, created.ID).NotEqual("")
	gt.Value(t, created.Status).Equal(types.ScenarioStatusDraft)

	list, err := uc.Scenario.List(ctx, "user-1")
	gt.NoError(t, err).Required()
	gt.Array(t, list).Length(1)

	t.Run("other users cannot read it", func(t *testing.T) {
		_, err := uc.Scenario.Get(ctx, "user-2", created.ID)
		gt.Error(t, err).Is(usecase.ErrScenarioNotFound)
	})

	t.Run("archive", func(t *testing.T) {
		archived, err := uc.Scenario.Archive(ctx, "user-1", created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, archived.Status).Equal(types.ScenarioStatusArchived)
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		_, err := uc.Scenario.Create(ctx, "user-1", &model.Scenario{Region: "CHN"})
		gt.Error(t, err).Is(model.ErrMissingRequired)
	})
}

func TestScenarioUseCase_Simulate(t *testing.T) {
	ctx := context.Background()

	t.Run("fallback outcomes replace the list and activate the scenario", func(t *testing.T) {
		uc := usecase.New(memory.New())
		s, err := uc.Scenario.Create(ctx, "user-1", &model.Scenario{
			Title:    "Sanctions tighten",
			Region:   "RUS",
			Outcomes: []model.ScenarioOutcome{{ID: "old", Title: "Old outcome"}},
		})
		gt.NoError(t, err).Required()

		result := uc.Scenario.Simulate(ctx, "user-1", s.ID)
		gt.Bool(t, result.Success).True()
		gt.Bool(t, result.Degraded).True()
		gt.Value(t, result.Data.Status).Equal(types.ScenarioStatusActive)
		gt.Array(t, result.Data.Outcomes).Length(3)
		gt.Value(t, result.Data.Outcomes[0].Title).Equal("Status Quo Maintained")
		gt.Number(t, result.Data.Probability).Equal(40)

		sims := uc.Persistence.ListSimulations(ctx, "user-1", 0)
		gt.Array(t, sims).Length(1)
		gt.Value(t, sims[0].ScenarioID).Equal(s.ID)
		gt.Bool(t, sims[0].Degraded).True()
	})

	t.Run("unknown scenario fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		result := uc.Scenario.Simulate(ctx, "user-1", "missing")
		gt.Bool(t, result.Success).False()
	})
}

func TestScenarioUseCase_RunSimulation(t *testing.T) {
	ctx := context.Background()

	t.Run("live outcomes get ids", func(t *testing.T) {
		ai := newFakeInsight()
		ai.generateScenario = func(ctx context.Context, cfg model.ScenarioConfig) (model.ScenarioAnalysis, insight.Outcome) {
			gt.Value(t, cfg.Region).Equal("IRN")
			return model.ScenarioAnalysis{
				Outcomes:   []model.ScenarioOutcome{{Title: "Deal signed", Probability: 60, Impact: types.ImpactLow}},
				Confidence: 72,
			}, insight.Outcome{Kind: insight.OutcomeLive}
		}
		uc := usecase.New(memory.New(), usecase.WithInsight(ai))

		result := uc.Scenario.RunSimulation(ctx, "user-1", model.ScenarioConfig{Title: "Nuclear talks", Region: "IRN"})
		gt.Bool(t, result.Success).True()
		gt.Bool(t, result.Degraded).False()
		gt.String(t, result.Data.ID).NotEqual("")
		gt.String(t, result.Data.Outcomes[0].ID).NotEqual("")
		gt.Number(t, result.Data.Confidence).Equal(72)
		gt.Value(t, result.Data.Config.Parameters).NotNil()
	})

	t.Run("invalid configuration fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		result := uc.Scenario.RunSimulation(ctx, "user-1", model.ScenarioConfig{Title: "No region"})
		gt.Bool(t, result.Success).False()
		gt.String(t, result.Error).Contains("required")
		gt.Array(t, uc.Persistence.ListSimulations(ctx, "user-1", 0)).Length(0)
	})
}
