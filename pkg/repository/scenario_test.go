package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestScenarioRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := uniq("user")

		s := &model.Scenario{
			UserID:   userID,
			Title:    "Strait blockade",
			Region:   "CHN",
			Status:   types.ScenarioStatusDraft,
			Outcomes: []model.ScenarioOutcome{{ID: "outcome-1", Title: "Status Quo", Probability: 50, Impact: types.ImpactMedium}},
		}
		gt.NoError(t, repo.Scenario().Put(ctx, s)).Required()
		gt.String(t, s.ID).NotEqual("")

		got, err := repo.Scenario().Get(ctx, userID, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Strait blockade")
		gt.Array(t, got.Outcomes).Length(1)

		_, err = repo.Scenario().Get(ctx, "someone-else", s.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		time.Sleep(2 * time.Millisecond)
		second := &model.Scenario{UserID: userID, Title: "Sanctions", Region: "RUS"}
		gt.NoError(t, repo.Scenario().Put(ctx, second)).Required()

		list, err := repo.Scenario().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		gt.Value(t, list[0].ID).Equal(second.ID)
	})
}

func TestSimulationRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := uniq("user")
		base := time.Now().UTC().Truncate(time.Millisecond)

		for i := range 3 {
			_, err := repo.Simulation().Create(ctx, &model.SimulationRecord{
				UserID:     userID,
				Config:     model.ScenarioConfig{Title: "run", Region: "USA"},
				Confidence: float64(i),
				CreatedAt:  base.Add(time.Duration(i) * time.Second),
			})
			gt.NoError(t, err).Required()
		}

		list, err := repo.Simulation().List(ctx, userID, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		gt.Value(t, list[0].Confidence).Equal(2.0)
		gt.Value(t, list[0].Config.Region).Equal("USA")
	})
}

func TestWorkspaceRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		owner := uniq("owner")
		member := uniq("member")

		w := &model.CollaborationWorkspace{
			OwnerID:      owner,
			Name:         "Eastern Europe desk",
			Participants: []model.Participant{{UserID: member, Name: "M", Role: "analyst"}},
			Tasks:        []model.Task{{ID: "t1", Title: "Draft brief", Status: types.TaskStatusTodo}},
		}
		gt.NoError(t, repo.Workspace().Put(ctx, w)).Required()

		got, err := repo.Workspace().Get(ctx, w.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Eastern Europe desk")
		gt.Array(t, got.Tasks).Length(1)

		for _, uid := range []string{owner, member} {
			list, err := repo.Workspace().List(ctx, uid)
			gt.NoError(t, err).Required()
			gt.Array(t, list).Length(1)
		}

		list, err := repo.Workspace().List(ctx, uniq("stranger"))
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)

		gt.NoError(t, repo.Workspace().Delete(ctx, w.ID)).Required()
		_, err = repo.Workspace().Get(ctx, w.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
		gt.Error(t, repo.Workspace().Delete(ctx, w.ID)).Is(interfaces.ErrNotFound)
	})
}
