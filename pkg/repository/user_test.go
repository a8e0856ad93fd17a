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

func TestProfileRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := uniq("user")

		_, err := repo.Profile().Get(ctx, userID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		p := &model.UserProfile{ID: userID, DisplayName: "Analyst", PreferredRegions: []string{"USA"}}
		gt.NoError(t, repo.Profile().Put(ctx, p)).Required()
		created := p.CreatedAt
		gt.Bool(t, created.IsZero()).False()

		p.DisplayName = "Senior Analyst"
		gt.NoError(t, repo.Profile().Put(ctx, p)).Required()

		got, err := repo.Profile().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.DisplayName).Equal("Senior Analyst")
		gt.Array(t, got.PreferredRegions).Length(1)
		gt.Bool(t, got.CreatedAt.Equal(created)).True()
	})
}

func TestNotificationRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := uniq("user")
		base := time.Now().UTC().Truncate(time.Millisecond)

		_, err := repo.Notification().Create(ctx, &model.Notification{Title: "no user"})
		gt.Value(t, err).NotNil()

		older, err := repo.Notification().Create(ctx, &model.Notification{
			UserID: userID, Title: "older", CreatedAt: base.Add(-time.Minute),
		})
		gt.NoError(t, err).Required()
		newer, err := repo.Notification().Create(ctx, &model.Notification{
			UserID: userID, Title: "newer", CreatedAt: base,
		})
		gt.NoError(t, err).Required()
		_, err = repo.Notification().Create(ctx, &model.Notification{UserID: uniq("other"), Title: "other"})
		gt.NoError(t, err).Required()

		list, err := repo.Notification().List(ctx, userID, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		gt.Value(t, list[0].ID).Equal(newer.ID)
		gt.Value(t, list[1].ID).Equal(older.ID)

		limited, err := repo.Notification().List(ctx, userID, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, limited).Length(1)

		t.Run("mark read only for owner", func(t *testing.T) {
			gt.Error(t, repo.Notification().MarkRead(ctx, "someone-else", newer.ID)).Is(interfaces.ErrNotFound)
			gt.NoError(t, repo.Notification().MarkRead(ctx, userID, newer.ID)).Required()

			list, err := repo.Notification().List(ctx, userID, 1)
			gt.NoError(t, err).Required()
			gt.Bool(t, list[0].Read).True()
		})

		t.Run("delete", func(t *testing.T) {
			gt.NoError(t, repo.Notification().Delete(ctx, userID, older.ID)).Required()
			gt.Error(t, repo.Notification().Delete(ctx, userID, older.ID)).Is(interfaces.ErrNotFound)
		})
	})
}

func TestLearningProgressRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := uniq("user")

		gt.Value(t, repo.LearningProgress().Put(ctx, &model.LearningProgress{UserID: userID})).NotNil()

		first := &model.LearningProgress{UserID: userID, ModuleID: "nash-equilibrium", Progress: 20}
		gt.NoError(t, repo.LearningProgress().Put(ctx, first)).Required()
		gt.NoError(t, repo.LearningProgress().Put(ctx, &model.LearningProgress{
			UserID: userID, ModuleID: "nash-equilibrium", Progress: 100, Completed: true,
		})).Required()
		gt.NoError(t, repo.LearningProgress().Put(ctx, &model.LearningProgress{
			UserID: userID, ModuleID: "bargaining", Progress: 10,
		})).Required()

		list, err := repo.LearningProgress().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
		gt.Value(t, list[0].ModuleID).Equal("bargaining")
		gt.Value(t, list[1].ID).Equal(first.ID)
		gt.Value(t, list[1].Progress).Equal(100.0)
		gt.Bool(t, list[1].Completed).True()
	})
}

func TestAlertConfigRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := uniq("user")

		enabled := &model.AlertConfig{UserID: userID, Regions: []string{"Europe"}, MinSeverity: types.CrisisSeverityHigh, Enabled: true}
		disabled := &model.AlertConfig{UserID: userID, Enabled: false}
		gt.NoError(t, repo.AlertConfig().Put(ctx, enabled)).Required()
		gt.NoError(t, repo.AlertConfig().Put(ctx, disabled)).Required()
		gt.String(t, enabled.ID).NotEqual("")

		list, err := repo.AlertConfig().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)

		all, err := repo.AlertConfig().ListEnabled(ctx)
		gt.NoError(t, err).Required()
		var found bool
		for _, c := range all {
			gt.Bool(t, c.Enabled).True()
			if c.ID == enabled.ID {
				found = true
			}
		}
		gt.Bool(t, found).True()

		gt.Error(t, repo.AlertConfig().Delete(ctx, "someone-else", enabled.ID)).Is(interfaces.ErrNotFound)
		gt.NoError(t, repo.AlertConfig().Delete(ctx, userID, enabled.ID)).Required()

		list, err = repo.AlertConfig().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
	})
}

func TestKVStore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := uniq("user")

		_, ok, err := repo.KV().Get(ctx, userID, "dismissed/risk-tour")
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()

		gt.NoError(t, repo.KV().Set(ctx, userID, "dismissed/risk-tour", "true")).Required()
		v, ok, err := repo.KV().Get(ctx, userID, "dismissed/risk-tour")
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Value(t, v).Equal("true")

		_, ok, err = repo.KV().Get(ctx, "someone-else", "dismissed/risk-tour")
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()

		gt.NoError(t, repo.KV().Delete(ctx, userID, "dismissed/risk-tour")).Required()
		_, ok, err = repo.KV().Get(ctx, userID, "dismissed/risk-tour")
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})
}
