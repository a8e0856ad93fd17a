package repository_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestCrisisEventRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		fp := uniq("fp")

		received := make(chan *model.CrisisAlert, 4)
		unsubscribe, err := repo.CrisisEvent().Subscribe(ctx, func(a *model.CrisisAlert) {
			received <- a
		})
		gt.NoError(t, err).Required()

		alert := &model.CrisisAlert{
			Title:       "Port strike",
			Severity:    types.CrisisSeverityMedium,
			Region:      "Europe",
			Fingerprint: fp,
			Timestamp:   time.Now().UTC().Add(time.Second),
		}
		created, ok, err := repo.CrisisEvent().CreateIfAbsent(ctx, alert)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.String(t, created.ID).NotEqual("")

		select {
		case got := <-received:
			gt.Value(t, got.ID).Equal(created.ID)
		case <-time.After(10 * time.Second):
			t.Fatal("subscriber did not receive crisis event")
		}

		t.Run("same fingerprint is stored once", func(t *testing.T) {
			dup, ok, err := repo.CrisisEvent().CreateIfAbsent(ctx, alert)
			gt.NoError(t, err).Required()
			gt.Bool(t, ok).False()
			gt.Value(t, dup).Nil()

			select {
			case got := <-received:
				t.Fatalf("duplicate was announced: %s", got.ID)
			case <-time.After(500 * time.Millisecond):
			}
		})

		t.Run("concurrent creates of one fingerprint store one event", func(t *testing.T) {
			racer := &model.CrisisAlert{Title: "Grid failure", Fingerprint: uniq("fp")}
			var stored atomic.Int32
			var wg sync.WaitGroup
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, ok, err := repo.CrisisEvent().CreateIfAbsent(ctx, racer)
					gt.NoError(t, err)
					if ok {
						stored.Add(1)
					}
				}()
			}
			wg.Wait()
			gt.Value(t, stored.Load()).Equal(int32(1))
			select {
			case <-received:
			case <-time.After(10 * time.Second):
				t.Fatal("subscriber did not receive crisis event")
			}
		})

		t.Run("alerts without fingerprint are always stored", func(t *testing.T) {
			bare := &model.CrisisAlert{Title: "Unsourced report"}
			first, ok, err := repo.CrisisEvent().CreateIfAbsent(ctx, bare)
			gt.NoError(t, err).Required()
			gt.Bool(t, ok).True()
			second, ok, err := repo.CrisisEvent().CreateIfAbsent(ctx, bare)
			gt.NoError(t, err).Required()
			gt.Bool(t, ok).True()
			gt.String(t, second.ID).NotEqual(first.ID)
		})

		list, err := repo.CrisisEvent().List(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)

		unsubscribe()
		unsubscribe()
	})
}

func TestRiskAssessmentRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := uniq("user")

		received := make(chan *model.RiskAssessment, 4)
		unsubscribe, err := repo.RiskAssessment().Subscribe(ctx, func(a *model.RiskAssessment) {
			received <- a
		})
		gt.NoError(t, err).Required()
		defer unsubscribe()

		a := &model.RiskAssessment{
			UserID:       userID,
			Region:       "RUS",
			Factors:      []model.RiskFactor{{ID: "f1", Name: "Sanctions", Severity: types.FactorSeverityHigh}},
			LastAnalyzed: time.Now().UTC().Add(time.Second),
		}
		a.SetScore(75)
		created, err := repo.RiskAssessment().Create(ctx, a)
		gt.NoError(t, err).Required()

		select {
		case got := <-received:
			gt.Value(t, got.ID).Equal(created.ID)
			gt.Value(t, got.RiskLevel).Equal(types.RiskLevelHigh)
		case <-time.After(10 * time.Second):
			t.Fatal("subscriber did not receive risk assessment")
		}

		list, err := repo.RiskAssessment().ListByUser(ctx, userID, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
		gt.Array(t, list[0].Factors).Length(1)
	})
}

func TestSubscribeStopsOnContextCancel(t *testing.T) {
	forEachBackend(t, func(t *testing.T, newRepo repoFactory) {
		repo := newRepo(t)
		ctx, cancel := context.WithCancel(context.Background())

		calls := make(chan struct{}, 4)
		_, err := repo.CrisisEvent().Subscribe(ctx, func(*model.CrisisAlert) { calls <- struct{}{} })
		gt.NoError(t, err).Required()
		cancel()
		time.Sleep(100 * time.Millisecond)

		_, err = repo.CrisisEvent().Create(context.Background(), &model.CrisisAlert{Title: "after cancel"})
		gt.NoError(t, err).Required()

		select {
		case <-calls:
			t.Fatal("callback invoked after context cancel")
		case <-time.After(300 * time.Millisecond):
		}
	})
}
