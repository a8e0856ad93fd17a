package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/repository/memory"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newsWith(items []model.NewsArticle) *fakeNews {
	return &fakeNews{
		search: func(ctx context.Context, query string, limit int) ([]model.NewsArticle, error) {
			return items, nil
		},
	}
}

func TestCrisisUseCase_FetchAlerts(t *testing.T) {
	ctx := context.Background()

	t.Run("pads with filler alerts below three", func(t *testing.T) {
		uc := usecase.New(memory.New(),
			usecase.WithClock(fixedClock()),
			usecase.WithNews(newsWith(articles("War escalates near the Ukraine border"))),
		)

		result := uc.Crisis.FetchAlerts(ctx)
		gt.Bool(t, result.Success).True()
		gt.Bool(t, result.Degraded).True()
		gt.Array(t, result.Data).Length(3)

		first := result.Data[0]
		gt.Value(t, first.Severity).Equal(types.CrisisSeverityHigh)
		gt.Number(t, first.EscalationRisk).Equal(70)
		gt.Value(t, first.Region).Equal("Europe")
		gt.Value(t, first.Type).Equal("Military")
		gt.String(t, first.Fingerprint).NotEqual("")

		gt.Value(t, result.Data[1].ID).Equal("filler-1")
		gt.Value(t, result.Data[1].Fingerprint).Equal("")
		gt.Value(t, result.Data[2].ID).Equal("filler-2")
	})

	t.Run("no filler at three alerts", func(t *testing.T) {
		uc := usecase.New(memory.New(),
			usecase.WithNews(newsWith(articles("Talks resume", "Markets calm", "Flood hits coastal towns"))),
		)

		result := uc.Crisis.FetchAlerts(ctx)
		gt.Array(t, result.Data).Length(3)
		for _, alert := range result.Data {
			gt.String(t, alert.Fingerprint).NotEqual("")
		}
		gt.Value(t, result.Data[0].Severity).Equal(types.CrisisSeverityMedium)
		gt.Value(t, result.Data[0].Region).Equal("Global")
		gt.Value(t, result.Data[0].Type).Equal("General")
		gt.Value(t, result.Data[2].Type).Equal("Natural Disaster")
	})

	t.Run("filler alerts do not share the catalog slices", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithNews(newsWith(articles("Talks resume"))))

		result := uc.Crisis.FetchAlerts(ctx)
		gt.Array(t, result.Data).Length(3)
		result.Data[1].Sources[0] = "changed"

		again := uc.Crisis.FetchAlerts(ctx)
		gt.Value(t, again.Data[1].Sources[0]).Equal("GameTheory Pro Monitoring")
	})
}

func TestCrisisUseCase_RefreshCrises(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	sl := &fakeSlack{}
	pub := &fakePublisher{}

	uc := usecase.New(repo,
		usecase.WithClock(fixedClock()),
		usecase.WithNews(newsWith(articles("Missile attack reported in Israel", "Parliament debates budget"))),
		usecase.WithSlack(sl),
		usecase.WithPublisher(pub),
	)

	subscriber := &model.AlertConfig{Regions: []string{"Middle East"}, MinSeverity: types.CrisisSeverityHigh, Enabled: true}
	gt.Value(t, uc.Persistence.SaveAlertConfig(ctx, "user-1", subscriber)).NotNil()
	other := &model.AlertConfig{Regions: []string{"Asia"}, Enabled: true}
	gt.Value(t, uc.Persistence.SaveAlertConfig(ctx, "user-2", other)).NotNil()

	gt.NoError(t, uc.Crisis.RefreshCrises(ctx)).Required()

	stored := uc.Persistence.ListCrisisEvents(ctx, 0)
	gt.Array(t, stored).Length(2)
	gt.Array(t, pub.published).Length(2)
	gt.Array(t, sl.posted).Length(1)
	gt.Value(t, sl.posted[0].Title).Equal("Missile attack reported in Israel")
	gt.Array(t, uc.Crisis.Current()).Length(3)

	gt.Array(t, uc.Persistence.ListNotifications(ctx, "user-1", 0)).Length(1)
	gt.Array(t, uc.Persistence.ListNotifications(ctx, "user-2", 0)).Length(0)

	t.Run("second cycle stores nothing new", func(t *testing.T) {
		gt.NoError(t, uc.Crisis.RefreshCrises(ctx)).Required()
		gt.Array(t, uc.Persistence.ListCrisisEvents(ctx, 0)).Length(2)
		gt.Array(t, pub.published).Length(2)
		gt.Array(t, sl.posted).Length(1)
	})
}

func TestCrisisUseCase_RefreshCrisesConcurrent(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	release := make(chan struct{})
	items := articles("Missile attack reported in Israel", "Parliament debates budget")

	uc := usecase.New(memory.New(),
		usecase.WithClock(fixedClock()),
		usecase.WithNews(&fakeNews{
			search: func(ctx context.Context, query string, limit int) ([]model.NewsArticle, error) {
				<-release
				return items, nil
			},
		}),
		usecase.WithPublisher(pub),
	)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gt.NoError(t, uc.Crisis.RefreshCrises(ctx))
		}()
	}
	close(release)
	wg.Wait()

	gt.Array(t, uc.Persistence.ListCrisisEvents(ctx, 0)).Length(2)
	gt.Array(t, pub.published).Length(2)
}

func TestFingerprint(t *testing.T) {
	a := model.NewsArticle{Title: "Same", URL: "https://example.com/1"}
	b := model.NewsArticle{Title: "Different title", URL: "https://example.com/1"}
	c := model.NewsArticle{Title: "Same", Source: "Wire"}

	gt.Value(t, usecase.Fingerprint(a)).Equal(usecase.Fingerprint(b))
	gt.Value(t, usecase.Fingerprint(a)).NotEqual(usecase.Fingerprint(c))
}
