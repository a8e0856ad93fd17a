package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/gametheory-pro/gtpro/pkg/service/insight"
	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
	"github.com/gametheory-pro/gtpro/pkg/utils/latest"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

const (
	// MinCrisisAlerts is the count below which filler alerts are appended
	MinCrisisAlerts = 3

	crisisQuery        = "crisis OR conflict OR disaster OR sanctions"
	crisisArticleLimit = 10
	crisisParallelism  = 4
	crisisTrackerKey   = "crisis"

	NotificationKindCrisis = "crisis_alert"
)

type CrisisUseCase struct {
	uc          *UseCases
	current     *latest.Tracker[[]*model.CrisisAlert]
	slackMinSev types.CrisisSeverity
}

func newCrisisUseCase(uc *UseCases) *CrisisUseCase {
	minSev := uc.slackMinSev
	if !minSev.IsValid() {
		minSev = types.CrisisSeverityHigh
	}
	return &CrisisUseCase{
		uc:          uc,
		current:     latest.New[[]*model.CrisisAlert](),
		slackMinSev: minSev,
	}
}

// FetchAlerts classifies recent crisis headlines. Severity comes from the
// model, then from title keywords; filler alerts pad the list when fewer
// than MinCrisisAlerts were produced.
func (c *CrisisUseCase) FetchAlerts(ctx context.Context) model.Result[[]*model.CrisisAlert] {
	var causes []error

	articles, err := c.uc.headlines(ctx, crisisQuery, "crisis", crisisArticleLimit)
	if err != nil {
		causes = append(causes, goerr.Wrap(err, "crisis headlines unavailable"))
	}

	alerts := make([]*model.CrisisAlert, len(articles))
	outcomes := make([]insight.Outcome, len(articles))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(crisisParallelism)
	for i, article := range articles {
		eg.Go(func() error {
			alerts[i], outcomes[i] = c.classify(egCtx, article)
			return nil
		})
	}
	_ = eg.Wait()

	for _, o := range outcomes {
		if o.Degraded() {
			causes = append(causes, o.Err)
			break
		}
	}

	alerts = c.pad(alerts)

	if len(causes) > 0 {
		return model.Degraded(alerts, errors.Join(causes...))
	}
	return model.OK(alerts)
}

func (c *CrisisUseCase) classify(ctx context.Context, article model.NewsArticle) (*model.CrisisAlert, insight.Outcome) {
	analysis, outcome := c.uc.insight.AnalyzeCrisis(ctx, insight.CrisisInput{
		Title:       article.Title,
		Description: article.Description,
		Source:      article.Source,
	})

	text := article.Title + " " + article.Description
	ts := article.PublishedAt
	if ts.IsZero() {
		ts = c.uc.now().UTC()
	}

	alert := &model.CrisisAlert{
		ID:             model.NewID(),
		Title:          article.Title,
		Severity:       analysis.Severity,
		Region:         c.uc.catalog.DetermineRegion(text),
		Type:           c.uc.catalog.DetermineCrisisType(text),
		Description:    article.Description,
		Sources:        []string{},
		Timestamp:      ts,
		EscalationRisk: model.ClampScore(analysis.EscalationRisk),
		Fingerprint:    fingerprint(article),
	}
	if article.Source != "" {
		alert.Sources = append(alert.Sources, article.Source)
	}
	return alert, outcome
}

// pad appends catalog filler alerts while the list is shorter than
// MinCrisisAlerts. Filler alerts carry no fingerprint and are never stored.
func (c *CrisisUseCase) pad(alerts []*model.CrisisAlert) []*model.CrisisAlert {
	now := c.uc.now().UTC()
	for i := 0; len(alerts) < MinCrisisAlerts && i < len(c.uc.catalog.FillerAlerts); i++ {
		filler := c.uc.catalog.FillerAlerts[i]
		filler.ID = fmt.Sprintf("filler-%d", i+1)
		filler.Sources = append([]string(nil), filler.Sources...)
		filler.Timestamp = now
		filler.Fingerprint = ""
		alerts = append(alerts, &filler)
	}
	return alerts
}

// fingerprint identifies the article an alert was derived from
func fingerprint(article model.NewsArticle) string {
	key := article.URL
	if key == "" {
		key = article.Source + "|" + article.Title
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:16])
}

// Current returns the alerts of the last committed monitoring cycle
func (c *CrisisUseCase) Current() []*model.CrisisAlert {
	alerts, _ := c.current.Get(crisisTrackerKey)
	return alerts
}

// RefreshCrises runs one monitoring cycle: fetch, commit as current view,
// store unseen alerts, then notify Slack, the publisher and users whose
// alert configuration matches. Cycles overtaken by a newer one stop after
// fetching.
func (c *CrisisUseCase) RefreshCrises(ctx context.Context) error {
	ticket := c.current.Begin(crisisTrackerKey)
	result := c.FetchAlerts(ctx)
	if !c.current.Commit(ticket, result.Data) {
		logging.From(ctx).Info("discarding stale crisis monitoring cycle")
		return nil
	}

	fresh, err := c.store(ctx, result.Data)
	if err != nil {
		return err
	}
	if len(fresh) == 0 {
		return nil
	}

	logging.From(ctx).Info("new crisis alerts stored", "count", len(fresh), "degraded", result.Degraded)

	c.notifySlack(ctx, fresh)
	if err := c.uc.publisher.PublishCrisisAlerts(ctx, fresh); err != nil {
		errutil.Handle(ctx, err, "failed to publish crisis alerts")
	}
	c.notifyUsers(ctx, fresh)
	return nil
}

// store persists alerts whose fingerprint has not been seen and returns them
func (c *CrisisUseCase) store(ctx context.Context, alerts []*model.CrisisAlert) ([]*model.CrisisAlert, error) {
	var fresh []*model.CrisisAlert
	for _, alert := range alerts {
		if alert.Fingerprint == "" {
			continue
		}
		created, ok, err := c.uc.repo.CrisisEvent().CreateIfAbsent(ctx, alert)
		if err != nil {
			return fresh, goerr.Wrap(err, "failed to store crisis event", goerr.V("title", alert.Title))
		}
		if ok {
			fresh = append(fresh, created)
		}
	}
	return fresh, nil
}

func (c *CrisisUseCase) notifySlack(ctx context.Context, alerts []*model.CrisisAlert) {
	if c.uc.slack == nil {
		return
	}
	for _, alert := range alerts {
		if !alert.Severity.AtLeast(c.slackMinSev) {
			continue
		}
		if _, err := c.uc.slack.PostCrisisAlert(ctx, alert); err != nil {
			errutil.Handle(ctx, err, "failed to post crisis alert to Slack")
		}
	}
}

func (c *CrisisUseCase) notifyUsers(ctx context.Context, alerts []*model.CrisisAlert) {
	configs, err := c.uc.repo.AlertConfig().ListEnabled(ctx)
	if err != nil {
		errutil.Handle(ctx, err, "failed to list alert configs")
		return
	}

	for _, cfg := range configs {
		for _, alert := range alerts {
			if !cfg.Matches(alert) {
				continue
			}
			n := &model.Notification{
				UserID:  cfg.UserID,
				Title:   fmt.Sprintf("%s crisis alert: %s", alert.Severity, alert.Title),
				Message: fmt.Sprintf("%s event in %s, escalation risk %.0f%%", alert.Type, alert.Region, alert.EscalationRisk),
				Kind:    NotificationKindCrisis,
			}
			if _, err := c.uc.repo.Notification().Create(ctx, n); err != nil {
				errutil.Handle(ctx, err, "failed to create crisis notification")
			}
		}
	}
}
