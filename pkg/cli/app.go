package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/cli/config"
	"github.com/gametheory-pro/gtpro/pkg/service/insight"
	"github.com/gametheory-pro/gtpro/pkg/service/mockdata"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// appConfig gathers the flag groups every command that runs use cases needs
type appConfig struct {
	repo      config.Repository
	gemini    config.Gemini
	providers config.Providers
	catalog   config.Catalog
	slack     config.Slack
	kafka     config.Kafka
	auth      config.Auth
	mockSeed  uint64
}

func (x *appConfig) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.Uint64Flag{
			Name:        "mock-seed",
			Usage:       "Seed of the substitute data generator (0 picks a time-based seed)",
			Sources:     cli.EnvVars("GTPRO_MOCK_SEED"),
			Destination: &x.mockSeed,
		},
	}
	flags = append(flags, x.repo.Flags()...)
	flags = append(flags, x.gemini.Flags()...)
	flags = append(flags, x.providers.Flags()...)
	flags = append(flags, x.catalog.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	flags = append(flags, x.kafka.Flags()...)
	flags = append(flags, x.auth.Flags()...)
	return flags
}

// build wires the use cases. The returned cleanup closes the repository and
// the publisher and must be called even when the command fails later.
func (x *appConfig) build(ctx context.Context) (*usecase.UseCases, func(), error) {
	logger := logging.From(ctx)

	catalog, err := x.catalog.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load catalog")
	}

	repo, err := x.repo.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}

	pub, err := x.kafka.Configure()
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := pub.Close(); err != nil {
			logger.Error("failed to close publisher", "error", err.Error())
		}
		if err := repo.Close(); err != nil {
			logger.Error("failed to close repository", "error", err.Error())
		}
	}

	gen, err := x.gemini.Configure(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	slackSvc, err := x.slack.Configure()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	minSev, err := x.slack.MinSeverity()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	seed := x.mockSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	opts := []usecase.Option{
		usecase.WithCatalog(catalog),
		usecase.WithInsight(insight.New(gen, insight.WithCatalog(catalog))),
		usecase.WithMockData(mockdata.NewSeeded(seed, mockdata.WithCatalog(catalog))),
		usecase.WithPublisher(pub),
		usecase.WithSlackMinSeverity(minSev),
	}
	if auth := x.auth.Configure(ctx); auth != nil {
		opts = append(opts, usecase.WithAuth(auth))
	}
	if svc := x.providers.News(); svc != nil {
		opts = append(opts, usecase.WithNews(svc))
	} else {
		logger.Info("News API key not configured, headlines will be generated")
	}
	if svc := x.providers.Economic(catalog); svc != nil {
		opts = append(opts, usecase.WithEconomic(svc))
	} else {
		logger.Info("Economic API key not configured, regional baselines will be used")
	}
	if slackSvc != nil {
		opts = append(opts, usecase.WithSlack(slackSvc))
		logger.Info("Slack crisis notifications enabled", "slack", x.slack)
	}

	logger.Info("Use cases configured",
		"backend", x.repo.Backend(),
		"providers", x.providers,
		"gemini", slog.GroupValue(x.gemini.LogAttrs()...),
	)

	return usecase.New(repo, opts...), cleanup, nil
}
