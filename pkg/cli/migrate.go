package cli

import (
	"context"

	"github.com/gametheory-pro/gtpro/pkg/cli/config"
	"github.com/gametheory-pro/gtpro/pkg/repository/firestore"
	"github.com/gametheory-pro/gtpro/pkg/repository/postgres"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview changes without applying (firestore only)",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes or the PostgreSQL schema",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			switch repoCfg.Backend() {
			case config.BackendFirestore:
				return migrateFirestore(ctx, &repoCfg, dryRun)
			case config.BackendPostgres:
				return migratePostgres(ctx, &repoCfg)
			default:
				return goerr.Wrap(config.ErrUnknownBackend, "migrate requires firestore or postgres backend",
					goerr.V(config.BackendKey, repoCfg.Backend()))
			}
		},
	}
}

func migrateFirestore(ctx context.Context, repoCfg *config.Repository, dryRun bool) error {
	logger := logging.From(ctx)
	if repoCfg.ProjectID() == "" {
		return goerr.Wrap(config.ErrMissingCredentials, "firestore-project-id is required")
	}

	logger.Info("Migrate configuration",
		"projectID", repoCfg.ProjectID(),
		"databaseID", repoCfg.DatabaseID(),
		"prefix", repoCfg.CollectionPrefix(),
		"dryRun", dryRun)

	indexConfig := firestore.IndexConfig(repoCfg.CollectionPrefix())

	client, err := fireconf.NewClient(ctx, repoCfg.ProjectID(), repoCfg.DatabaseID())
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client")
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close fireconf client", "error", err.Error())
		}
	}()

	if dryRun {
		logger.Info("Dry run mode - previewing changes")
		plan, err := client.GetMigrationPlan(ctx, indexConfig)
		if err != nil {
			return goerr.Wrap(err, "failed to create migration plan")
		}

		if len(plan.Steps) == 0 {
			logger.Info("No changes required")
			return nil
		}

		for _, step := range plan.Steps {
			logger.Info("Migration step",
				"collection", step.Collection,
				"operation", step.Operation,
				"description", step.Description,
				"destructive", step.Destructive)
		}
		return nil
	}

	logger.Info("Applying migrations")
	if err := client.Migrate(ctx, indexConfig); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	logger.Info("Migrations applied successfully")
	return nil
}

func migratePostgres(ctx context.Context, repoCfg *config.Repository) error {
	logger := logging.From(ctx)
	if repoCfg.DatabaseURL() == "" {
		return goerr.Wrap(config.ErrMissingCredentials, "database-url is required")
	}

	db, err := postgres.New(ctx, repoCfg.DatabaseURL())
	if err != nil {
		return goerr.Wrap(err, "failed to connect to postgres")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close postgres", "error", err.Error())
		}
	}()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	logger.Info("Migrations applied successfully", "files", applied)
	return nil
}
