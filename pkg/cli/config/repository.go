package config

import (
	"context"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/repository/firestore"
	"github.com/gametheory-pro/gtpro/pkg/repository/memory"
	"github.com/gametheory-pro/gtpro/pkg/repository/postgres"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	databaseURL      string `masq:"secret"`
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory, firestore or postgres)",
			Category:    "Repository",
			Value:       BackendMemory,
			Sources:     cli.EnvVars("GTPRO_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("GTPRO_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("GTPRO_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix added to every Firestore collection name",
			Category:    "Repository",
			Sources:     cli.EnvVars("GTPRO_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "database-url",
			Usage:       "PostgreSQL connection URL (required when using postgres backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("GTPRO_DATABASE_URL"),
			Destination: &r.databaseURL,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// ProjectID returns the Firestore project ID
func (r *Repository) ProjectID() string {
	return r.projectID
}

// DatabaseID returns the Firestore database ID
func (r *Repository) DatabaseID() string {
	return r.databaseID
}

// CollectionPrefix returns the Firestore collection prefix
func (r *Repository) CollectionPrefix() string {
	return r.collectionPrefix
}

// DatabaseURL returns the PostgreSQL connection URL
func (r *Repository) DatabaseURL() string {
	return r.databaseURL
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case BackendFirestore:
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrMissingCredentials, "firestore-project-id is required when using firestore backend",
				goerr.V(BackendKey, r.backend))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID,
			firestore.WithCollectionPrefix(r.collectionPrefix))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.From(ctx).Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case BackendPostgres:
		if r.databaseURL == "" {
			return nil, goerr.Wrap(ErrMissingCredentials, "database-url is required when using postgres backend",
				goerr.V(BackendKey, r.backend))
		}
		repo, err := postgres.New(ctx, r.databaseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize postgres repository")
		}
		logging.From(ctx).Info("Using PostgreSQL repository")
		return repo, nil

	case BackendMemory:
		logging.From(ctx).Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrUnknownBackend, "invalid repository backend", goerr.V(BackendKey, r.backend))
	}
}
