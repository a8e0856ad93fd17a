package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/repository/firestore"
	"github.com/gametheory-pro/gtpro/pkg/repository/memory"
	"github.com/gametheory-pro/gtpro/pkg/repository/postgres"
	"github.com/m-mizutani/gt"
)

type repoFactory func(t *testing.T) interfaces.Repository

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newPostgresRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	repo, err := postgres.New(ctx, dsn)
	gt.NoError(t, err).Required()
	_, err = repo.Migrate(ctx)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

// uniq returns an id that does not collide across runs on shared databases
func uniq(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func forEachBackend(t *testing.T, run func(t *testing.T, newRepo repoFactory)) {
	t.Run("memory", func(t *testing.T) { run(t, newMemoryRepository) })
	t.Run("firestore", func(t *testing.T) { run(t, newFirestoreRepository) })
	t.Run("postgres", func(t *testing.T) { run(t, newPostgresRepository) })
}
