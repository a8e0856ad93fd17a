package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection names without prefix
const (
	CollectionProfiles         = "profiles"
	CollectionNotifications    = "notifications"
	CollectionLearningProgress = "learning_progress"
	CollectionAlertConfigs     = "alert_configs"
	CollectionScenarios        = "scenarios"
	CollectionSimulations      = "simulations"
	CollectionCrisisEvents     = "crisis_events"
	CollectionRiskAssessments  = "risk_assessments"
	CollectionWorkspaces       = "workspaces"
	CollectionKV               = "kv"
)

type store struct {
	client *firestore.Client
	prefix string
}

func (s *store) collection(name string) *firestore.CollectionRef {
	if s.prefix != "" {
		return s.client.Collection(s.prefix + "_" + name)
	}
	return s.client.Collection(name)
}

// getDoc loads one document, mapping a missing document to ErrNotFound
func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "document not found", goerr.V("path", ref.Path))
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("path", ref.Path))
	}

	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal document", goerr.V("path", ref.Path))
	}
	return &v, nil
}

// collect drains a query into decoded documents
func collect[T any](ctx context.Context, q firestore.Query) ([]*T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	result := []*T{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate documents")
		}

		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal document", goerr.V("id", doc.Ref.ID))
		}
		result = append(result, &v)
	}
	return result, nil
}

func withLimit(q firestore.Query, limit int) firestore.Query {
	if limit > 0 {
		return q.Limit(limit)
	}
	return q
}

// watchAdded delivers documents added to the query result after the call.
// The query must only match documents created after subscription, so the
// first snapshot carries no stale entries.
func watchAdded[T any](ctx context.Context, q firestore.Query, fn func(*T)) func() {
	ctx, cancel := context.WithCancel(ctx)
	logger := logging.From(ctx)
	iter := q.Snapshots(ctx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					logger.Error("firestore subscription stopped", "error", err.Error())
				}
				return
			}

			for _, change := range snap.Changes {
				if change.Kind != firestore.DocumentAdded {
					continue
				}
				var v T
				if err := change.Doc.DataTo(&v); err != nil {
					logger.Warn("failed to decode subscribed document",
						"id", change.Doc.Ref.ID, "error", err.Error())
					continue
				}
				fn(&v)
			}
		}
	}()

	return cancel
}
