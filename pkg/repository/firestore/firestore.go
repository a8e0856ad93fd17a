package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Firestore implements interfaces.Repository on Cloud Firestore. Realtime
// subscriptions are served by query snapshots.
type Firestore struct {
	store *store

	profile      *profileRepository
	notification *notificationRepository
	learning     *learningProgressRepository
	alertConfig  *alertConfigRepository
	scenario     *scenarioRepository
	simulation   *simulationRepository
	crisisEvent  *crisisEventRepository
	risk         *riskAssessmentRepository
	workspace    *workspaceRepository
	kv           *kvStore
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix isolates collections, e.g. per test run
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.store.prefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	s := &store{client: client}
	f := &Firestore{
		store:        s,
		profile:      &profileRepository{store: s},
		notification: &notificationRepository{store: s},
		learning:     &learningProgressRepository{store: s},
		alertConfig:  &alertConfigRepository{store: s},
		scenario:     &scenarioRepository{store: s},
		simulation:   &simulationRepository{store: s},
		crisisEvent:  &crisisEventRepository{store: s},
		risk:         &riskAssessmentRepository{store: s},
		workspace:    &workspaceRepository{store: s},
		kv:           &kvStore{store: s},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Notification() interfaces.NotificationRepository {
	return f.notification
}

func (f *Firestore) LearningProgress() interfaces.LearningProgressRepository {
	return f.learning
}

func (f *Firestore) AlertConfig() interfaces.AlertConfigRepository {
	return f.alertConfig
}

func (f *Firestore) Scenario() interfaces.ScenarioRepository {
	return f.scenario
}

func (f *Firestore) Simulation() interfaces.SimulationRepository {
	return f.simulation
}

func (f *Firestore) CrisisEvent() interfaces.CrisisEventRepository {
	return f.crisisEvent
}

func (f *Firestore) RiskAssessment() interfaces.RiskAssessmentRepository {
	return f.risk
}

func (f *Firestore) Workspace() interfaces.WorkspaceRepository {
	return f.workspace
}

func (f *Firestore) KV() interfaces.KVStore {
	return f.kv
}

func (f *Firestore) Close() error {
	if f.store.client != nil {
		return f.store.client.Close()
	}
	return nil
}
