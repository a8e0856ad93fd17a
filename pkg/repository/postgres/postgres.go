package postgres

import (
	"context"
	"embed"
	"sort"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed sql/*.sql
var migrationFS embed.FS

// Notification channels used for realtime subscriptions
const (
	ChannelCrisisEvents    = "gtpro_crisis_events"
	ChannelRiskAssessments = "gtpro_risk_assessments"
)

// Postgres implements interfaces.Repository on PostgreSQL. Records are kept
// as JSONB documents next to the columns queries filter on; realtime
// subscriptions use LISTEN/NOTIFY.
type Postgres struct {
	pool *pgxpool.Pool

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

var _ interfaces.Repository = &Postgres{}

// New connects to databaseURL and verifies the connection
func New(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse database url")
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect database")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, goerr.Wrap(err, "failed to ping database")
	}

	return &Postgres{
		pool:         pool,
		profile:      &profileRepository{pool: pool},
		notification: &notificationRepository{pool: pool},
		learning:     &learningProgressRepository{pool: pool},
		alertConfig:  &alertConfigRepository{pool: pool},
		scenario:     &scenarioRepository{pool: pool},
		simulation:   &simulationRepository{pool: pool},
		crisisEvent:  &crisisEventRepository{pool: pool},
		risk:         &riskAssessmentRepository{pool: pool},
		workspace:    &workspaceRepository{pool: pool},
		kv:           &kvStore{pool: pool},
	}, nil
}

// Migrate applies the embedded schema files in name order. Every statement
// is idempotent.
func (p *Postgres) Migrate(ctx context.Context) ([]string, error) {
	entries, err := migrationFS.ReadDir("sql")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read migrations")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := migrationFS.ReadFile("sql/" + name)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read migration", goerr.V("name", name))
		}
		if _, err := p.pool.Exec(ctx, string(body)); err != nil {
			return nil, goerr.Wrap(err, "failed to apply migration", goerr.V("name", name))
		}
	}
	return names, nil
}

func (p *Postgres) Profile() interfaces.ProfileRepository {
	return p.profile
}

func (p *Postgres) Notification() interfaces.NotificationRepository {
	return p.notification
}

func (p *Postgres) LearningProgress() interfaces.LearningProgressRepository {
	return p.learning
}

func (p *Postgres) AlertConfig() interfaces.AlertConfigRepository {
	return p.alertConfig
}

func (p *Postgres) Scenario() interfaces.ScenarioRepository {
	return p.scenario
}

func (p *Postgres) Simulation() interfaces.SimulationRepository {
	return p.simulation
}

func (p *Postgres) CrisisEvent() interfaces.CrisisEventRepository {
	return p.crisisEvent
}

func (p *Postgres) RiskAssessment() interfaces.RiskAssessmentRepository {
	return p.risk
}

func (p *Postgres) Workspace() interfaces.WorkspaceRepository {
	return p.workspace
}

func (p *Postgres) KV() interfaces.KVStore {
	return p.kv
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
