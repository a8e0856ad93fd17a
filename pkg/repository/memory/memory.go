package memory

import (
	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps every record in process. It backs tests and single-node
// deployments without a database.
type Memory struct {
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

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		profile:      newProfileRepository(),
		notification: newNotificationRepository(),
		learning:     newLearningProgressRepository(),
		alertConfig:  newAlertConfigRepository(),
		scenario:     newScenarioRepository(),
		simulation:   newSimulationRepository(),
		crisisEvent:  newCrisisEventRepository(),
		risk:         newRiskAssessmentRepository(),
		workspace:    newWorkspaceRepository(),
		kv:           newKVStore(),
	}
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Notification() interfaces.NotificationRepository {
	return m.notification
}

func (m *Memory) LearningProgress() interfaces.LearningProgressRepository {
	return m.learning
}

func (m *Memory) AlertConfig() interfaces.AlertConfigRepository {
	return m.alertConfig
}

func (m *Memory) Scenario() interfaces.ScenarioRepository {
	return m.scenario
}

func (m *Memory) Simulation() interfaces.SimulationRepository {
	return m.simulation
}

func (m *Memory) CrisisEvent() interfaces.CrisisEventRepository {
	return m.crisisEvent
}

func (m *Memory) RiskAssessment() interfaces.RiskAssessmentRepository {
	return m.risk
}

func (m *Memory) Workspace() interfaces.WorkspaceRepository {
	return m.workspace
}

func (m *Memory) KV() interfaces.KVStore {
	return m.kv
}

func (m *Memory) Close() error {
	return nil
}
