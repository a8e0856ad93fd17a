package interfaces

import (
	"context"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
)

// Repository defines the interface for data persistence
type Repository interface {
	Profile() ProfileRepository
	Notification() NotificationRepository
	LearningProgress() LearningProgressRepository
	AlertConfig() AlertConfigRepository
	Scenario() ScenarioRepository
	Simulation() SimulationRepository
	CrisisEvent() CrisisEventRepository
	RiskAssessment() RiskAssessmentRepository
	Workspace() WorkspaceRepository
	KV() KVStore

	Close() error
}

// ProfileRepository stores one profile per user
type ProfileRepository interface {
	// Get returns ErrNotFound when the profile does not exist
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	// Put creates or replaces the profile. CreatedAt is kept from the stored
	// profile and UpdatedAt is set on the argument.
	Put(ctx context.Context, profile *model.UserProfile) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	// List returns the user's notifications, newest first
	List(ctx context.Context, userID string, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
}

type LearningProgressRepository interface {
	// Put upserts by (UserID, ModuleID)
	Put(ctx context.Context, p *model.LearningProgress) error
	List(ctx context.Context, userID string) ([]*model.LearningProgress, error)
}

type AlertConfigRepository interface {
	// Put assigns ID and CreatedAt on cfg when empty
	Put(ctx context.Context, cfg *model.AlertConfig) error
	List(ctx context.Context, userID string) ([]*model.AlertConfig, error)
	// ListEnabled returns enabled configs of every user
	ListEnabled(ctx context.Context) ([]*model.AlertConfig, error)
	Delete(ctx context.Context, userID, id string) error
}

type ScenarioRepository interface {
	// Put assigns ID and timestamps on s
	Put(ctx context.Context, s *model.Scenario) error
	// Get returns ErrNotFound when the scenario belongs to another user
	Get(ctx context.Context, userID, id string) (*model.Scenario, error)
	// List returns the user's scenarios, most recently updated first
	List(ctx context.Context, userID string) ([]*model.Scenario, error)
}

type SimulationRepository interface {
	Create(ctx context.Context, rec *model.SimulationRecord) (*model.SimulationRecord, error)
	// List returns the user's simulations, newest first
	List(ctx context.Context, userID string, limit int) ([]*model.SimulationRecord, error)
}

// CrisisEventRepository stores crisis alerts. Subscribe delivers every alert
// created after the call until the returned function is invoked.
type CrisisEventRepository interface {
	Create(ctx context.Context, alert *model.CrisisAlert) (*model.CrisisAlert, error)
	// List returns alerts newest first
	List(ctx context.Context, limit int) ([]*model.CrisisAlert, error)
	// CreateIfAbsent stores alert unless an alert with the same non-empty
	// fingerprint is already stored, atomically. It returns nil and false for
	// a duplicate. Alerts without a fingerprint are always stored.
	CreateIfAbsent(ctx context.Context, alert *model.CrisisAlert) (*model.CrisisAlert, bool, error)
	Subscribe(ctx context.Context, fn func(*model.CrisisAlert)) (func(), error)
}

// RiskAssessmentRepository stores risk assessments. Subscribe delivers every
// assessment created after the call until the returned function is invoked.
type RiskAssessmentRepository interface {
	Create(ctx context.Context, a *model.RiskAssessment) (*model.RiskAssessment, error)
	// ListByUser returns the user's assessments, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.RiskAssessment, error)
	Subscribe(ctx context.Context, fn func(*model.RiskAssessment)) (func(), error)
}

type WorkspaceRepository interface {
	// Put assigns ID and timestamps on w
	Put(ctx context.Context, w *model.CollaborationWorkspace) error
	Get(ctx context.Context, id string) (*model.CollaborationWorkspace, error)
	// List returns workspaces where the user is owner or participant
	List(ctx context.Context, userID string) ([]*model.CollaborationWorkspace, error)
	Delete(ctx context.Context, id string) error
}

// KVStore is a per-user key-value store for small flags such as dismissed
// feature tips
type KVStore interface {
	Get(ctx context.Context, userID, key string) (string, bool, error)
	Set(ctx context.Context, userID, key, value string) error
	Delete(ctx context.Context, userID, key string) error
}
