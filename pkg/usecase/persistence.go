package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultListLimit bounds list reads that name no limit
const DefaultListLimit = 50

// PersistenceUseCase is the pass-through over the repository used by the
// dashboard. Failures are logged and reported as nil, false or an empty
// slice; callers never see a storage error.
type PersistenceUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

func (p *PersistenceUseCase) GetProfile(ctx context.Context, userID string) *model.UserProfile {
	profile, err := p.repo.Profile().Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			errutil.Handle(ctx, goerr.Wrap(err, "failed to get profile", goerr.V(UserIDKey, userID)), "persistence operation failed")
		}
		return nil
	}
	return profile
}

// SaveProfile stores profile under userID. The identity fields of the
// stored profile are kept.
func (p *PersistenceUseCase) SaveProfile(ctx context.Context, userID string, profile *model.UserProfile) *model.UserProfile {
	profile.ID = userID
	if current := p.GetProfile(ctx, userID); current != nil && profile.Email == "" {
		profile.Email = current.Email
	}
	if profile.PreferredRegions == nil {
		profile.PreferredRegions = []string{}
	}
	if err := p.repo.Profile().Put(ctx, profile); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to save profile", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return nil
	}
	return profile
}

// EnsureProfile returns the profile of user, creating it on first sign-in
func (p *PersistenceUseCase) EnsureProfile(ctx context.Context, user *model.AuthUser) *model.UserProfile {
	if profile := p.GetProfile(ctx, user.ID); profile != nil {
		return profile
	}
	name := user.Name
	if name == "" {
		name = user.Email
	}
	return p.SaveProfile(ctx, user.ID, &model.UserProfile{
		Email:       user.Email,
		DisplayName: name,
	})
}

func (p *PersistenceUseCase) CreateNotification(ctx context.Context, n *model.Notification) *model.Notification {
	created, err := p.repo.Notification().Create(ctx, n)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to create notification", goerr.V(UserIDKey, n.UserID)), "persistence operation failed")
		return nil
	}
	return created
}

func (p *PersistenceUseCase) ListNotifications(ctx context.Context, userID string, limit int) []*model.Notification {
	list, err := p.repo.Notification().List(ctx, userID, listLimit(limit))
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to list notifications", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return []*model.Notification{}
	}
	return list
}

func (p *PersistenceUseCase) MarkNotificationRead(ctx context.Context, userID, id string) bool {
	if err := p.repo.Notification().MarkRead(ctx, userID, id); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to mark notification read", goerr.V(UserIDKey, userID), goerr.V("notification_id", id)), "persistence operation failed")
		return false
	}
	return true
}

func (p *PersistenceUseCase) DeleteNotification(ctx context.Context, userID, id string) bool {
	if err := p.repo.Notification().Delete(ctx, userID, id); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to delete notification", goerr.V(UserIDKey, userID), goerr.V("notification_id", id)), "persistence operation failed")
		return false
	}
	return true
}

// SaveLearningProgress upserts progress of one module. Reaching 100 marks
// the module completed.
func (p *PersistenceUseCase) SaveLearningProgress(ctx context.Context, userID string, progress *model.LearningProgress) *model.LearningProgress {
	progress.UserID = userID
	progress.Progress = model.ClampScore(progress.Progress)
	if progress.Progress >= 100 {
		progress.Completed = true
	}
	if progress.Completed && progress.CompletedAt == nil {
		now := p.now().UTC()
		progress.CompletedAt = &now
	}
	if err := p.repo.LearningProgress().Put(ctx, progress); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to save learning progress", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return nil
	}
	return progress
}

func (p *PersistenceUseCase) ListLearningProgress(ctx context.Context, userID string) []*model.LearningProgress {
	list, err := p.repo.LearningProgress().List(ctx, userID)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to list learning progress", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return []*model.LearningProgress{}
	}
	return list
}

func (p *PersistenceUseCase) SaveAlertConfig(ctx context.Context, userID string, cfg *model.AlertConfig) *model.AlertConfig {
	cfg.UserID = userID
	if cfg.Regions == nil {
		cfg.Regions = []string{}
	}
	if err := p.repo.AlertConfig().Put(ctx, cfg); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to save alert config", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return nil
	}
	return cfg
}

func (p *PersistenceUseCase) ListAlertConfigs(ctx context.Context, userID string) []*model.AlertConfig {
	list, err := p.repo.AlertConfig().List(ctx, userID)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to list alert configs", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return []*model.AlertConfig{}
	}
	return list
}

func (p *PersistenceUseCase) DeleteAlertConfig(ctx context.Context, userID, id string) bool {
	if err := p.repo.AlertConfig().Delete(ctx, userID, id); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to delete alert config", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return false
	}
	return true
}

func (p *PersistenceUseCase) ListSimulations(ctx context.Context, userID string, limit int) []*model.SimulationRecord {
	list, err := p.repo.Simulation().List(ctx, userID, listLimit(limit))
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to list simulations", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return []*model.SimulationRecord{}
	}
	return list
}

func (p *PersistenceUseCase) ListCrisisEvents(ctx context.Context, limit int) []*model.CrisisAlert {
	list, err := p.repo.CrisisEvent().List(ctx, listLimit(limit))
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to list crisis events"), "persistence operation failed")
		return []*model.CrisisAlert{}
	}
	return list
}

func (p *PersistenceUseCase) SaveRiskAssessment(ctx context.Context, a *model.RiskAssessment) *model.RiskAssessment {
	stored, err := p.repo.RiskAssessment().Create(ctx, a)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to save risk assessment", goerr.V(UserIDKey, a.UserID), goerr.V(RegionKey, a.Region)), "persistence operation failed")
		return nil
	}
	return stored
}

func (p *PersistenceUseCase) ListRiskAssessments(ctx context.Context, userID string, limit int) []*model.RiskAssessment {
	list, err := p.repo.RiskAssessment().ListByUser(ctx, userID, listLimit(limit))
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to list risk assessments", goerr.V(UserIDKey, userID)), "persistence operation failed")
		return []*model.RiskAssessment{}
	}
	return list
}

// SubscribeRiskUpdates calls fn for every stored risk assessment until the
// returned function is called or ctx ends
func (p *PersistenceUseCase) SubscribeRiskUpdates(ctx context.Context, fn func(*model.RiskAssessment)) func() {
	unsubscribe, err := p.repo.RiskAssessment().Subscribe(ctx, fn)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to subscribe to risk updates"), "persistence operation failed")
		return func() {}
	}
	return unsubscribe
}

// SubscribeCrisisEvents calls fn for every stored crisis event until the
// returned function is called or ctx ends
func (p *PersistenceUseCase) SubscribeCrisisEvents(ctx context.Context, fn func(*model.CrisisAlert)) func() {
	unsubscribe, err := p.repo.CrisisEvent().Subscribe(ctx, fn)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to subscribe to crisis events"), "persistence operation failed")
		return func() {}
	}
	return unsubscribe
}
