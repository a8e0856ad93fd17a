package memory

import (
	"maps"
	"slices"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
)

func cloneProfile(p *model.UserProfile) *model.UserProfile {
	c := *p
	c.PreferredRegions = slices.Clone(p.PreferredRegions)
	return &c
}

func cloneNotification(n *model.Notification) *model.Notification {
	c := *n
	return &c
}

func cloneLearningProgress(p *model.LearningProgress) *model.LearningProgress {
	c := *p
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneAlertConfig(a *model.AlertConfig) *model.AlertConfig {
	c := *a
	c.Regions = slices.Clone(a.Regions)
	return &c
}

func cloneOutcomes(outcomes []model.ScenarioOutcome) []model.ScenarioOutcome {
	if outcomes == nil {
		return nil
	}
	c := make([]model.ScenarioOutcome, len(outcomes))
	for i, o := range outcomes {
		o.Consequences = slices.Clone(o.Consequences)
		o.Mitigation = slices.Clone(o.Mitigation)
		c[i] = o
	}
	return c
}

func cloneScenario(s *model.Scenario) *model.Scenario {
	c := *s
	c.Parameters = maps.Clone(s.Parameters)
	c.Outcomes = cloneOutcomes(s.Outcomes)
	return &c
}

func cloneSimulation(r *model.SimulationRecord) *model.SimulationRecord {
	c := *r
	c.Config.Parameters = maps.Clone(r.Config.Parameters)
	c.Outcomes = cloneOutcomes(r.Outcomes)
	return &c
}

func cloneCrisisAlert(a *model.CrisisAlert) *model.CrisisAlert {
	c := *a
	c.Sources = slices.Clone(a.Sources)
	return &c
}

func cloneRiskAssessment(a *model.RiskAssessment) *model.RiskAssessment {
	c := *a
	if a.Factors != nil {
		c.Factors = make([]model.RiskFactor, len(a.Factors))
		for i, f := range a.Factors {
			f.Sources = slices.Clone(f.Sources)
			c.Factors[i] = f
		}
	}
	c.Trends = slices.Clone(a.Trends)
	c.Recommendations = slices.Clone(a.Recommendations)
	return &c
}

func cloneWorkspace(w *model.CollaborationWorkspace) *model.CollaborationWorkspace {
	c := *w
	c.Participants = slices.Clone(w.Participants)
	c.Discussions = slices.Clone(w.Discussions)
	c.Documents = slices.Clone(w.Documents)
	if w.Tasks != nil {
		c.Tasks = make([]model.Task, len(w.Tasks))
		for i, t := range w.Tasks {
			if t.DueDate != nil {
				d := *t.DueDate
				t.DueDate = &d
			}
			c.Tasks[i] = t
		}
	}
	return &c
}
