package model

import (
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// UserProfile is created on first sign-in and updated by the owner
type UserProfile struct {
	ID               string    `json:"id" firestore:"id"`
	Email            string    `json:"email" firestore:"email"`
	DisplayName      string    `json:"displayName" firestore:"display_name"`
	Organization     string    `json:"organization,omitempty" firestore:"organization"`
	PreferredRegions []string  `json:"preferredRegions" firestore:"preferred_regions"`
	ExperienceLevel  string    `json:"experienceLevel,omitempty" firestore:"experience_level"`
	CreatedAt        time.Time `json:"createdAt" firestore:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updated_at"`
}

// Notification is a message addressed to one user
type Notification struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"userId" firestore:"user_id"`
	Title     string    `json:"title" firestore:"title"`
	Message   string    `json:"message" firestore:"message"`
	Kind      string    `json:"kind" firestore:"kind"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
}

// LearningProgress tracks tutorial completion per user and module
type LearningProgress struct {
	ID          string     `json:"id" firestore:"id"`
	UserID      string     `json:"userId" firestore:"user_id"`
	ModuleID    string     `json:"moduleId" firestore:"module_id"`
	Progress    float64    `json:"progress" firestore:"progress"`
	Completed   bool       `json:"completed" firestore:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty" firestore:"completed_at"`
	UpdatedAt   time.Time  `json:"updatedAt" firestore:"updated_at"`
}

// AlertConfig subscribes a user to crisis alerts for a set of regions
type AlertConfig struct {
	ID          string               `json:"id" firestore:"id"`
	UserID      string               `json:"userId" firestore:"user_id"`
	Regions     []string             `json:"regions" firestore:"regions"`
	MinSeverity types.CrisisSeverity `json:"minSeverity" firestore:"min_severity"`
	Enabled     bool                 `json:"enabled" firestore:"enabled"`
	CreatedAt   time.Time            `json:"createdAt" firestore:"created_at"`
}

// Matches reports whether alert should be delivered under this config. An
// empty region list matches every region.
func (c *AlertConfig) Matches(alert *CrisisAlert) bool {
	if !c.Enabled {
		return false
	}
	min := c.MinSeverity
	if !min.IsValid() {
		min = types.CrisisSeverityHigh
	}
	if !alert.Severity.AtLeast(min) {
		return false
	}
	if len(c.Regions) == 0 {
		return true
	}
	for _, r := range c.Regions {
		if r == alert.Region {
			return true
		}
	}
	return false
}
