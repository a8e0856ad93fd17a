package model

import (
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// CollaborationWorkspace groups analysts working on a shared topic. Nested
// records reference each other by id only; nothing checks those ids exist.
type CollaborationWorkspace struct {
	ID           string        `json:"id" firestore:"id"`
	OwnerID      string        `json:"ownerId" firestore:"owner_id"`
	Name         string        `json:"name" firestore:"name"`
	Description  string        `json:"description" firestore:"description"`
	Participants []Participant `json:"participants" firestore:"participants"`
	Tasks        []Task        `json:"tasks" firestore:"tasks"`
	Discussions  []Discussion  `json:"discussions" firestore:"discussions"`
	Documents    []Document    `json:"documents" firestore:"documents"`
	CreatedAt    time.Time     `json:"createdAt" firestore:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" firestore:"updated_at"`
}

// Validate checks the fields a client must provide
func (w *CollaborationWorkspace) Validate() error {
	if w.Name == "" {
		return goerrMissing("name")
	}
	return nil
}

type Participant struct {
	UserID   string    `json:"userId" firestore:"user_id"`
	Name     string    `json:"name" firestore:"name"`
	Role     string    `json:"role" firestore:"role"`
	JoinedAt time.Time `json:"joinedAt" firestore:"joined_at"`
}

type Task struct {
	ID         string           `json:"id" firestore:"id"`
	Title      string           `json:"title" firestore:"title"`
	AssigneeID string           `json:"assigneeId,omitempty" firestore:"assignee_id"`
	Status     types.TaskStatus `json:"status" firestore:"status"`
	DueDate    *time.Time       `json:"dueDate,omitempty" firestore:"due_date"`
	CreatedAt  time.Time        `json:"createdAt" firestore:"created_at"`
}

type Discussion struct {
	ID        string    `json:"id" firestore:"id"`
	AuthorID  string    `json:"authorId" firestore:"author_id"`
	Topic     string    `json:"topic" firestore:"topic"`
	Message   string    `json:"message" firestore:"message"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
}

type Document struct {
	ID        string    `json:"id" firestore:"id"`
	Title     string    `json:"title" firestore:"title"`
	URL       string    `json:"url" firestore:"url"`
	AuthorID  string    `json:"authorId" firestore:"author_id"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
}

// CollaborationInsights is the validated reply of the collaboration prompt
type CollaborationInsights struct {
	Summary         string   `json:"summary"`
	ConsensusLevel  float64  `json:"consensusLevel"`
	KeyThemes       []string `json:"keyThemes"`
	Recommendations []string `json:"recommendations"`
	ActionItems     []string `json:"actionItems"`
}
