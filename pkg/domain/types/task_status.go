package types

// TaskStatus is the state of a collaboration task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as TaskStatusTodo
func (s TaskStatus) Normalize() TaskStatus {
	if s == "" {
		return TaskStatusTodo
	}
	return s
}
