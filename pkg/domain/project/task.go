// Package project defines the read-only domain snapshot the analytics
// engine consumes: tasks, sprints, team roster and time-off intervals.
// Entities are owned and mutated by the calling layer; the engine never
// writes to them.
package project

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusCompleted  TaskStatus = "completed"
)

// IsValid checks if the status is a recognized value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusBlocked, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// IsValid checks if the priority is a recognized value.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work as supplied by the store. Optional fields are
// pointers; a nil estimate and a zero assignee are meaningful to the
// scoring rules.
type Task struct {
	ID             string       `json:"id" yaml:"id"`
	Title          string       `json:"title" yaml:"title"`
	Status         TaskStatus   `json:"status" yaml:"status"`
	Priority       TaskPriority `json:"priority" yaml:"priority"`
	DueDate        *time.Time   `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
	TrackedHours   *float64     `json:"tracked_hours,omitempty" yaml:"tracked_hours,omitempty"`
	StoryPoints    *int         `json:"story_points,omitempty" yaml:"story_points,omitempty"`
	AssigneeID     string       `json:"assignee_id,omitempty" yaml:"assignee_id,omitempty"`
	SprintID       string       `json:"sprint_id,omitempty" yaml:"sprint_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" yaml:"updated_at"`
}

// IsCompleted returns true if the task is done.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue returns true if the task has a due date in the past and is
// not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted() && t.DueDate != nil && t.DueDate.Before(now)
}

// IsUnassigned returns true if no assignee reference is set.
func (t *Task) IsUnassigned() bool {
	return t.AssigneeID == ""
}

// Points returns the story points, or zero when none are set.
func (t *Task) Points() float64 {
	if t.StoryPoints == nil {
		return 0
	}
	return float64(*t.StoryPoints)
}
