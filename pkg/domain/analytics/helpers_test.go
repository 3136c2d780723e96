package analytics

import (
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// Fixed reference time so every test is deterministic.
var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func hoursPtr(h float64) *float64 { return &h }

func pointsPtr(p int) *int { return &p }

func timePtr(t time.Time) *time.Time { return &t }

func makeTask(id string, status project.TaskStatus, mutate ...func(*project.Task)) project.Task {
	t := project.Task{
		ID:        id,
		Title:     "Task " + id,
		Status:    status,
		Priority:  project.PriorityMedium,
		CreatedAt: testNow.AddDate(0, 0, -3),
		UpdatedAt: testNow.AddDate(0, 0, -1),
	}
	for _, m := range mutate {
		m(&t)
	}
	return t
}

func withDue(due time.Time) func(*project.Task) {
	return func(t *project.Task) { t.DueDate = timePtr(due) }
}

func withPriority(p project.TaskPriority) func(*project.Task) {
	return func(t *project.Task) { t.Priority = p }
}

func withEstimate(h float64) func(*project.Task) {
	return func(t *project.Task) { t.EstimatedHours = hoursPtr(h) }
}

func withTracked(h float64) func(*project.Task) {
	return func(t *project.Task) { t.TrackedHours = hoursPtr(h) }
}

func withAssignee(id string) func(*project.Task) {
	return func(t *project.Task) { t.AssigneeID = id }
}

func withPoints(p int) func(*project.Task) {
	return func(t *project.Task) { t.StoryPoints = pointsPtr(p) }
}

func withSprint(id string) func(*project.Task) {
	return func(t *project.Task) { t.SprintID = id }
}

func withCreated(at time.Time) func(*project.Task) {
	return func(t *project.Task) { t.CreatedAt = at }
}
