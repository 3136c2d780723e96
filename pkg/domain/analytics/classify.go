// Package analytics is the deterministic scoring engine that turns a
// project snapshot into derived risk, health and capacity signals. Every
// function here is pure: same snapshot, same "now", same output. The one
// exception, capacity demand variance, is isolated behind VarianceSource.
package analytics

import (
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// rushedTrackingRatio marks a completed task as rushed when tracked time
// landed below half of its estimate.
const rushedTrackingRatio = 0.5

// TaskBreakdown is a single classification pass over a task set. The
// health scorer and the risk radar weight these counts differently but
// must agree on what "overdue" or "blocked" means, so the counting
// happens exactly once.
type TaskBreakdown struct {
	Total      int
	Completed  int
	InProgress int
	Blocked    int
	Pending    int

	Overdue                int // incomplete, due date in the past
	UnassignedHighPriority int // incomplete, priority high, no assignee
	MissingEstimate        int // incomplete, no estimated hours
	RushedCompleted        int // completed with tracked < rushedTrackingRatio * estimated
}

// Classify counts task categories against a reference time.
func Classify(tasks []project.Task, now time.Time) TaskBreakdown {
	var b TaskBreakdown
	b.Total = len(tasks)

	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case project.StatusCompleted:
			b.Completed++
		case project.StatusInProgress:
			b.InProgress++
		case project.StatusBlocked:
			b.Blocked++
		case project.StatusPending:
			b.Pending++
		}

		if t.IsOverdue(now) {
			b.Overdue++
		}
		if !t.IsCompleted() {
			if t.Priority == project.PriorityHigh && t.IsUnassigned() {
				b.UnassignedHighPriority++
			}
			if t.EstimatedHours == nil {
				b.MissingEstimate++
			}
		}
		if t.IsCompleted() && t.EstimatedHours != nil && t.TrackedHours != nil {
			if *t.TrackedHours < rushedTrackingRatio**t.EstimatedHours {
				b.RushedCompleted++
			}
		}
	}
	return b
}
