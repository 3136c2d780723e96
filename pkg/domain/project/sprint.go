package project

import "time"

type SprintStatus string

const (
	SprintPlanned   SprintStatus = "planned"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

// Sprint is a fixed time-boxed iteration. StartDate <= EndDate is a
// data-integrity concern of the store, not of the engine.
type Sprint struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	StartDate time.Time    `json:"start_date" yaml:"start_date"`
	EndDate   time.Time    `json:"end_date" yaml:"end_date"`
	Status    SprintStatus `json:"status" yaml:"status"`
	Goal      string       `json:"goal,omitempty" yaml:"goal,omitempty"`
}

// IsActive returns true if the sprint is currently running.
func (s *Sprint) IsActive() bool {
	return s.Status == SprintActive
}

// Tasks returns the subset of tasks assigned to this sprint.
func (s *Sprint) Tasks(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if t.SprintID == s.ID {
			out = append(out, t)
		}
	}
	return out
}
