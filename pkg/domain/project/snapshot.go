package project

import "time"

// Snapshot is a consistent read model of one project at one instant.
// All analytics modules read from the same snapshot independently.
type Snapshot struct {
	Tasks        []Task    `json:"tasks" yaml:"tasks"`
	Sprints      []Sprint  `json:"sprints" yaml:"sprints"`
	Members      []Member  `json:"members" yaml:"members"`
	TimeOff      []TimeOff `json:"time_off" yaml:"time_off"`
	SnapshotTime time.Time `json:"snapshot_time" yaml:"snapshot_time"`
}

// IsEmpty returns true if the snapshot carries no tasks at all.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Tasks) == 0
}

// FindSprint returns the sprint with the given ID, or nil if not found.
func (s *Snapshot) FindSprint(id string) *Sprint {
	for i := range s.Sprints {
		if s.Sprints[i].ID == id {
			return &s.Sprints[i]
		}
	}
	return nil
}

// ActiveSprint returns the first active sprint, or nil when none is running.
func (s *Snapshot) ActiveSprint() *Sprint {
	for i := range s.Sprints {
		if s.Sprints[i].IsActive() {
			return &s.Sprints[i]
		}
	}
	return nil
}

// IncompleteTasks returns all tasks that are not completed.
func (s *Snapshot) IncompleteTasks() []Task {
	var out []Task
	for _, t := range s.Tasks {
		if !t.IsCompleted() {
			out = append(out, t)
		}
	}
	return out
}
