package application

import (
	"github.com/felixgeelhaar/pulse/pkg/domain"
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// mockRepo is an in-memory SnapshotRepository for service tests.
type mockRepo struct {
	initialized bool
	tasks       []project.Task
	sprints     []project.Sprint
	roster      *project.Roster
	timeOff     []project.TimeOff
	history     *analytics.VelocityHistory
	runs        []domain.RunRecord

	loadTasksErr error
	saveTasksErr error
}

var _ domain.SnapshotRepository = (*mockRepo)(nil)

func newMockRepo() *mockRepo {
	return &mockRepo{initialized: true, roster: &project.Roster{}}
}

func (m *mockRepo) Initialize() error {
	m.initialized = true
	return nil
}

func (m *mockRepo) IsInitialized() bool { return m.initialized }

func (m *mockRepo) SaveTasks(tasks []project.Task) error {
	if m.saveTasksErr != nil {
		return m.saveTasksErr
	}
	m.tasks = tasks
	return nil
}

func (m *mockRepo) LoadTasks() ([]project.Task, error) {
	if m.loadTasksErr != nil {
		return nil, m.loadTasksErr
	}
	return m.tasks, nil
}

func (m *mockRepo) SaveSprints(sprints []project.Sprint) error {
	m.sprints = sprints
	return nil
}

func (m *mockRepo) LoadSprints() ([]project.Sprint, error) { return m.sprints, nil }

func (m *mockRepo) SaveRoster(roster *project.Roster) error {
	m.roster = roster
	return nil
}

func (m *mockRepo) LoadRoster() (*project.Roster, error) {
	if m.roster == nil {
		return &project.Roster{}, nil
	}
	return m.roster, nil
}

func (m *mockRepo) SaveTimeOff(timeOff []project.TimeOff) error {
	m.timeOff = timeOff
	return nil
}

func (m *mockRepo) LoadTimeOff() ([]project.TimeOff, error) { return m.timeOff, nil }

func (m *mockRepo) SaveVelocityHistory(history *analytics.VelocityHistory) error {
	m.history = history
	return nil
}

func (m *mockRepo) LoadVelocityHistory() (*analytics.VelocityHistory, error) {
	return m.history, nil
}

func (m *mockRepo) RecordRun(record domain.RunRecord) error {
	m.runs = append(m.runs, record)
	return nil
}

func (m *mockRepo) LoadRuns() ([]domain.RunRecord, error) { return m.runs, nil }
