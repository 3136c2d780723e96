package domain

import (
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// SnapshotRepository handles the persistence of pulse artifacts in the
// .pulse/ directory. The engine itself never touches storage; services
// load a snapshot through this port and hand it to the pure functions.
type SnapshotRepository interface {
	Initialize() error
	IsInitialized() bool

	SaveTasks(tasks []project.Task) error
	LoadTasks() ([]project.Task, error)
	SaveSprints(sprints []project.Sprint) error
	LoadSprints() ([]project.Sprint, error)
	SaveRoster(roster *project.Roster) error
	LoadRoster() (*project.Roster, error)
	SaveTimeOff(timeOff []project.TimeOff) error
	LoadTimeOff() ([]project.TimeOff, error)

	SaveVelocityHistory(history *analytics.VelocityHistory) error
	LoadVelocityHistory() (*analytics.VelocityHistory, error)

	RecordRun(record RunRecord) error
	LoadRuns() ([]RunRecord, error)
}
