// Package storage persists pulse artifacts as yaml files in the .pulse/
// directory of a project workspace.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/pulse/pkg/domain"
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/pulse/pkg/domain/project"
	"gopkg.in/yaml.v3"
)

const PulseDir = ".pulse"
const TasksFile = "tasks.yaml"
const SprintsFile = "sprints.yaml"
const TeamFile = "team.yaml"
const TimeOffFile = "timeoff.yaml"
const HistoryFile = "history.yaml"
const RunsFile = "runs.jsonl"

// FilesystemRepository implements domain.SnapshotRepository on the local
// filesystem.
type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

// Compile-time check that the repository satisfies the port.
var _ domain.SnapshotRepository = (*FilesystemRepository)(nil)

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .pulse directory and
// prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, PulseDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, PulseDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .pulse directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, PulseDir))
	return err == nil
}

func (r *FilesystemRepository) SaveTasks(tasks []project.Task) error {
	return r.saveYAML(TasksFile, tasks)
}

func (r *FilesystemRepository) LoadTasks() ([]project.Task, error) {
	var tasks []project.Task
	if err := r.loadYAML(TasksFile, &tasks); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return tasks, nil
}

func (r *FilesystemRepository) SaveSprints(sprints []project.Sprint) error {
	return r.saveYAML(SprintsFile, sprints)
}

func (r *FilesystemRepository) LoadSprints() ([]project.Sprint, error) {
	var sprints []project.Sprint
	if err := r.loadYAML(SprintsFile, &sprints); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return sprints, nil
}

func (r *FilesystemRepository) SaveRoster(roster *project.Roster) error {
	return r.saveYAML(TeamFile, roster)
}

func (r *FilesystemRepository) LoadRoster() (*project.Roster, error) {
	var roster project.Roster
	if err := r.loadYAML(TeamFile, &roster); err != nil {
		if os.IsNotExist(err) {
			return &project.Roster{}, nil
		}
		return nil, err
	}
	return &roster, nil
}

func (r *FilesystemRepository) SaveTimeOff(timeOff []project.TimeOff) error {
	return r.saveYAML(TimeOffFile, timeOff)
}

func (r *FilesystemRepository) LoadTimeOff() ([]project.TimeOff, error) {
	var timeOff []project.TimeOff
	if err := r.loadYAML(TimeOffFile, &timeOff); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return timeOff, nil
}

func (r *FilesystemRepository) SaveVelocityHistory(history *analytics.VelocityHistory) error {
	return r.saveYAML(HistoryFile, history)
}

func (r *FilesystemRepository) LoadVelocityHistory() (*analytics.VelocityHistory, error) {
	var history analytics.VelocityHistory
	if err := r.loadYAML(HistoryFile, &history); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

// LoadSnapshot assembles the full domain snapshot from the stored
// artifacts, stamped with the given time.
func (r *FilesystemRepository) LoadSnapshot(now time.Time) (*project.Snapshot, error) {
	tasks, err := r.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	sprints, err := r.LoadSprints()
	if err != nil {
		return nil, fmt.Errorf("load sprints: %w", err)
	}
	roster, err := r.LoadRoster()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	timeOff, err := r.LoadTimeOff()
	if err != nil {
		return nil, fmt.Errorf("load time off: %w", err)
	}

	return &project.Snapshot{
		Tasks:        tasks,
		Sprints:      sprints,
		Members:      roster.Members,
		TimeOff:      timeOff,
		SnapshotTime: now,
	}, nil
}

func (r *FilesystemRepository) saveYAML(filename string, v interface{}) error {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}

	return os.WriteFile(path, data, 0600)
}

// loadYAML reads a yaml artifact with retries. A missing file surfaces
// the raw os error so callers can map absence to an empty value.
func (r *FilesystemRepository) loadYAML(filename string, v interface{}) error {
	path, err := r.ResolvePath(filename)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return err
	}

	retryer := retry.New[[]byte](r.retryConfig)

	data, err := retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- Path is resolved and validated via ResolvePath
		return os.ReadFile(path)
	})
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	return nil
}
