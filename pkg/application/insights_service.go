// Package application orchestrates the analytics engine: services load
// a snapshot through the repository port, pin a single reference time,
// and hand the data to the pure domain functions.
package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/pkg/domain"
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// Clock returns the current time. Injected so tests and replayed runs
// can pin it.
type Clock func() time.Time

// InsightsService runs the analytics modules against the stored
// snapshot. Every public method captures one reference time and uses
// it for the whole computation, so a report is internally consistent.
type InsightsService struct {
	repo     domain.SnapshotRepository
	variance analytics.VarianceSource
	clock    Clock
}

func NewInsightsService(repo domain.SnapshotRepository, variance analytics.VarianceSource, clock Clock) *InsightsService {
	if clock == nil {
		clock = time.Now
	}
	if variance == nil {
		variance = analytics.FixedVariance(1.0)
	}
	return &InsightsService{repo: repo, variance: variance, clock: clock}
}

// Report bundles the output of all five modules from one engine pass.
type Report struct {
	Health      *analytics.HealthReport     `json:"health"`
	Delays      []analytics.DelayPrediction `json:"delays"`
	Forecast    *analytics.SprintForecast   `json:"forecast,omitempty"`
	Risk        *analytics.RiskRadar        `json:"risk"`
	Capacity    *analytics.CapacityForecast `json:"capacity"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

func (s *InsightsService) loadSnapshot(now time.Time) (*project.Snapshot, error) {
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return nil, fmt.Errorf("load sprints: %w", err)
	}
	roster, err := s.repo.LoadRoster()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	timeOff, err := s.repo.LoadTimeOff()
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

// Health scores project health from the current snapshot.
func (s *InsightsService) Health() (*analytics.HealthReport, error) {
	now := s.clock()
	snap, err := s.loadSnapshot(now)
	if err != nil {
		return nil, err
	}

	report := analytics.ScoreHealth(snap.Tasks, snap.Sprints, now)
	s.recordRun("health", now, map[string]interface{}{
		"overall": report.Overall,
		"status":  string(report.Status),
	})
	return report, nil
}

// Delays predicts which incomplete tasks are likely to slip.
func (s *InsightsService) Delays() ([]analytics.DelayPrediction, error) {
	now := s.clock()
	snap, err := s.loadSnapshot(now)
	if err != nil {
		return nil, err
	}

	predictions := analytics.PredictDelays(snap.Tasks, now)
	s.recordRun("delays", now, map[string]interface{}{
		"predictions": len(predictions),
	})
	return predictions, nil
}

// Forecast projects completion for the named sprint, or the active
// sprint when sprintID is empty.
func (s *InsightsService) Forecast(sprintID string) (*analytics.SprintForecast, error) {
	now := s.clock()
	snap, err := s.loadSnapshot(now)
	if err != nil {
		return nil, err
	}

	var sprint *project.Sprint
	if sprintID == "" {
		sprint = snap.ActiveSprint()
		if sprint == nil {
			return nil, fmt.Errorf("no active sprint; specify a sprint id")
		}
	} else {
		sprint = snap.FindSprint(sprintID)
		if sprint == nil {
			return nil, fmt.Errorf("sprint %q not found", sprintID)
		}
	}

	history, err := s.repo.LoadVelocityHistory()
	if err != nil {
		return nil, fmt.Errorf("load velocity history: %w", err)
	}

	forecast := analytics.ForecastSprint(sprint, snap.Tasks, history, now)
	if forecast == nil {
		return nil, fmt.Errorf("sprint %q has no tasks to forecast", sprint.ID)
	}

	s.recordRun("sprint", now, map[string]interface{}{
		"sprint_id":  sprint.ID,
		"likelihood": forecast.CompletionLikelihood,
	})
	return forecast, nil
}

// Risk builds the five-dimension risk radar.
func (s *InsightsService) Risk() (*analytics.RiskRadar, error) {
	now := s.clock()
	snap, err := s.loadSnapshot(now)
	if err != nil {
		return nil, err
	}

	radar := analytics.BuildRiskRadar(snap.Tasks, snap.Sprints, now)
	s.recordRun("risk", now, map[string]interface{}{
		"highest":       radar.Highest.Name,
		"highest_score": radar.Highest.Score,
	})
	return radar, nil
}

// Capacity forecasts team capacity vs demand. Months defaults when
// zero or negative.
func (s *InsightsService) Capacity(months int) (*analytics.CapacityForecast, error) {
	now := s.clock()
	snap, err := s.loadSnapshot(now)
	if err != nil {
		return nil, err
	}

	forecast := analytics.ForecastCapacity(snap.Members, snap.Tasks, snap.TimeOff, months, s.variance, now)
	s.recordRun("capacity", now, map[string]interface{}{
		"months":          len(forecast.Months),
		"recommendations": len(forecast.Recommendations),
	})
	return forecast, nil
}

// FullReport runs all five modules in a single pass over one snapshot
// and one reference time. The sprint section is omitted when no sprint
// is active or the active sprint has no tasks.
func (s *InsightsService) FullReport(months int) (*Report, error) {
	now := s.clock()
	snap, err := s.loadSnapshot(now)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Health:      analytics.ScoreHealth(snap.Tasks, snap.Sprints, now),
		Delays:      analytics.PredictDelays(snap.Tasks, now),
		Risk:        analytics.BuildRiskRadar(snap.Tasks, snap.Sprints, now),
		Capacity:    analytics.ForecastCapacity(snap.Members, snap.Tasks, snap.TimeOff, months, s.variance, now),
		GeneratedAt: now,
	}

	if sprint := snap.ActiveSprint(); sprint != nil {
		history, err := s.repo.LoadVelocityHistory()
		if err != nil {
			return nil, fmt.Errorf("load velocity history: %w", err)
		}
		report.Forecast = analytics.ForecastSprint(sprint, snap.Tasks, history, now)
	}

	s.recordRun("report", now, map[string]interface{}{
		"overall": report.Health.Overall,
	})
	return report, nil
}

// recordRun appends a hash-chained entry to the run log. Logging is
// best effort: a failed append never fails the analysis.
func (s *InsightsService) recordRun(module string, now time.Time, metadata map[string]interface{}) {
	runs, err := s.repo.LoadRuns()
	if err != nil {
		return
	}
	prevHash := ""
	if len(runs) > 0 {
		prevHash = runs[len(runs)-1].Hash
	}

	record := domain.RunRecord{
		ID:        uuid.New().String(),
		Timestamp: now,
		Module:    module,
		Metadata:  metadata,
		PrevHash:  prevHash,
	}
	record.Hash = record.CalculateHash()

	_ = s.repo.RecordRun(record)
}

// Runs returns the recorded engine run log.
func (s *InsightsService) Runs() ([]domain.RunRecord, error) {
	return s.repo.LoadRuns()
}

// VerifyRunLog checks the hash chain of the run log and returns a
// description of each violation found.
func (s *InsightsService) VerifyRunLog() ([]string, error) {
	runs, err := s.repo.LoadRuns()
	if err != nil {
		return nil, err
	}

	var violations []string
	lastHash := ""
	for i, r := range runs {
		if r.PrevHash != lastHash {
			violations = append(violations, fmt.Sprintf("Run %d (%s): PrevHash mismatch. Run log broken.", i, r.ID))
		}
		if expected := r.CalculateHash(); r.Hash != expected {
			violations = append(violations, fmt.Sprintf("Run %d (%s): Content hash mismatch. Possible tampering.", i, r.ID))
		}
		lastHash = r.Hash
	}

	return violations, nil
}
