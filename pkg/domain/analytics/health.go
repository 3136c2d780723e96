package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// HealthStatus is the composite tier for the whole project.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthAtRisk   HealthStatus = "at_risk"
	HealthCritical HealthStatus = "critical"
)

// MetricStatus is the tier of a single health metric.
type MetricStatus string

const (
	MetricGood     MetricStatus = "good"
	MetricWarning  MetricStatus = "warning"
	MetricCritical MetricStatus = "critical"
)

// MetricTrend is derived from the metric's current score, not from a
// time series. There is no historical snapshot store, so a score >= 75
// reads as "up" and <= 40 as "down". Intentional product behavior.
type MetricTrend string

const (
	TrendUp     MetricTrend = "up"
	TrendDown   MetricTrend = "down"
	TrendStable MetricTrend = "stable"
)

// Health scoring policy. These are product decisions, not tuning knobs;
// changing one is a one-line edit but a behavioral change.
const (
	healthWindowDays = 14 // trailing completion window

	weightVelocity = 0.25
	weightOnTime   = 0.30
	weightScope    = 0.20
	weightTeamLoad = 0.15
	weightBlockers = 0.10

	velocityBaselineRatio = 0.2 // expected completions as share of total tasks
	overduePenaltyFactor  = 200
	scopePenaltyFactor    = 150
	loadComfortRatio      = 0.3 // in-progress share considered sustainable
	loadPenaltyFactor     = 200
	blockerPenaltyFactor  = 300

	healthyThreshold = 70
	atRiskThreshold  = 40

	trendUpThreshold   = 75
	trendDownThreshold = 40
)

// HealthMetric is one of the five scored dimensions of project health.
type HealthMetric struct {
	Name        string       `json:"name"`
	Score       int          `json:"score"`
	Trend       MetricTrend  `json:"trend"`
	Status      MetricStatus `json:"status"`
	Description string       `json:"description"`
}

// HealthReport is the composite health score with its per-metric parts.
type HealthReport struct {
	Overall     int            `json:"overall"`
	Status      HealthStatus   `json:"status"`
	Metrics     []HealthMetric `json:"metrics"`
	Summary     string         `json:"summary"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ScoreHealth combines five per-metric scores into one 0-100 composite.
// Sprints are accepted for interface symmetry but the current formulas
// only read tasks.
func ScoreHealth(tasks []project.Task, _ []project.Sprint, now time.Time) *HealthReport {
	if len(tasks) == 0 {
		// No tasks means no evidence of risk.
		return emptyHealthReport(now)
	}

	b := Classify(tasks, now)
	total := float64(b.Total)

	recent := recentCompletions(tasks, now)
	velocity := math.Min(100, float64(recent)/math.Max(total*velocityBaselineRatio, 1)*100)

	onTime := math.Max(0, 100-float64(b.Overdue)/total*overduePenaltyFactor)

	scope := math.Max(0, 100-float64(b.Overdue+b.Blocked)/total*scopePenaltyFactor)

	teamLoad := 100.0
	if ratio := float64(b.InProgress) / total; ratio > loadComfortRatio {
		teamLoad = math.Max(0, 100-(ratio-loadComfortRatio)*loadPenaltyFactor)
	}

	blockers := math.Max(0, 100-float64(b.Blocked)/total*blockerPenaltyFactor)

	overall := int(math.Round(velocity*weightVelocity +
		onTime*weightOnTime +
		scope*weightScope +
		teamLoad*weightTeamLoad +
		blockers*weightBlockers))

	status := healthTier(overall)

	return &HealthReport{
		Overall: overall,
		Status:  status,
		Metrics: []HealthMetric{
			newMetric("Velocity", velocity,
				fmt.Sprintf("%d tasks completed in the last %d days", recent, healthWindowDays)),
			newMetric("On-Time Delivery", onTime,
				fmt.Sprintf("%d of %d tasks overdue", b.Overdue, b.Total)),
			newMetric("Scope Stability", scope,
				fmt.Sprintf("%d overdue and %d blocked tasks", b.Overdue, b.Blocked)),
			newMetric("Team Load", teamLoad,
				fmt.Sprintf("%d of %d tasks in progress", b.InProgress, b.Total)),
			newMetric("Blockers", blockers,
				fmt.Sprintf("%d blocked tasks", b.Blocked)),
		},
		Summary:     healthSummary(status, b),
		GeneratedAt: now,
	}
}

// recentCompletions counts completed tasks last updated inside the
// trailing window.
func recentCompletions(tasks []project.Task, now time.Time) int {
	windowStart := now.AddDate(0, 0, -healthWindowDays)
	count := 0
	for i := range tasks {
		t := &tasks[i]
		if t.IsCompleted() && !t.UpdatedAt.Before(windowStart) && !t.UpdatedAt.After(now) {
			count++
		}
	}
	return count
}

func newMetric(name string, score float64, description string) HealthMetric {
	rounded := int(math.Round(score))
	return HealthMetric{
		Name:        name,
		Score:       rounded,
		Trend:       metricTrend(rounded),
		Status:      metricTier(rounded),
		Description: description,
	}
}

func healthTier(score int) HealthStatus {
	switch {
	case score >= healthyThreshold:
		return HealthHealthy
	case score >= atRiskThreshold:
		return HealthAtRisk
	default:
		return HealthCritical
	}
}

func metricTier(score int) MetricStatus {
	switch {
	case score >= healthyThreshold:
		return MetricGood
	case score >= atRiskThreshold:
		return MetricWarning
	default:
		return MetricCritical
	}
}

func metricTrend(score int) MetricTrend {
	switch {
	case score >= trendUpThreshold:
		return TrendUp
	case score <= trendDownThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}

func healthSummary(status HealthStatus, b TaskBreakdown) string {
	switch status {
	case HealthHealthy:
		return "Project is healthy: delivery is on pace and blockers are under control."
	case HealthAtRisk:
		return fmt.Sprintf("Project needs attention: %d overdue and %d blocked tasks are dragging the score.", b.Overdue, b.Blocked)
	default:
		return fmt.Sprintf("Project is in critical shape: %d overdue and %d blocked tasks need immediate action.", b.Overdue, b.Blocked)
	}
}

// emptyHealthReport is the zero-task result: every metric reads 100
// because there is nothing overdue, blocked or overloaded.
func emptyHealthReport(now time.Time) *HealthReport {
	names := []string{"Velocity", "On-Time Delivery", "Scope Stability", "Team Load", "Blockers"}
	metrics := make([]HealthMetric, 0, len(names))
	for _, n := range names {
		metrics = append(metrics, newMetric(n, 100, "no tasks yet"))
	}
	return &HealthReport{
		Overall:     100,
		Status:      HealthHealthy,
		Metrics:     metrics,
		Summary:     "Project is healthy: delivery is on pace and blockers are under control.",
		GeneratedAt: now,
	}
}
