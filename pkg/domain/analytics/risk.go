package analytics

import (
	"math"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// Risk radar policy. Each dimension normalizes a task-count ratio with
// its own multiplier; the alert threshold is a fixed visual reference.
const (
	scheduleRiskFactor   = 200
	scopeRiskFactor      = 150
	resourceRiskFactor   = 200
	dependencyRiskFactor = 250
	qualityRiskFactor    = 150

	riskAlertThreshold = 50
	riskInsightFloor   = 30 // highest dimension must exceed this to emit an insight
)

// Risk dimension names.
const (
	RiskSchedule   = "Schedule"
	RiskScope      = "Scope"
	RiskResource   = "Resource"
	RiskDependency = "Dependency"
	RiskQuality    = "Quality"
)

// riskInsights are the canned callouts, one per dimension.
var riskInsights = map[string]string{
	RiskSchedule:   "Overdue tasks are piling up; the schedule is the biggest threat right now.",
	RiskScope:      "Too much remaining work has no estimate; the scope is not under control.",
	RiskResource:   "High priority work is sitting unassigned; the team allocation needs attention.",
	RiskDependency: "Blocked tasks dominate the board; dependencies are choking throughput.",
	RiskQuality:    "Completed work is landing far under estimate; rushed delivery puts quality at risk.",
}

// RiskDimension is one normalized 0-100 risk axis.
type RiskDimension struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Threshold int    `json:"threshold"`
}

// RiskRadar is the five-dimension risk profile for visualization.
type RiskRadar struct {
	Dimensions  []RiskDimension `json:"dimensions"`
	Highest     RiskDimension   `json:"highest"`
	Insight     string          `json:"insight,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// BuildRiskRadar computes the five risk dimensions from a task set.
// Sprints are accepted for interface symmetry but unused by the current
// formulas.
func BuildRiskRadar(tasks []project.Task, _ []project.Sprint, now time.Time) *RiskRadar {
	b := Classify(tasks, now)

	total := float64(b.Total)
	if total < 1 {
		total = 1
	}
	completed := float64(b.Completed)
	if completed < 1 {
		completed = 1
	}

	dims := []RiskDimension{
		newRiskDimension(RiskSchedule, float64(b.Overdue)/total*scheduleRiskFactor),
		newRiskDimension(RiskScope, float64(b.MissingEstimate)/total*scopeRiskFactor),
		newRiskDimension(RiskResource, float64(b.UnassignedHighPriority)/total*resourceRiskFactor),
		newRiskDimension(RiskDependency, float64(b.Blocked)/total*dependencyRiskFactor),
		newRiskDimension(RiskQuality, float64(b.RushedCompleted)/completed*qualityRiskFactor),
	}

	highest := dims[0]
	for _, d := range dims[1:] {
		if d.Score > highest.Score {
			highest = d
		}
	}

	radar := &RiskRadar{
		Dimensions:  dims,
		Highest:     highest,
		GeneratedAt: now,
	}
	if highest.Score > riskInsightFloor {
		radar.Insight = riskInsights[highest.Name]
	}
	return radar
}

func newRiskDimension(name string, score float64) RiskDimension {
	return RiskDimension{
		Name:      name,
		Score:     clampScore(int(math.Round(math.Min(100, score)))),
		Threshold: riskAlertThreshold,
	}
}
