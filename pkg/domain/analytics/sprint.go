package analytics

import (
	"math"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// ForecastConfidence qualifies how much signal backs a sprint forecast.
type ForecastConfidence string

const (
	ConfidenceHigh   ForecastConfidence = "high"
	ConfidenceMedium ForecastConfidence = "medium"
	ConfidenceLow    ForecastConfidence = "low"
)

// RiskTier buckets the completion likelihood into an ordinal scale.
type RiskTier string

const (
	TierOnTrack RiskTier = "on_track"
	TierAtRisk  RiskTier = "at_risk"
	TierBehind  RiskTier = "behind"
)

// VelocityTrend is the direction of historical sprint velocity.
type VelocityTrend string

const (
	VelocityIncreasing VelocityTrend = "increasing"
	VelocityStable     VelocityTrend = "stable"
	VelocityDecreasing VelocityTrend = "decreasing"
)

// Sprint forecast policy.
const (
	// canonicalSprintDays normalizes historical average points to a
	// daily velocity. It assumes two-week sprints even when the actual
	// historical sprints had different lengths; a known inaccuracy kept
	// for behavioral parity. Not configurable.
	canonicalSprintDays = 14

	onTrackLikelihood = 80
	atRiskLikelihood  = 50

	highConfidenceSprints = 3
	highConfidenceElapsed = 3
	medConfidenceElapsed  = 2

	trendIncreasingAbove = 2.0
	trendDecreasingBelow = -2.0

	paceWarningRatio = 0.8 // current velocity below this share of historical average
	maxActions       = 3
)

// SprintRecord is the outcome of one past completed sprint.
type SprintRecord struct {
	Name   string  `json:"name" yaml:"name"`
	Points float64 `json:"points" yaml:"points"`
}

// VelocityHistory is a rolling summary over past completed sprints of
// the project. Absent history means the forecast uses in-sprint data
// only.
type VelocityHistory struct {
	AveragePoints float64        `json:"average_points" yaml:"average_points"`
	Sprints       []SprintRecord `json:"sprints" yaml:"sprints"`
	Trend         float64        `json:"trend" yaml:"trend"`
}

// SprintForecast projects whether a sprint will land on time.
type SprintForecast struct {
	SprintID             string             `json:"sprint_id"`
	SprintName           string             `json:"sprint_name"`
	EstimatedCompletion  *time.Time         `json:"estimated_completion,omitempty"`
	Confidence           ForecastConfidence `json:"confidence"`
	RiskTier             RiskTier           `json:"risk_tier"`
	CompletionLikelihood int                `json:"completion_likelihood"`
	VelocityTrend        VelocityTrend      `json:"velocity_trend"`
	DaysRemaining        int                `json:"days_remaining"`
	ProjectedVelocity    float64            `json:"projected_velocity"`
	RequiredVelocity     float64            `json:"required_velocity"`
	RecommendedActions   []string           `json:"recommended_actions"`
}

// ForecastSprint computes a completion forecast for one sprint from its
// tasks and an optional velocity history. Returns nil when the sprint
// has no tasks: there is nothing to forecast.
func ForecastSprint(sprint *project.Sprint, tasks []project.Task, history *VelocityHistory, now time.Time) *SprintForecast {
	sprintTasks := sprint.Tasks(tasks)
	if len(sprintTasks) == 0 {
		return nil
	}

	var totalPoints, completedPoints float64
	for i := range sprintTasks {
		totalPoints += sprintTasks[i].Points()
		if sprintTasks[i].IsCompleted() {
			completedPoints += sprintTasks[i].Points()
		}
	}
	remainingPoints := totalPoints - completedPoints

	today := dateOf(now)
	elapsedDays := daysBetween(dateOf(sprint.StartDate), today)
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	daysRemaining := daysBetween(today, dateOf(sprint.EndDate))
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	currentVelocity := 0.0
	if elapsedDays > 0 {
		currentVelocity = completedPoints / float64(elapsedDays)
	}

	avgVelocity := currentVelocity
	if history != nil {
		avgVelocity = history.AveragePoints / canonicalSprintDays
	}

	projectedVelocity := currentVelocity
	if projectedVelocity <= 0 {
		projectedVelocity = avgVelocity
	}

	requiredVelocity := remainingPoints
	if daysRemaining > 0 {
		requiredVelocity = remainingPoints / float64(daysRemaining)
	}

	var estimatedCompletion *time.Time
	if projectedVelocity > 0 {
		days := int(math.Ceil(remainingPoints / projectedVelocity))
		d := today.AddDate(0, 0, days)
		estimatedCompletion = &d
	}

	likelihood := completionLikelihood(remainingPoints, requiredVelocity, projectedVelocity, elapsedDays)

	f := &SprintForecast{
		SprintID:             sprint.ID,
		SprintName:           sprint.Name,
		EstimatedCompletion:  estimatedCompletion,
		Confidence:           forecastConfidence(history, elapsedDays),
		RiskTier:             riskTier(likelihood),
		CompletionLikelihood: likelihood,
		VelocityTrend:        velocityTrend(history),
		DaysRemaining:        daysRemaining,
		ProjectedVelocity:    projectedVelocity,
		RequiredVelocity:     requiredVelocity,
	}
	f.RecommendedActions = recommendActions(f, sprintTasks, currentVelocity, avgVelocity)
	return f
}

func completionLikelihood(remaining, required, projected float64, elapsedDays int) int {
	if remaining <= 0 {
		return 100
	}
	if projected <= 0 {
		// Nothing completed and no history: fresh sprints get the
		// benefit of the doubt, stalled ones do not.
		if elapsedDays == 0 {
			return 50
		}
		return 10
	}
	if required <= 0 {
		return 100
	}
	return clampScore(int(math.Round(projected / required * 100)))
}

func riskTier(likelihood int) RiskTier {
	switch {
	case likelihood >= onTrackLikelihood:
		return TierOnTrack
	case likelihood >= atRiskLikelihood:
		return TierAtRisk
	default:
		return TierBehind
	}
}

func forecastConfidence(history *VelocityHistory, elapsedDays int) ForecastConfidence {
	if history != nil && len(history.Sprints) >= highConfidenceSprints && elapsedDays >= highConfidenceElapsed {
		return ConfidenceHigh
	}
	if elapsedDays >= medConfidenceElapsed || (history != nil && len(history.Sprints) >= 1) {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

func velocityTrend(history *VelocityHistory) VelocityTrend {
	if history == nil {
		return VelocityStable
	}
	switch {
	case history.Trend > trendIncreasingAbove:
		return VelocityIncreasing
	case history.Trend < trendDecreasingBelow:
		return VelocityDecreasing
	default:
		return VelocityStable
	}
}

func recommendActions(f *SprintForecast, sprintTasks []project.Task, currentVelocity, avgVelocity float64) []string {
	var actions []string

	switch f.RiskTier {
	case TierBehind:
		actions = append(actions,
			"Reduce sprint scope to protect the committed goal",
			"Escalate and remove blockers today")
	case TierAtRisk:
		actions = append(actions,
			"Focus the team on high priority tasks first",
			"Review remaining estimates for hidden scope")
	}

	for i := range sprintTasks {
		t := &sprintTasks[i]
		if t.Status == project.StatusPending && t.Priority == project.PriorityHigh {
			actions = append(actions, "Start high-priority pending tasks before new work")
			break
		}
	}

	if avgVelocity > 0 && currentVelocity < paceWarningRatio*avgVelocity {
		actions = append(actions, "Current pace is below the historical average")
	}

	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return actions
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns whole days from a to b; negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
