package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// Delay prediction policy. An additive heuristic scorer, not a
// statistical model: rule order and thresholds are product behavior.
const (
	probOverdue    = 90
	probDueSoon    = 40
	probUnassigned = 30
	probNoEstimate = 15
	probBlocked    = 50
	probOverBudget = 35
	probStale      = 20

	dueSoonWindowDays      = 2
	overdueBufferDays      = 2   // predicted slip adds this on top of days overdue
	blockedSlipDays        = 3   // flat slip added for a blocked task
	trackingWarningRatio   = 0.8 // tracked beyond this share of estimate counts as overrun risk
	trackingOverrunDivisor = 4   // overrun hours converted to slip days

	staleAgeDays = 7 // pending tasks older than this count as stale

	minReportProbability = 25 // report when probability qualifies...
	minReportReasons     = 2  // ...or at least this many reasons fired

	confidenceBase      = 60
	confidencePerReason = 10
	confidenceCap       = 95
)

// DelayPrediction is the per-task delay risk estimate.
type DelayPrediction struct {
	TaskID             string   `json:"task_id"`
	TaskTitle          string   `json:"task_title"`
	Probability        int      `json:"probability"`
	PredictedDelayDays int      `json:"predicted_delay_days"`
	Reasons            []string `json:"reasons"`
	CriticalPathImpact bool     `json:"critical_path_impact"`
	Confidence         int      `json:"confidence"`
}

// PredictDelays evaluates each incomplete task against the heuristic
// rule set and returns qualifying predictions sorted by probability,
// highest first. Completed tasks never appear in the output.
func PredictDelays(tasks []project.Task, now time.Time) []DelayPrediction {
	var out []DelayPrediction
	for i := range tasks {
		if p := predictDelay(&tasks[i], now); p != nil {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	return out
}

func predictDelay(t *project.Task, now time.Time) *DelayPrediction {
	if t.IsCompleted() {
		return nil
	}

	probability := 0
	delayDays := 0
	var reasons []string
	critical := false

	// 1. Overdue.
	if t.DueDate != nil && t.DueDate.Before(now) {
		daysOverdue := int(now.Sub(*t.DueDate).Hours() / 24)
		probability += probOverdue
		delayDays += daysOverdue + overdueBufferDays
		reasons = append(reasons, fmt.Sprintf("Task is %d days overdue", daysOverdue))
	} else if t.DueDate != nil && !t.DueDate.After(now.AddDate(0, 0, dueSoonWindowDays)) {
		// 2. Due within the warning window.
		probability += probDueSoon
		reasons = append(reasons, "Due date approaching soon")
	}

	// 3. High priority without an owner.
	if t.Priority == project.PriorityHigh && t.IsUnassigned() {
		probability += probUnassigned
		reasons = append(reasons, "High priority task has no assignee")
		critical = true
	}

	// 4. No time estimate.
	if t.EstimatedHours == nil {
		probability += probNoEstimate
		reasons = append(reasons, "Missing time estimate")
	}

	// 5. Blocked.
	if t.Status == project.StatusBlocked {
		probability += probBlocked
		delayDays += blockedSlipDays
		reasons = append(reasons, "Task is currently blocked")
		critical = true
	}

	// 6. Tracked time burning past the estimate.
	if t.EstimatedHours != nil && t.TrackedHours != nil {
		budget := trackingWarningRatio * *t.EstimatedHours
		if *t.TrackedHours > budget {
			probability += probOverBudget
			delayDays += int(math.Ceil((*t.TrackedHours - budget) / trackingOverrunDivisor))
			reasons = append(reasons, "Tracked hours are close to exceeding the estimate")
		}
	}

	// 7. Stale pending task.
	if t.Status == project.StatusPending {
		ageDays := int(now.Sub(t.CreatedAt).Hours() / 24)
		if ageDays > staleAgeDays {
			probability += probStale
			reasons = append(reasons, fmt.Sprintf("Pending for %d days without starting", ageDays))
		}
	}

	// 8. High priority always marks the critical path, assigned or not.
	if t.Priority == project.PriorityHigh {
		critical = true
	}

	probability = clampScore(probability)
	if probability < minReportProbability && len(reasons) < minReportReasons {
		return nil
	}

	if delayDays < 1 {
		delayDays = 1
	}

	confidence := confidenceBase + len(reasons)*confidencePerReason
	if confidence > confidenceCap {
		confidence = confidenceCap
	}

	return &DelayPrediction{
		TaskID:             t.ID,
		TaskTitle:          t.Title,
		Probability:        probability,
		PredictedDelayDays: delayDays,
		Reasons:            reasons,
		CriticalPathImpact: critical,
		Confidence:         confidence,
	}
}

// clampScore bounds a score to [0, 100].
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
