package analytics

import (
	"testing"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

func TestScoreHealth_ZeroTasksIsHealthy(t *testing.T) {
	report := ScoreHealth(nil, nil, testNow)

	if report.Overall != 100 {
		t.Errorf("Overall = %d, want 100 for zero tasks", report.Overall)
	}
	if report.Status != HealthHealthy {
		t.Errorf("Status = %s, want healthy", report.Status)
	}
	if len(report.Metrics) != 5 {
		t.Fatalf("expected 5 metrics, got %d", len(report.Metrics))
	}
	for _, m := range report.Metrics {
		if m.Score != 100 {
			t.Errorf("metric %s score = %d, want 100", m.Name, m.Score)
		}
	}
}

func TestScoreHealth_OverallAlwaysInRange(t *testing.T) {
	// A pathological project: everything overdue and blocked.
	var tasks []project.Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, makeTask("t", project.StatusBlocked, withDue(testNow.AddDate(0, 0, -10))))
	}

	report := ScoreHealth(tasks, nil, testNow)

	if report.Overall < 0 || report.Overall > 100 {
		t.Errorf("Overall = %d, want within [0,100]", report.Overall)
	}
	for _, m := range report.Metrics {
		if m.Score < 0 || m.Score > 100 {
			t.Errorf("metric %s score = %d, want within [0,100]", m.Name, m.Score)
		}
	}
}

func TestScoreHealth_BlockersRatioScenario(t *testing.T) {
	// 10 tasks, 3 overdue high-priority unassigned, 2 blocked.
	var tasks []project.Task
	for i := 0; i < 3; i++ {
		tasks = append(tasks, makeTask("overdue", project.StatusPending,
			withDue(testNow.AddDate(0, 0, -1)), withPriority(project.PriorityHigh)))
	}
	for i := 0; i < 2; i++ {
		tasks = append(tasks, makeTask("blocked", project.StatusBlocked))
	}
	for i := 0; i < 5; i++ {
		tasks = append(tasks, makeTask("ok", project.StatusPending, withEstimate(4)))
	}

	report := ScoreHealth(tasks, nil, testNow)

	var blockers HealthMetric
	for _, m := range report.Metrics {
		if m.Name == "Blockers" {
			blockers = m
		}
	}
	// max(0, 100 - 2/10*300) = 40
	if blockers.Score != 40 {
		t.Errorf("Blockers score = %d, want 40", blockers.Score)
	}
	if blockers.Status != MetricWarning {
		t.Errorf("Blockers status = %s, want warning", blockers.Status)
	}
	if report.Status == HealthHealthy {
		t.Errorf("Status = %s, want at_risk or critical", report.Status)
	}
}

func TestScoreHealth_TierMonotonicInOverall(t *testing.T) {
	tiers := map[HealthStatus]int{HealthCritical: 0, HealthAtRisk: 1, HealthHealthy: 2}

	prev := -1
	for score := 0; score <= 100; score++ {
		rank := tiers[healthTier(score)]
		if rank < prev {
			t.Fatalf("tier rank dropped from %d to %d at score %d", prev, rank, score)
		}
		prev = rank
	}
}

func TestScoreHealth_HealthyProject(t *testing.T) {
	var tasks []project.Task
	// Recently completed work, nothing overdue or blocked.
	for i := 0; i < 6; i++ {
		tasks = append(tasks, makeTask("done", project.StatusCompleted, withEstimate(4), withTracked(4)))
	}
	for i := 0; i < 4; i++ {
		tasks = append(tasks, makeTask("todo", project.StatusPending,
			withEstimate(4), withDue(testNow.AddDate(0, 0, 14))))
	}

	report := ScoreHealth(tasks, nil, testNow)

	if report.Status != HealthHealthy {
		t.Errorf("Status = %s (overall %d), want healthy", report.Status, report.Overall)
	}
	if report.Summary == "" {
		t.Error("expected a summary line")
	}
}

func TestScoreHealth_TrendDerivedFromScore(t *testing.T) {
	// The trend field is a pure function of the current score, not a
	// time series. Keep it that way.
	cases := []struct {
		score int
		want  MetricTrend
	}{
		{100, TrendUp},
		{75, TrendUp},
		{74, TrendStable},
		{41, TrendStable},
		{40, TrendDown},
		{0, TrendDown},
	}
	for _, c := range cases {
		if got := metricTrend(c.score); got != c.want {
			t.Errorf("metricTrend(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestScoreHealth_VelocityWindow(t *testing.T) {
	old := makeTask("old", project.StatusCompleted)
	old.UpdatedAt = testNow.AddDate(0, 0, -30) // outside the 14-day window
	recent := makeTask("recent", project.StatusCompleted)
	recent.UpdatedAt = testNow.AddDate(0, 0, -2)

	if got := recentCompletions([]project.Task{old, recent}, testNow); got != 1 {
		t.Errorf("recentCompletions = %d, want 1", got)
	}
}
