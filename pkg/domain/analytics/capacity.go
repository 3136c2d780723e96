package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// Capacity forecast policy.
const (
	memberMonthlyHours    = 160 // nominal working hours per member per month
	defaultTaskHours      = 4   // demand assumed for a task without an estimate
	defaultForecastMonths = 6
	demandGrowthPerMonth  = 0.05
	utilizationCap        = 150

	// Hiring rule thresholds, evaluated in order.
	overloadUtilization  = 130
	overloadMonthsToHire = 2
	stretchUtilization   = 100
	stretchMonthsToHire  = 3
	earlyUtilization     = 110 // contractor rule looks at the first two months
	designTaskPerMember  = 2   // design/ui tasks beyond this multiple of team size
)

// seasonalFactors discounts capacity in months with habitual absence:
// January ramp-up, July/August vacations, December holidays.
var seasonalFactors = map[time.Month]float64{
	time.January:  0.90,
	time.July:     0.85,
	time.August:   0.85,
	time.December: 0.80,
}

// Urgency ranks how pressing a hiring recommendation is.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// CapacityForecastPoint is one projected month of capacity vs demand.
type CapacityForecastPoint struct {
	Period      string  `json:"period"`
	Capacity    float64 `json:"capacity"`
	Demand      float64 `json:"demand"`
	Utilization float64 `json:"utilization"`
}

// HiringRecommendation is a threshold-rule suggestion to add people.
type HiringRecommendation struct {
	Role        string  `json:"role"`
	Count       int     `json:"count"`
	Urgency     Urgency `json:"urgency"`
	Reason      string  `json:"reason"`
	StartPeriod string  `json:"start_period"`
}

// CapacityForecast projects team capacity against demand over the
// forecast horizon.
type CapacityForecast struct {
	Months          []CapacityForecastPoint `json:"months"`
	Recommendations []HiringRecommendation  `json:"recommendations"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

// ForecastCapacity projects monthly capacity vs demand for the team.
// Months defaults to six when zero or negative. The variance source is
// sampled once per forecast month.
func ForecastCapacity(members []project.Member, tasks []project.Task, timeOff []project.TimeOff, months int, variance VarianceSource, now time.Time) *CapacityForecast {
	if months <= 0 {
		months = defaultForecastMonths
	}
	teamSize := len(members)
	if teamSize < 1 {
		teamSize = 1
	}

	timeOffHours := bucketTimeOff(timeOff)
	avgMonthlyDemand := totalDemandHours(tasks) / float64(months)

	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	points := make([]CapacityForecastPoint, 0, months)
	for i := 0; i < months; i++ {
		month := currentMonth.AddDate(0, i, 0)

		capacity := float64(teamSize)*memberMonthlyHours - timeOffHours[monthKey(month)]
		capacity *= seasonalFactor(month.Month())
		if capacity < 0 {
			capacity = 0
		}

		demand := avgMonthlyDemand * variance.Factor() * (1 + float64(i)*demandGrowthPerMonth)

		utilization := 0.0
		if capacity > 0 {
			utilization = math.Min(utilizationCap, demand/capacity*100)
		}

		points = append(points, CapacityForecastPoint{
			Period:      month.Format("Jan 2006"),
			Capacity:    capacity,
			Demand:      demand,
			Utilization: utilization,
		})
	}

	return &CapacityForecast{
		Months:          points,
		Recommendations: recommendHiring(points, tasks, teamSize),
		GeneratedAt:     now,
	}
}

// totalDemandHours sums estimated hours over incomplete tasks, assuming
// defaultTaskHours when no estimate is set.
func totalDemandHours(tasks []project.Task) float64 {
	var total float64
	for i := range tasks {
		t := &tasks[i]
		if t.IsCompleted() {
			continue
		}
		if t.EstimatedHours != nil {
			total += *t.EstimatedHours
		} else {
			total += defaultTaskHours
		}
	}
	return total
}

// bucketTimeOff aggregates absence hours keyed by the interval's start
// month. Day count is the ceiling of the interval span; a same-day
// interval contributes zero, matching the inclusive-span convention of
// the store.
func bucketTimeOff(timeOff []project.TimeOff) map[string]float64 {
	buckets := make(map[string]float64)
	for i := range timeOff {
		to := &timeOff[i]
		days := math.Ceil(to.EndDate.Sub(to.StartDate).Hours() / 24)
		if days < 0 {
			continue
		}
		buckets[monthKey(to.StartDate)] += days * to.HoursPerDay
	}
	return buckets
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func seasonalFactor(m time.Month) float64 {
	if f, ok := seasonalFactors[m]; ok {
		return f
	}
	return 1.0
}

// recommendHiring applies the threshold rules in order. Rules 1 and 2
// are exclusive; the designer and contractor rules are additive.
func recommendHiring(points []CapacityForecastPoint, tasks []project.Task, teamSize int) []HiringRecommendation {
	var recs []HiringRecommendation

	var overloaded, stretched []CapacityForecastPoint
	for _, p := range points {
		if p.Utilization > overloadUtilization {
			overloaded = append(overloaded, p)
		}
		if p.Utilization > stretchUtilization {
			stretched = append(stretched, p)
		}
	}

	switch {
	case len(overloaded) >= overloadMonthsToHire:
		var gap float64
		for _, p := range overloaded {
			gap += p.Demand - p.Capacity
		}
		gap /= float64(len(overloaded))
		count := int(math.Ceil(gap / memberMonthlyHours))
		if count < 1 {
			count = 1
		}
		recs = append(recs, HiringRecommendation{
			Role:    "Developer",
			Count:   count,
			Urgency: UrgencyHigh,
			Reason: fmt.Sprintf("%d forecast months exceed %d%% utilization with an average gap of %.0f hours",
				len(overloaded), overloadUtilization, gap),
			StartPeriod: overloaded[0].Period,
		})
	case len(stretched) >= stretchMonthsToHire:
		recs = append(recs, HiringRecommendation{
			Role:    "Developer",
			Count:   1,
			Urgency: UrgencyMedium,
			Reason: fmt.Sprintf("%d forecast months exceed %d%% utilization",
				len(stretched), stretchUtilization),
			StartPeriod: stretched[0].Period,
		})
	}

	if designCount := countDesignTasks(tasks); designCount > designTaskPerMember*teamSize {
		recs = append(recs, HiringRecommendation{
			Role:    "UI/UX Designer",
			Count:   1,
			Urgency: UrgencyMedium,
			Reason: fmt.Sprintf("%d design tasks against a team of %d",
				designCount, teamSize),
			StartPeriod: points[0].Period,
		})
	}

	if len(points) >= 2 &&
		points[0].Utilization > earlyUtilization &&
		points[1].Utilization > earlyUtilization &&
		!hasUrgency(recs, UrgencyHigh) {
		recs = append(recs, HiringRecommendation{
			Role:    "Contractor",
			Count:   1,
			Urgency: UrgencyLow,
			Reason: fmt.Sprintf("the next two months both exceed %d%% utilization",
				earlyUtilization),
			StartPeriod: points[0].Period,
		})
	}

	return recs
}

// countDesignTasks counts incomplete tasks whose title mentions design
// or UI work.
func countDesignTasks(tasks []project.Task) int {
	count := 0
	for i := range tasks {
		if tasks[i].IsCompleted() {
			continue
		}
		title := strings.ToLower(tasks[i].Title)
		if strings.Contains(title, "design") || strings.Contains(title, "ui") {
			count++
		}
	}
	return count
}

func hasUrgency(recs []HiringRecommendation, u Urgency) bool {
	for _, r := range recs {
		if r.Urgency == u {
			return true
		}
	}
	return false
}
