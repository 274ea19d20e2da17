// Package stats analyzes a generated roster for fairness and coverage,
// the figures surfaced by the /api/v1/stats endpoints.
package stats

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
)

// StaffStat is one staff member's totals for the analyzed month.
type StaffStat struct {
	StaffID       uuid.UUID `json:"staff_id"`
	StaffName     string    `json:"staff_name"`
	TotalHours    float64   `json:"total_hours"`
	ShiftCount    int       `json:"shift_count"`
	NightShifts   int       `json:"night_shifts"`
	HolidayShifts int       `json:"holiday_shifts"`
	Deviation     float64   `json:"deviation"` // % deviation from the mean hours
}

// FairnessMetrics summarizes how evenly a month's workload is spread
// across staff.
type FairnessMetrics struct {
	HoursGini            float64     `json:"hours_gini"`
	HoursVariance        float64     `json:"hours_variance"`
	HoursStdDev          float64     `json:"hours_std_dev"`
	AvgHoursPerStaff     float64     `json:"avg_hours_per_staff"`
	MaxHours             float64     `json:"max_hours"`
	MinHours             float64     `json:"min_hours"`
	NightShiftGini       float64     `json:"night_shift_gini"`
	HolidayGini          float64     `json:"holiday_gini"`
	StaffStats           []StaffStat `json:"staff_stats"`
	OverallFairnessScore float64     `json:"overall_fairness_score"`
}

// FairnessAnalyzer computes FairnessMetrics from a generated month.
type FairnessAnalyzer struct{}

func NewFairnessAnalyzer() *FairnessAnalyzer {
	return &FairnessAnalyzer{}
}

// Analyze builds fairness metrics from a month's shifts and the staff
// roster those shifts were drawn from.
func (f *FairnessAnalyzer) Analyze(shifts []*model.Shift, staff []*model.Staff) *FairnessMetrics {
	if len(shifts) == 0 || len(staff) == 0 {
		return &FairnessMetrics{OverallFairnessScore: 100}
	}

	names := make(map[uuid.UUID]string, len(staff))
	for _, s := range staff {
		names[s.ID] = s.Name
	}

	statMap := make(map[uuid.UUID]*StaffStat)
	for _, sh := range shifts {
		stat, ok := statMap[sh.StaffID]
		if !ok {
			stat = &StaffStat{StaffID: sh.StaffID, StaffName: names[sh.StaffID]}
			statMap[sh.StaffID] = stat
		}
		stat.TotalHours += sh.ShiftKind.Hours()
		stat.ShiftCount++
		if sh.ShiftKind == model.Night {
			stat.NightShifts++
		}
		if sh.ShiftKind == model.Holiday {
			stat.HolidayShifts++
		}
	}

	stats := make([]StaffStat, 0, len(statMap))
	for _, s := range statMap {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].TotalHours > stats[j].TotalHours })

	hours := make([]float64, len(stats))
	nights := make([]float64, len(stats))
	holidays := make([]float64, len(stats))
	for i, s := range stats {
		hours[i] = s.TotalHours
		nights[i] = float64(s.NightShifts)
		holidays[i] = float64(s.HolidayShifts)
	}

	avgHours := mean(hours)
	variance := varianceOf(hours, avgHours)
	stdDev := math.Sqrt(variance)
	maxHours, minHours := rangeOf(hours)

	for i := range stats {
		if avgHours > 0 {
			stats[i].Deviation = (stats[i].TotalHours - avgHours) / avgHours * 100
		}
	}

	hoursGini := gini(hours)
	nightGini := gini(nights)
	holidayGini := gini(holidays)

	return &FairnessMetrics{
		HoursGini:            hoursGini,
		HoursVariance:        variance,
		HoursStdDev:          stdDev,
		AvgHoursPerStaff:     avgHours,
		MaxHours:             maxHours,
		MinHours:             minHours,
		NightShiftGini:       nightGini,
		HolidayGini:          holidayGini,
		StaffStats:           stats,
		OverallFairnessScore: overallScore(hoursGini, nightGini, holidayGini, stdDev, avgHours),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func varianceOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

func rangeOf(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return
}

// gini computes the Gini coefficient of values: 0 is perfectly even,
// 1 is maximally concentrated.
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	g = g / (float64(n) * sum)
	return math.Max(0, math.Min(1, g))
}

func overallScore(hoursGini, nightGini, holidayGini, stdDev, avgHours float64) float64 {
	const (
		hoursWeight   = 0.4
		nightWeight   = 0.3
		holidayWeight = 0.2
		stdDevWeight  = 0.1
	)

	hoursScore := (1 - hoursGini) * 100
	nightScore := (1 - nightGini) * 100
	holidayScore := (1 - holidayGini) * 100

	cvScore := 100.0
	if avgHours > 0 {
		cv := stdDev / avgHours
		cvScore = math.Max(0, 100-cv*200)
	}

	score := hoursWeight*hoursScore + nightWeight*nightScore + holidayWeight*holidayScore + stdDevWeight*cvScore
	return math.Max(0, math.Min(100, score))
}
