package stats

import (
	"fmt"

	"github.com/carefac/roster/pkg/model"
)

// DayCoverage is one date's fill rate against its required staffing.
type DayCoverage struct {
	Date         string  `json:"date"`
	Required     int     `json:"required"`
	Assigned     int     `json:"assigned"`
	CoverageRate float64 `json:"coverage_rate"`
}

// ShortfallSlot is a (date, shift kind) combination staffed below what
// RequiredStaffing calls for.
type ShortfallSlot struct {
	Date     string          `json:"date"`
	Kind     model.ShiftKind `json:"kind"`
	Required int             `json:"required"`
	Assigned int             `json:"assigned"`
	Shortage int             `json:"shortage"`
}

// CoverageMetrics summarizes how fully a generated month met its required
// staffing.
type CoverageMetrics struct {
	TotalRequired    int                    `json:"total_required"`
	TotalAssigned    int                    `json:"total_assigned"`
	OverallCoverage  float64                `json:"overall_coverage"`
	DailyCoverage    map[string]DayCoverage `json:"daily_coverage"`
	KindCoverage     map[string]float64     `json:"kind_coverage"`
	ShortfallSlots   []ShortfallSlot        `json:"shortfall_slots"`
}

// CoverageAnalyzer computes CoverageMetrics for a generated month against
// its job spec.
type CoverageAnalyzer struct{}

func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

// Analyze compares shifts against spec.RequiredStaffing for every day of
// the month.
func (c *CoverageAnalyzer) Analyze(shifts []*model.Shift, spec model.JobSpec) *CoverageMetrics {
	assignedByDateKind := make(map[string]map[model.ShiftKind]int)
	for _, sh := range shifts {
		date := sh.Date.Format("2006-01-02")
		if assignedByDateKind[date] == nil {
			assignedByDateKind[date] = make(map[model.ShiftKind]int)
		}
		assignedByDateKind[date][sh.ShiftKind]++
	}

	dailyCoverage := make(map[string]DayCoverage)
	kindRequired := make(map[model.ShiftKind]int)
	kindAssigned := make(map[model.ShiftKind]int)
	var shortfalls []ShortfallSlot

	totalRequired, totalAssigned := 0, 0

	for d := 1; d <= spec.MonthDays(); d++ {
		date := spec.DateOf(d).Format("2006-01-02")
		dayRequired, dayAssigned := 0, 0

		for _, kind := range model.AllShiftKinds {
			required := spec.RequiredStaffing.NeedFor(date, kind)
			if required == 0 {
				continue
			}
			assigned := assignedByDateKind[date][kind]

			dayRequired += required
			dayAssigned += assigned
			kindRequired[kind] += required
			kindAssigned[kind] += assigned

			if assigned < required {
				shortfalls = append(shortfalls, ShortfallSlot{
					Date: date, Kind: kind, Required: required, Assigned: assigned, Shortage: required - assigned,
				})
			}
		}

		rate := 100.0
		if dayRequired > 0 {
			rate = float64(dayAssigned) / float64(dayRequired) * 100
		}
		dailyCoverage[date] = DayCoverage{Date: date, Required: dayRequired, Assigned: dayAssigned, CoverageRate: rate}

		totalRequired += dayRequired
		totalAssigned += dayAssigned
	}

	kindCoverage := make(map[string]float64)
	for kind, required := range kindRequired {
		if required > 0 {
			kindCoverage[kind.String()] = float64(kindAssigned[kind]) / float64(required) * 100
		}
	}

	overall := 100.0
	if totalRequired > 0 {
		overall = float64(totalAssigned) / float64(totalRequired) * 100
	}

	return &CoverageMetrics{
		TotalRequired:   totalRequired,
		TotalAssigned:   totalAssigned,
		OverallCoverage: overall,
		DailyCoverage:   dailyCoverage,
		KindCoverage:    kindCoverage,
		ShortfallSlots:  shortfalls,
	}
}

// GenerateReport renders metrics as a short human-readable summary.
func (c *CoverageAnalyzer) GenerateReport(metrics *CoverageMetrics) string {
	report := fmt.Sprintf(
		"=== coverage report ===\n\nrequired: %d\nassigned: %d\ncoverage: %.1f%%\n\n",
		metrics.TotalRequired, metrics.TotalAssigned, metrics.OverallCoverage,
	)

	if len(metrics.ShortfallSlots) > 0 {
		report += "shortfalls:\n"
		for _, s := range metrics.ShortfallSlots {
			report += fmt.Sprintf("  - %s %s: need %d, have %d (short %d)\n", s.Date, s.Kind, s.Required, s.Assigned, s.Shortage)
		}
	}

	return report
}
