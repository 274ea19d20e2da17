// Package validator implements the roster's hard-constraint gate: the one
// pure, total function every cell the solver ever writes must pass.
//
// It is the direct descendant of the teacher's constraint-manager
// CanAssign gate (pkg/scheduler/constraint/manager.go), collapsed from a
// pluggable weighted registry of hard and soft constraints down to the
// eight fixed rules the roster actually needs, none of them weighted or
// user-configurable.
package validator

import (
	"time"

	"github.com/carefac/roster/pkg/model"
)

// maxConsecutiveWork is how many WORK days may immediately precede a new
// WORK assignment before it is rejected.
const maxConsecutiveWork = 4

// lookbackWindow bounds how far back rule 4 scans; it never needs to look
// further than one more day than the cap itself.
const lookbackWindow = maxConsecutiveWork + 1

// Context bundles the per-solve facts the validator needs beyond the
// draft itself: the month length, the staffing requirement table, and the
// holiday quota. It is built once per job and never mutated during a
// solve, the same immutability the teacher's constraint.Context affords
// its Employees/Shifts snapshot.
type Context struct {
	MonthDays      int
	Required       model.RequiredStaffing
	TargetHolidays int

	// dateStrings[dayIdx] is the "YYYY-MM-DD" key used to look up Required,
	// and weekdays[dayIdx] is its 0=Sunday..6=Saturday day of week.
	// Both are precomputed once so the validator never calls time.Date on
	// the hot path.
	dateStrings []string
	weekdays    []int
}

// NewContext precomputes the date/weekday lookup tables for a job running
// against the given year and month.
func NewContext(year, month, monthDays int, required model.RequiredStaffing, targetHolidays int) *Context {
	totalDays := monthDays + 2 // tail days share the table, though Required never has entries for them
	c := &Context{
		MonthDays:      monthDays,
		Required:       required,
		TargetHolidays: targetHolidays,
		dateStrings:    make([]string, totalDays),
		weekdays:       make([]int, totalDays),
	}
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for dayIdx := 0; dayIdx < totalDays; dayIdx++ {
		dayOfMonth := dayIdx - 1 // dayIdx 2 => day-of-month 1
		d := monthStart.AddDate(0, 0, dayOfMonth-1)
		c.dateStrings[dayIdx] = d.Format("2006-01-02")
		c.weekdays[dayIdx] = int(d.Weekday())
	}
	return c
}

// DateString returns the "YYYY-MM-DD" key for a draft day index.
func (c *Context) DateString(dayIdx int) string { return c.dateStrings[dayIdx] }

// Weekday returns the 0=Sunday..6=Saturday weekday for a draft day index.
func (c *Context) Weekday(dayIdx int) int { return c.weekdays[dayIdx] }

// Valid is the hard-constraint gate: the eight rules every cell in the
// draft must pass. It answers whether assigning kind to staff at dayIdx is
// permitted given the draft's current state — nothing else. It never
// mutates the draft and never fails: every input is either accepted or
// rejected, there is no error path.
func Valid(draft *model.Draft, ctx *Context, staffIdx int, dayIdx int, kind model.ShiftKind, staff *model.Staff) bool {
	// Rule 1: availability, default available.
	if !staff.IsAvailable(ctx.Weekday(dayIdx), kind) {
		return false
	}

	prev := draft.Get(staffIdx, dayIdx-1)
	prev2 := draft.Get(staffIdx, dayIdx-2)

	// Rule 2: post-night chain.
	if prev == model.Night && kind != model.After {
		return false
	}
	if prev2 == model.Night && kind != model.Holiday {
		return false
	}

	// Rule 3: night qualification.
	if kind == model.Night && !staff.NightQualified() {
		return false
	}

	// Rule 4: consecutive work cap, looking back up to lookbackWindow days.
	if kind.IsWork() {
		run := 0
		for back := 1; back <= lookbackWindow && dayIdx-back >= 0; back++ {
			if draft.Get(staffIdx, dayIdx-back).IsWork() {
				run++
			} else {
				break
			}
		}
		if run >= maxConsecutiveWork {
			return false
		}
	}

	// Rule 5: holiday quota.
	h := draft.HolidayCount(staffIdx)
	if kind == model.Holiday && h >= ctx.TargetHolidays {
		return false
	}
	if kind.IsWork() {
		assigned := draft.AssignedCount(staffIdx)
		remaining := ctx.MonthDays - assigned
		need := ctx.TargetHolidays - h
		if remaining < need {
			return false
		}
	}

	// Rule 6: weekly hours cap.
	weeklyCap := float64(ctx.MonthDays) / 7 * 40
	if draft.Hours(staffIdx)+kind.Hours() > weeklyCap {
		return false
	}

	// Rule 7: per-day staffing ceiling, exact — never overfill a slot.
	if kind.IsWork() {
		date := ctx.DateString(dayIdx)
		req := ctx.Required.NeedFor(date, kind)
		if draft.DailyKindCount(dayIdx, kind) >= req {
			return false
		}
	}

	// Rule 8: no solo trainee on a work shift.
	if staff.Experience == model.Trainee && kind.IsWork() {
		if draft.DailyWorkCount(dayIdx) == 0 {
			return false
		}
	}

	return true
}
