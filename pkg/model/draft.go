package model

import "github.com/google/uuid"

// tailDays is the number of previous-month days carried into a Draft as
// read-only context for the post-night chain rule and the night-triple
// pre-assigner's seed step.
const tailDays = 2

// Draft is a dense staff-index x day-index grid holding one month's
// in-progress assignment. Get/Set/Clear are O(1) and never allocate once
// the Draft is built, which matters because the backtracking driver calls
// them on every node of the search.
//
// Day index 0 and 1 hold the target month's two immediately preceding
// days (copied in once, never rewritten). Day index d (2 <= d <=
// monthDays+1) holds day-of-month d-1 of the target month.
type Draft struct {
	staffIDs   []uuid.UUID
	staffIndex map[uuid.UUID]int
	monthDays  int

	cells [][]ShiftKind // [staffIdx][dayIdx]

	// Per-staff accumulators, maintained incrementally by Set/Clear so the
	// validator never has to rescan the grid.
	assignedCount []int     // count of target-month days with a non-Unassigned kind
	holidayCount  []int     // count of target-month Holiday assignments
	hoursCount    []float64 // sum of Hours() over target-month assignments
	nightCount    []int     // count of target-month Night assignments

	// Per-date, per-kind staffing counts across all staff, for rule 7.
	dailyKindCount [][]int // [dayIdx][kind], only target-month indices used
	dailyWorkCount []int   // [dayIdx], count of any WorkKind across staff
}

// NewDraft builds an empty draft for the given staff snapshot and month
// length. Staff order at construction time becomes the stable staff index
// used for the rest of the solve.
func NewDraft(staff []*Staff, monthDays int) *Draft {
	n := len(staff)
	totalDays := monthDays + tailDays

	d := &Draft{
		staffIDs:       make([]uuid.UUID, n),
		staffIndex:     make(map[uuid.UUID]int, n),
		monthDays:      monthDays,
		cells:          make([][]ShiftKind, n),
		assignedCount:  make([]int, n),
		holidayCount:   make([]int, n),
		hoursCount:     make([]float64, n),
		nightCount:     make([]int, n),
		dailyKindCount: make([][]int, totalDays),
		dailyWorkCount: make([]int, totalDays),
	}
	for i, s := range staff {
		d.staffIDs[i] = s.ID
		d.staffIndex[s.ID] = i
		row := make([]ShiftKind, totalDays)
		for j := range row {
			row[j] = Unassigned
		}
		d.cells[i] = row
	}
	for j := range d.dailyKindCount {
		d.dailyKindCount[j] = make([]int, len(AllShiftKinds)+1)
	}
	return d
}

// StaffCount returns the number of staff indexed by this draft.
func (d *Draft) StaffCount() int { return len(d.staffIDs) }

// MonthDays returns the number of target-month days indexed by this draft.
func (d *Draft) MonthDays() int { return d.monthDays }

// StaffIndexOf returns the stable index for a staff ID, or -1 if unknown.
func (d *Draft) StaffIndexOf(id uuid.UUID) int {
	if idx, ok := d.staffIndex[id]; ok {
		return idx
	}
	return -1
}

// StaffIDAt returns the staff ID at a given index.
func (d *Draft) StaffIDAt(idx int) uuid.UUID { return d.staffIDs[idx] }

// DayIndex converts a 1-indexed target-month day-of-month into a draft day
// index.
func DayIndex(dayOfMonth int) int { return dayOfMonth - 1 + tailDays }

// TailIndex converts an offset into the previous month's tail (1 = last
// day, 2 = second-to-last day) into a draft day index.
func TailIndex(daysBeforeMonth int) int { return tailDays - daysBeforeMonth }

// Get returns the kind assigned at (staffIdx, dayIdx), or Unassigned.
func (d *Draft) Get(staffIdx, dayIdx int) ShiftKind {
	return d.cells[staffIdx][dayIdx]
}

// SeedTail writes a previous-month tail entry. It does not update the
// accumulators: tail days are read-only context, not part of the target
// month's totals.
func (d *Draft) SeedTail(staffIdx, dayIdx int, kind ShiftKind) {
	d.cells[staffIdx][dayIdx] = kind
}

// Set writes kind at (staffIdx, dayIdx) and updates every accumulator.
// dayIdx must be within the target month (>= tailDays).
func (d *Draft) Set(staffIdx, dayIdx int, kind ShiftKind) {
	prev := d.cells[staffIdx][dayIdx]
	if prev != Unassigned {
		d.Clear(staffIdx, dayIdx)
	}
	d.cells[staffIdx][dayIdx] = kind
	d.assignedCount[staffIdx]++
	d.hoursCount[staffIdx] += kind.Hours()
	if kind == Holiday {
		d.holidayCount[staffIdx]++
	}
	if kind == Night {
		d.nightCount[staffIdx]++
	}
	d.dailyKindCount[dayIdx][kind]++
	if kind.IsWork() {
		d.dailyWorkCount[dayIdx]++
	}
}

// Clear undoes a previous Set, restoring every accumulator. This is the
// O(1) undo the backtracking driver relies on.
func (d *Draft) Clear(staffIdx, dayIdx int) {
	kind := d.cells[staffIdx][dayIdx]
	if kind == Unassigned {
		return
	}
	d.cells[staffIdx][dayIdx] = Unassigned
	d.assignedCount[staffIdx]--
	d.hoursCount[staffIdx] -= kind.Hours()
	if kind == Holiday {
		d.holidayCount[staffIdx]--
	}
	if kind == Night {
		d.nightCount[staffIdx]--
	}
	d.dailyKindCount[dayIdx][kind]--
	if kind.IsWork() {
		d.dailyWorkCount[dayIdx]--
	}
}

// AssignedCount, HolidayCount, Hours and NightCount return the current
// per-staff accumulator values, used by the validator and the scorer.
func (d *Draft) AssignedCount(staffIdx int) int  { return d.assignedCount[staffIdx] }
func (d *Draft) HolidayCount(staffIdx int) int   { return d.holidayCount[staffIdx] }
func (d *Draft) Hours(staffIdx int) float64      { return d.hoursCount[staffIdx] }
func (d *Draft) NightCount(staffIdx int) int     { return d.nightCount[staffIdx] }

// DailyKindCount returns how many staff are currently assigned kind on the
// date at dayIdx.
func (d *Draft) DailyKindCount(dayIdx int, kind ShiftKind) int {
	return d.dailyKindCount[dayIdx][kind]
}

// DailyWorkCount returns how many staff are currently assigned any work
// kind on the date at dayIdx.
func (d *Draft) DailyWorkCount(dayIdx int) int {
	return d.dailyWorkCount[dayIdx]
}

// Snapshot deep-copies the whole grid, tail days included, for the
// backtracking driver's best-partial tracking (see bestTracker in
// pkg/roster/backtrack.go).
func (d *Draft) Snapshot() [][]ShiftKind {
	out := make([][]ShiftKind, len(d.cells))
	for i, row := range d.cells {
		out[i] = append([]ShiftKind(nil), row...)
	}
	return out
}

// Restore overwrites the grid from a snapshot taken by Snapshot, rebuilding
// every accumulator from scratch.
func (d *Draft) Restore(snap [][]ShiftKind) {
	n := len(d.staffIDs)
	totalDays := d.monthDays + tailDays
	for i := 0; i < n; i++ {
		for j := 0; j < totalDays; j++ {
			d.cells[i][j] = Unassigned
		}
	}
	for i := range d.assignedCount {
		d.assignedCount[i], d.holidayCount[i], d.hoursCount[i], d.nightCount[i] = 0, 0, 0, 0
	}
	for j := range d.dailyKindCount {
		for k := range d.dailyKindCount[j] {
			d.dailyKindCount[j][k] = 0
		}
		d.dailyWorkCount[j] = 0
	}
	for i, row := range snap {
		for j, kind := range row {
			if kind == Unassigned {
				continue
			}
			if j < tailDays {
				d.cells[i][j] = kind
				continue
			}
			d.Set(i, j, kind)
		}
	}
}
