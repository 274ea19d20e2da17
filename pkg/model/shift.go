package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Shift is a single persisted assignment row, matching the `shifts` table:
// one staff member, one calendar date, one shift kind.
type Shift struct {
	BaseModel
	Date      time.Time `json:"date" db:"date"`
	ShiftKind ShiftKind `json:"shift_type" db:"-"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
	StaffID   uuid.UUID `json:"staff_id" db:"staff_id"`
	StaffName string    `json:"staff_name,omitempty" db:"-"`
}

// MarshalJSON renders Date as "YYYY-MM-DD", not the full RFC3339 timestamp
// time.Time defaults to.
func (s Shift) MarshalJSON() ([]byte, error) {
	type alias Shift
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(s), Date: s.Date.Format("2006-01-02")})
}

// RequiredStaffing maps a date to the per-shift-kind headcount the roster
// must try to fill. A kind absent from the inner map requires zero staff.
type RequiredStaffing map[string]map[ShiftKind]int

// NeedFor returns the required headcount for kind on the given date,
// defaulting to zero.
func (r RequiredStaffing) NeedFor(date string, kind ShiftKind) int {
	if byKind, ok := r[date]; ok {
		return byKind[kind]
	}
	return 0
}

// JobSpec is the input to a single month's roster generation: the target
// year and month, the staffing quota, and the holiday target per staff
// member.
type JobSpec struct {
	Year             int              `json:"year"`
	Month            int              `json:"month"`
	TargetHolidays   int              `json:"targetHolidays"`
	RequiredStaffing RequiredStaffing `json:"required_staffing"`
}

// MonthDays returns the number of days in the job's target month.
func (j JobSpec) MonthDays() int {
	return time.Date(j.Year, time.Month(j.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf returns the calendar date for day-of-month d (1-indexed).
func (j JobSpec) DateOf(d int) time.Time {
	return time.Date(j.Year, time.Month(j.Month), d, 0, 0, 0, 0, time.UTC)
}
