package model

import (
	"testing"

	"github.com/google/uuid"
)

func newTestStaff(n int) []*Staff {
	out := make([]*Staff, n)
	for i := range out {
		out[i] = &Staff{
			BaseModel:      BaseModel{ID: uuid.New()},
			Name:           "staff",
			EmploymentType: Regular,
			Experience:     ExperienceRegular,
		}
	}
	return out
}

func TestDraft_SetGetClear(t *testing.T) {
	staff := newTestStaff(2)
	d := NewDraft(staff, 28)

	dayIdx := DayIndex(1)
	d.Set(0, dayIdx, Night)

	if got := d.Get(0, dayIdx); got != Night {
		t.Fatalf("Get() = %v, want Night", got)
	}
	if d.NightCount(0) != 1 {
		t.Errorf("NightCount = %d, want 1", d.NightCount(0))
	}
	if d.Hours(0) != 16 {
		t.Errorf("Hours = %v, want 16", d.Hours(0))
	}
	if d.DailyKindCount(dayIdx, Night) != 1 {
		t.Errorf("DailyKindCount = %d, want 1", d.DailyKindCount(dayIdx, Night))
	}

	d.Clear(0, dayIdx)
	if got := d.Get(0, dayIdx); got != Unassigned {
		t.Fatalf("Get() after Clear = %v, want Unassigned", got)
	}
	if d.NightCount(0) != 0 {
		t.Errorf("NightCount after Clear = %d, want 0", d.NightCount(0))
	}
	if d.Hours(0) != 0 {
		t.Errorf("Hours after Clear = %v, want 0", d.Hours(0))
	}
	if d.DailyKindCount(dayIdx, Night) != 0 {
		t.Errorf("DailyKindCount after Clear = %d, want 0", d.DailyKindCount(dayIdx, Night))
	}
}

func TestDraft_SetOverwritesPreviousAccumulator(t *testing.T) {
	staff := newTestStaff(1)
	d := NewDraft(staff, 28)
	dayIdx := DayIndex(5)

	d.Set(0, dayIdx, Holiday)
	if d.HolidayCount(0) != 1 {
		t.Fatalf("HolidayCount = %d, want 1", d.HolidayCount(0))
	}

	// Re-setting the same cell to a work kind must undo the stale holiday
	// accumulator, not double-count it.
	d.Set(0, dayIdx, Early)
	if d.HolidayCount(0) != 0 {
		t.Errorf("HolidayCount after overwrite = %d, want 0", d.HolidayCount(0))
	}
	if d.AssignedCount(0) != 1 {
		t.Errorf("AssignedCount = %d, want 1 (not 2)", d.AssignedCount(0))
	}
	if d.Hours(0) != 8 {
		t.Errorf("Hours = %v, want 8", d.Hours(0))
	}
}

func TestDraft_SnapshotRestore(t *testing.T) {
	staff := newTestStaff(2)
	d := NewDraft(staff, 28)

	d.Set(0, DayIndex(1), Night)
	d.Set(1, DayIndex(1), Holiday)
	snap := d.Snapshot()

	d.Set(0, DayIndex(2), After)
	d.Clear(1, DayIndex(1))

	d.Restore(snap)

	if d.Get(0, DayIndex(1)) != Night {
		t.Errorf("after restore, staff0 day1 = %v, want Night", d.Get(0, DayIndex(1)))
	}
	if d.Get(0, DayIndex(2)) != Unassigned {
		t.Errorf("after restore, staff0 day2 = %v, want Unassigned", d.Get(0, DayIndex(2)))
	}
	if d.Get(1, DayIndex(1)) != Holiday {
		t.Errorf("after restore, staff1 day1 = %v, want Holiday", d.Get(1, DayIndex(1)))
	}
	if d.NightCount(0) != 1 {
		t.Errorf("NightCount after restore = %d, want 1", d.NightCount(0))
	}
	if d.HolidayCount(1) != 1 {
		t.Errorf("HolidayCount after restore = %d, want 1", d.HolidayCount(1))
	}
}

func TestDraft_SeedTailDoesNotTouchAccumulators(t *testing.T) {
	staff := newTestStaff(1)
	d := NewDraft(staff, 28)

	d.SeedTail(0, TailIndex(1), Night)

	if d.NightCount(0) != 0 {
		t.Errorf("tail seeding should not affect target-month accumulators, got NightCount=%d", d.NightCount(0))
	}
	if d.Get(0, TailIndex(1)) != Night {
		t.Errorf("Get(tail) = %v, want Night", d.Get(0, TailIndex(1)))
	}
}

func TestDraft_StaffIndexLookup(t *testing.T) {
	staff := newTestStaff(3)
	d := NewDraft(staff, 28)

	for i, s := range staff {
		if idx := d.StaffIndexOf(s.ID); idx != i {
			t.Errorf("StaffIndexOf(%v) = %d, want %d", s.ID, idx, i)
		}
	}
	if idx := d.StaffIndexOf(uuid.New()); idx != -1 {
		t.Errorf("StaffIndexOf(unknown) = %d, want -1", idx)
	}
}
