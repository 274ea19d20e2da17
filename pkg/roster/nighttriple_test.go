package roster

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/validator"
)

func newNightQualifiedStaff(n int) []*model.Staff {
	out := make([]*model.Staff, n)
	for i := range out {
		out[i] = &model.Staff{
			BaseModel:      model.BaseModel{ID: uuid.New()},
			Name:           "staff",
			EmploymentType: model.Regular,
			Experience:     model.ExperienceRegular,
		}
	}
	return out
}

// spacedNightRequired requires exactly one night on each of the given
// days-of-month, spaced at least 3 days apart so each can host a complete
// night/after/holiday triple without the triples overlapping.
func spacedNightRequired(days ...int) model.RequiredStaffing {
	out := make(model.RequiredStaffing, len(days))
	for _, d := range days {
		date := model.JobSpec{Year: 2026, Month: 8}.DateOf(d).Format("2006-01-02")
		out[date] = map[model.ShiftKind]int{model.Night: 1}
	}
	return out
}

func TestSeedPriorNightTail_NightLastDay(t *testing.T) {
	staff := newNightQualifiedStaff(1)
	draft := model.NewDraft(staff, 28)
	draft.SeedTail(0, model.TailIndex(1), model.Night)

	SeedPriorNightTail(draft, staff)

	if got := draft.Get(0, model.DayIndex(1)); got != model.After {
		t.Errorf("day1 = %v, want After", got)
	}
	if got := draft.Get(0, model.DayIndex(2)); got != model.Holiday {
		t.Errorf("day2 = %v, want Holiday", got)
	}
}

func TestSeedPriorNightTail_NightSecondToLastDay(t *testing.T) {
	staff := newNightQualifiedStaff(1)
	draft := model.NewDraft(staff, 28)
	draft.SeedTail(0, model.TailIndex(2), model.Night)
	draft.SeedTail(0, model.TailIndex(1), model.After)

	SeedPriorNightTail(draft, staff)

	if got := draft.Get(0, model.DayIndex(1)); got != model.Holiday {
		t.Errorf("day1 = %v, want Holiday", got)
	}
	if got := draft.Get(0, model.DayIndex(2)); got != model.Unassigned {
		t.Errorf("day2 = %v, want Unassigned (not forced)", got)
	}
}

func TestSeedPriorNightTail_NoPriorNight(t *testing.T) {
	staff := newNightQualifiedStaff(1)
	draft := model.NewDraft(staff, 28)

	SeedPriorNightTail(draft, staff)

	if got := draft.Get(0, model.DayIndex(1)); got != model.Unassigned {
		t.Errorf("day1 = %v, want Unassigned", got)
	}
}

func TestAssignNightTriples_FillsTarget(t *testing.T) {
	staff := newNightQualifiedStaff(3)
	monthDays := 9
	draft := model.NewDraft(staff, monthDays)
	required := spacedNightRequired(1, 4, 7)
	ctx := validator.NewContext(2026, 8, monthDays, required, 5)
	rng := rand.New(rand.NewSource(1))

	result := AssignNightTriples(draft, ctx, staff, rng)

	if !result.Complete() {
		t.Fatalf("expected AssignNightTriples to hit the target, got %+v", result)
	}
	if result.Target != 3 {
		t.Errorf("target = %d, want 3", result.Target)
	}

	total := 0
	for i := range staff {
		total += draft.NightCount(i)
	}
	if total != result.Assigned {
		t.Errorf("draft night count = %d, result reports %d", total, result.Assigned)
	}
}

func TestAssignNightTriples_NoQualifiedStaffStopsEarly(t *testing.T) {
	staff := []*model.Staff{{
		BaseModel:      model.BaseModel{ID: uuid.New()},
		EmploymentType: model.PartTime,
		Experience:     model.ExperienceRegular,
	}}
	monthDays := 9
	draft := model.NewDraft(staff, monthDays)
	required := spacedNightRequired(1, 4, 7)
	ctx := validator.NewContext(2026, 8, monthDays, required, 5)
	rng := rand.New(rand.NewSource(1))

	result := AssignNightTriples(draft, ctx, staff, rng)

	if result.Assigned != 0 {
		t.Errorf("Assigned = %d, want 0 (no night-qualified staff)", result.Assigned)
	}
	if result.Complete() {
		t.Error("result should not be reported complete")
	}
}

func TestAssignNightTriples_SetsCompleteTriple(t *testing.T) {
	staff := newNightQualifiedStaff(1)
	monthDays := 9
	draft := model.NewDraft(staff, monthDays)
	required := model.RequiredStaffing{
		model.JobSpec{Year: 2026, Month: 8}.DateOf(1).Format("2006-01-02"): {model.Night: 1},
	}
	ctx := validator.NewContext(2026, 8, monthDays, required, 5)
	rng := rand.New(rand.NewSource(1))

	result := AssignNightTriples(draft, ctx, staff, rng)

	if result.Assigned != 1 {
		t.Fatalf("Assigned = %d, want 1", result.Assigned)
	}
	if draft.Get(0, model.DayIndex(1)) != model.Night {
		t.Errorf("day1 = %v, want Night", draft.Get(0, model.DayIndex(1)))
	}
	if draft.Get(0, model.DayIndex(2)) != model.After {
		t.Errorf("day2 = %v, want After", draft.Get(0, model.DayIndex(2)))
	}
	if draft.Get(0, model.DayIndex(3)) != model.Holiday {
		t.Errorf("day3 = %v, want Holiday", draft.Get(0, model.DayIndex(3)))
	}
}
