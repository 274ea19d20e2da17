package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
)

type fakeStaffSource struct {
	staff []*model.Staff
	err   error
}

func (f *fakeStaffSource) ListStaff(ctx context.Context) ([]*model.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.staff, nil
}

type fakeShiftStore struct {
	tails       map[uuid.UUID]PriorTail
	stored      []*model.Shift
	replaceErr  error
	tailErr     error
	replaceYear int
}

func (f *fakeShiftStore) PriorMonthTail(ctx context.Context, year, month int, staffIDs []uuid.UUID) (map[uuid.UUID]PriorTail, error) {
	if f.tailErr != nil {
		return nil, f.tailErr
	}
	return f.tails, nil
}

func (f *fakeShiftStore) ReplaceMonth(ctx context.Context, year, month int, shifts []*model.Shift) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.stored = shifts
	f.replaceYear = year
	return nil
}

func newOrchestratorStaff(n int) []*model.Staff {
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

func TestGenerate_PersistsAFullMonth(t *testing.T) {
	staff := newOrchestratorStaff(3)
	source := &fakeStaffSource{staff: staff}
	store := &fakeShiftStore{tails: map[uuid.UUID]PriorTail{}}

	spec := model.JobSpec{Year: 2026, Month: 2, TargetHolidays: 8}

	result, err := Generate(context.Background(), source, store, spec, 1)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Status != StatusComplete {
		t.Errorf("status = %q, want %q", result.Status, StatusComplete)
	}
	if len(store.stored) == 0 {
		t.Error("ReplaceMonth should have been called with a non-empty shift set")
	}
	if store.replaceYear != 2026 {
		t.Errorf("ReplaceMonth year = %d, want 2026", store.replaceYear)
	}
	for _, sh := range result.Shifts {
		if sh.Date.Month() != 2 {
			t.Errorf("shift date %v falls outside the target month", sh.Date)
		}
	}
}

func TestGenerate_SeedsFromPriorMonthNightTail(t *testing.T) {
	staff := newOrchestratorStaff(1)
	source := &fakeStaffSource{staff: staff}
	store := &fakeShiftStore{
		tails: map[uuid.UUID]PriorTail{
			staff[0].ID: {OneDayBefore: model.Night},
		},
	}
	spec := model.JobSpec{Year: 2026, Month: 2, TargetHolidays: 8}

	result, err := Generate(context.Background(), source, store, spec, 1)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	var day1, day2 model.ShiftKind = model.Unassigned, model.Unassigned
	for _, sh := range result.Shifts {
		if sh.StaffID != staff[0].ID {
			continue
		}
		switch sh.Date.Day() {
		case 1:
			day1 = sh.ShiftKind
		case 2:
			day2 = sh.ShiftKind
		}
	}
	if day1 != model.After {
		t.Errorf("day 1 = %v, want After (forced by a night shift the prior day)", day1)
	}
	if day2 != model.Holiday {
		t.Errorf("day 2 = %v, want Holiday", day2)
	}
}

func TestGenerate_StaffSourceErrorPropagates(t *testing.T) {
	source := &fakeStaffSource{err: errors.New("boom")}
	store := &fakeShiftStore{}
	spec := model.JobSpec{Year: 2026, Month: 2, TargetHolidays: 8}

	_, err := Generate(context.Background(), source, store, spec, 1)
	if err == nil {
		t.Fatal("expected the staff source error to propagate")
	}
}

func TestGenerate_CancelledContextIsNotPersisted(t *testing.T) {
	staff := newOrchestratorStaff(4)
	source := &fakeStaffSource{staff: staff}
	store := &fakeShiftStore{tails: map[uuid.UUID]PriorTail{}}
	spec := model.JobSpec{Year: 2026, Month: 2, TargetHolidays: 8}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, source, store, spec, 1)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if store.stored != nil {
		t.Error("a cancelled generation must not persist anything")
	}
}

func TestFlattenDraft_OmitsUnassignedAndPriorMonthTail(t *testing.T) {
	staff := newOrchestratorStaff(1)
	monthDays := 3
	draft := model.NewDraft(staff, monthDays)
	draft.SeedTail(0, model.TailIndex(1), model.Night)
	draft.Set(0, model.DayIndex(1), model.After)
	// day 2 and day 3 left unassigned.

	spec := model.JobSpec{Year: 2026, Month: 2}
	shifts := FlattenDraft(draft, staff, spec)

	if len(shifts) != 1 {
		t.Fatalf("len(shifts) = %d, want 1", len(shifts))
	}
	if shifts[0].Date.Day() != 1 || shifts[0].ShiftKind != model.After {
		t.Errorf("unexpected shift: %+v", shifts[0])
	}
}
