package roster

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/validator"
)

func newBacktrackStaff(n int) []*model.Staff {
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

func TestSolve_FillsEveryUnassignedSlot(t *testing.T) {
	staff := newBacktrackStaff(2)
	monthDays := 3
	draft := model.NewDraft(staff, monthDays)
	rctx := validator.NewContext(2026, 8, monthDays, nil, 2)
	slots := OrderSlots(draft, rctx, staff)
	rng := rand.New(rand.NewSource(42))

	result, err := Solve(context.Background(), draft, rctx, staff, slots, rng)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if !result.Complete {
		t.Fatal("expected the search to find a complete assignment for an unconstrained draft")
	}
	for _, s := range staff {
		idx := draft.StaffIndexOf(s.ID)
		for d := 1; d <= monthDays; d++ {
			if draft.Get(idx, model.DayIndex(d)) == model.Unassigned {
				t.Errorf("staff %d day %d left unassigned after a complete solve", idx, d)
			}
		}
	}
}

func TestSolve_CancelledContextReturnsError(t *testing.T) {
	staff := newBacktrackStaff(3)
	monthDays := 28
	draft := model.NewDraft(staff, monthDays)
	rctx := validator.NewContext(2026, 8, monthDays, nil, 4)
	slots := OrderSlots(draft, rctx, staff)
	rng := rand.New(rand.NewSource(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, draft, rctx, staff, slots, rng)
	if err == nil {
		t.Fatal("expected Solve to return an error for an already-cancelled context")
	}
}

func TestSolve_ExpiredDeadlineReturnsError(t *testing.T) {
	staff := newBacktrackStaff(4)
	monthDays := 28
	draft := model.NewDraft(staff, monthDays)
	rctx := validator.NewContext(2026, 8, monthDays, nil, 8)
	slots := OrderSlots(draft, rctx, staff)
	rng := rand.New(rand.NewSource(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := Solve(ctx, draft, rctx, staff, slots, rng)
	if err == nil {
		t.Fatal("expected a context-deadline error")
	}
}

func TestBestTracker_RestoresDeepestSnapshot(t *testing.T) {
	staff := newBacktrackStaff(1)
	draft := model.NewDraft(staff, 3)
	tracker := &bestTracker{draft: draft}

	draft.Set(0, model.DayIndex(1), model.Early)
	tracker.noteDepth(1)

	draft.Set(0, model.DayIndex(2), model.Early)
	tracker.noteDepth(0) // a shallower depth must not overwrite the deeper snapshot

	tracker.restoreBest()

	if draft.Get(0, model.DayIndex(1)) != model.Early {
		t.Error("restoreBest should keep the day-1 assignment from the deepest snapshot")
	}
	if draft.Get(0, model.DayIndex(2)) != model.Unassigned {
		t.Error("restoreBest should have discarded the day-2 assignment made after the deepest snapshot")
	}
}
