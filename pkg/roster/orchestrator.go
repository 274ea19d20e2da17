package roster

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/validator"
)

// PriorTail is the previous month's last two days for one staff member,
// the read-only context the post-night chain rule and the night-triple
// seed step need at the start of a solve.
type PriorTail struct {
	TwoDaysBefore model.ShiftKind
	OneDayBefore  model.ShiftKind
}

// StaffSource loads the immutable staff snapshot a solve runs against.
type StaffSource interface {
	ListStaff(ctx context.Context) ([]*model.Staff, error)
}

// ShiftStore is the persistence boundary the orchestrator writes through.
// ReplaceMonth must be atomic: it either leaves every previously stored
// shift for the target month intact, or replaces all of them with the
// given set, inside a single transaction scoped to that month. Rows for
// the previous month's tail are never touched.
type ShiftStore interface {
	PriorMonthTail(ctx context.Context, year, month int, staffIDs []uuid.UUID) (map[uuid.UUID]PriorTail, error)
	ReplaceMonth(ctx context.Context, year, month int, shifts []*model.Shift) error
}

// GenerateResult is the outcome of one Generate call.
type GenerateResult struct {
	Status string // "complete" or "incomplete"
	Shifts []*model.Shift
}

const (
	StatusComplete   = "complete"
	StatusIncomplete = "incomplete"
)

// ErrCancelled is returned when the context is cancelled or times out
// mid-search. This is not persisted: the orchestrator leaves whatever was
// already stored for the month untouched.
var ErrCancelled = errors.New("roster: generation cancelled")

// Generate runs the full pipeline for one month: load staff, seed the
// draft with the prior month's tail, pre-assign night triples, order the
// remaining slots, run the backtracking search, and persist the result.
// A seed of 0 seeds the RNG from the wall clock; any other seed reproduces
// the same roster for the same inputs.
func Generate(ctx context.Context, staffSource StaffSource, store ShiftStore, spec model.JobSpec, seed int64) (*GenerateResult, error) {
	staff, err := staffSource.ListStaff(ctx)
	if err != nil {
		return nil, err
	}

	monthDays := spec.MonthDays()
	draft := model.NewDraft(staff, monthDays)

	staffIDs := make([]uuid.UUID, len(staff))
	for i, s := range staff {
		staffIDs[i] = s.ID
	}
	tails, err := store.PriorMonthTail(ctx, spec.Year, spec.Month, staffIDs)
	if err != nil {
		return nil, err
	}
	for idx, s := range staff {
		if tail, ok := tails[s.ID]; ok {
			draft.SeedTail(idx, model.TailIndex(2), tail.TwoDaysBefore)
			draft.SeedTail(idx, model.TailIndex(1), tail.OneDayBefore)
		}
	}

	rctx := validator.NewContext(spec.Year, spec.Month, monthDays, spec.RequiredStaffing, spec.TargetHolidays)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	SeedPriorNightTail(draft, staff)
	AssignNightTriples(draft, rctx, staff, rng)

	slots := OrderSlots(draft, rctx, staff)
	result, err := Solve(ctx, draft, rctx, staff, slots, rng)
	if err != nil {
		return nil, ErrCancelled
	}

	status := StatusIncomplete
	if result.Complete {
		status = StatusComplete
	}

	shifts := FlattenDraft(draft, staff, spec)
	if err := store.ReplaceMonth(ctx, spec.Year, spec.Month, shifts); err != nil {
		return nil, err
	}

	return &GenerateResult{Status: status, Shifts: shifts}, nil
}

// FlattenDraft converts the target-month portion of a draft into persisted
// shift rows. The prior-month tail (day indices below the month start) is
// never included: those rows belong to the previous month and were never
// rewritten.
func FlattenDraft(draft *model.Draft, staff []*model.Staff, spec model.JobSpec) []*model.Shift {
	var shifts []*model.Shift
	for idx, s := range staff {
		for d := 1; d <= spec.MonthDays(); d++ {
			kind := draft.Get(idx, model.DayIndex(d))
			if kind == model.Unassigned {
				continue
			}
			shifts = append(shifts, &model.Shift{
				BaseModel: model.NewBaseModel(),
				Date:      spec.DateOf(d),
				ShiftKind: kind,
				StaffID:   s.ID,
				StaffName: s.Name,
			})
		}
	}
	return shifts
}
