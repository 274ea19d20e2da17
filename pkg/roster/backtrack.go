package roster

import (
	"context"
	"math/rand"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/validator"
)

// SolveResult is what the backtracking search hands back to the
// orchestrator.
type SolveResult struct {
	// Complete is true when every slot was filled. When false, the draft
	// has been restored to the deepest partial assignment the search
	// reached (see bestTracker below), not rolled all the way back to
	// empty the way a naive recursive undo would leave it.
	Complete bool
}

// Solve runs the backtracking driver: for each slot in order, try its
// scored candidate kinds in turn, recursing on success and undoing on dead
// ends. It imposes no node limit; ctx is checked between slot expansions
// so a caller-side timeout can abort the search without the orchestrator
// persisting a partial result — abort and natural exhaustion are
// different outcomes.
func Solve(ctx context.Context, draft *model.Draft, rctx *validator.Context, staff []*model.Staff, slots []Slot, rng *rand.Rand) (SolveResult, error) {
	tracker := &bestTracker{draft: draft}
	ok, err := solveFrom(ctx, draft, rctx, staff, slots, 0, rng, tracker)
	if err != nil {
		return SolveResult{}, err
	}
	if !ok {
		tracker.restoreBest()
	}
	return SolveResult{Complete: ok}, nil
}

func solveFrom(ctx context.Context, draft *model.Draft, rctx *validator.Context, staff []*model.Staff, slots []Slot, at int, rng *rand.Rand, tracker *bestTracker) (bool, error) {
	if at == len(slots) {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	slot := slots[at]
	s := staff[slot.StaffIdx]

	for _, kind := range ScoredCandidates(draft, rctx, slot.StaffIdx, slot.DayIdx, s, rng) {
		draft.Set(slot.StaffIdx, slot.DayIdx, kind)
		tracker.noteDepth(at + 1)

		ok, err := solveFrom(ctx, draft, rctx, staff, slots, at+1, rng, tracker)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		draft.Clear(slot.StaffIdx, slot.DayIdx)
	}
	return false, nil
}

// bestTracker remembers the deepest slot-fill snapshot reached during the
// search so a failed search can still leave behind a meaningful partial
// draft instead of the fully-unwound empty one backtracking would
// otherwise produce.
type bestTracker struct {
	draft    *model.Draft
	depth    int
	snapshot [][]model.ShiftKind
}

func (t *bestTracker) noteDepth(depth int) {
	if depth <= t.depth && t.snapshot != nil {
		return
	}
	t.depth = depth
	t.snapshot = t.draft.Snapshot()
}

func (t *bestTracker) restoreBest() {
	if t.snapshot != nil {
		t.draft.Restore(t.snapshot)
	}
}
