// Package roster implements the shift-rostering pipeline: night-triple
// pre-assignment, slot ordering, value scoring, and the backtracking
// search that ties them together.
package roster

import (
	"math/rand"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/validator"
)

// SeedPriorNightTail copies the forced consequences of the previous
// month's last two days into the target month, before any other
// assignment happens. If the last day of the prior month was a night
// shift, the first day of the target month must be "after" and the second
// must be "holiday"; if the second-to-last day was night and the last day
// was after, only the first target-month day is forced to holiday.
func SeedPriorNightTail(draft *model.Draft, staff []*model.Staff) {
	for idx := range staff {
		last := draft.Get(idx, model.TailIndex(1))
		secondLast := draft.Get(idx, model.TailIndex(2))

		if last == model.Night {
			draft.Set(idx, model.DayIndex(1), model.After)
			draft.Set(idx, model.DayIndex(2), model.Holiday)
			continue
		}
		if secondLast == model.Night && last == model.After {
			draft.Set(idx, model.DayIndex(1), model.Holiday)
		}
	}
}

// NightTripleResult reports how many night shifts the pre-assigner managed
// to place against how many the staffing requirement called for.
type NightTripleResult struct {
	Target   int
	Assigned int
}

// Complete reports whether the pre-assigner placed every required night.
func (r NightTripleResult) Complete() bool { return r.Assigned >= r.Target }

// AssignNightTriples greedily pre-assigns night/after/holiday triples
// before the backtracking search begins. It never backtracks:
// once a triple is written it stands, and if no night-qualified staff has
// a feasible triple left the loop stops and reports a partial result for
// the backtracking search to fill in around, or to fail to reconcile.
func AssignNightTriples(draft *model.Draft, ctx *validator.Context, staff []*model.Staff, rng *rand.Rand) NightTripleResult {
	target := 0
	for d := 1; d <= ctx.MonthDays; d++ {
		target += ctx.Required.NeedFor(ctx.DateString(model.DayIndex(d)), model.Night)
	}

	assigned := totalNights(draft, len(staff))
	lastDayIdx := model.DayIndex(ctx.MonthDays)

	for assigned < target {
		candidates := make(map[int][]int)
		for idx, s := range staff {
			if !s.NightQualified() {
				continue
			}
			var starts []int
			for d := model.DayIndex(1); d+2 <= lastDayIdx; d++ {
				if tripleFits(draft, ctx, idx, d, s) {
					starts = append(starts, d)
				}
			}
			if len(starts) > 0 {
				candidates[idx] = starts
			}
		}
		if len(candidates) == 0 {
			break
		}

		chosenIdx := mostConstrainedStaff(candidates)
		starts := candidates[chosenIdx]
		start := starts[rng.Intn(len(starts))]

		draft.Set(chosenIdx, start, model.Night)
		draft.Set(chosenIdx, start+1, model.After)
		draft.Set(chosenIdx, start+2, model.Holiday)
		assigned++
	}

	return NightTripleResult{Target: target, Assigned: assigned}
}

// tripleFits checks, without leaving any trace in the draft, whether
// placing night/after/holiday starting at dayIdx is simultaneously valid.
func tripleFits(draft *model.Draft, ctx *validator.Context, idx, dayIdx int, s *model.Staff) bool {
	if !validator.Valid(draft, ctx, idx, dayIdx, model.Night, s) {
		return false
	}
	draft.Set(idx, dayIdx, model.Night)
	defer draft.Clear(idx, dayIdx)

	if !validator.Valid(draft, ctx, idx, dayIdx+1, model.After, s) {
		return false
	}
	draft.Set(idx, dayIdx+1, model.After)
	defer draft.Clear(idx, dayIdx+1)

	return validator.Valid(draft, ctx, idx, dayIdx+2, model.Holiday, s)
}

// mostConstrainedStaff picks the staff index with the fewest candidate
// start dates, breaking ties by the smaller staff index for determinism.
func mostConstrainedStaff(candidates map[int][]int) int {
	best := -1
	for idx, starts := range candidates {
		if best == -1 || len(starts) < len(candidates[best]) || (len(starts) == len(candidates[best]) && idx < best) {
			best = idx
		}
	}
	return best
}

func totalNights(draft *model.Draft, staffCount int) int {
	n := 0
	for i := 0; i < staffCount; i++ {
		n += draft.NightCount(i)
	}
	return n
}
