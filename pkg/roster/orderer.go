package roster

import (
	"sort"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/validator"
)

// Slot is one unassigned (staff, day) cell the backtracking search must
// eventually fill.
type Slot struct {
	StaffIdx int
	DayIdx   int
}

// OrderSlots enumerates every unassigned target-month cell and sorts it by
// the minimum-remaining-values heuristic: cells with fewer currently-valid
// candidate kinds come first, since they are the most likely to become
// infeasible if left for later. The order is computed once,
// before the search starts; ties break deterministically by day then
// staff index so a fixed seed reproduces a fixed search order.
func OrderSlots(draft *model.Draft, ctx *validator.Context, staff []*model.Staff) []Slot {
	lastDayIdx := model.DayIndex(ctx.MonthDays)
	firstDayIdx := model.DayIndex(1)

	type scored struct {
		slot  Slot
		viable int
	}
	var all []scored
	for dayIdx := firstDayIdx; dayIdx <= lastDayIdx; dayIdx++ {
		for idx, s := range staff {
			if draft.Get(idx, dayIdx) != model.Unassigned {
				continue
			}
			all = append(all, scored{
				slot:   Slot{StaffIdx: idx, DayIdx: dayIdx},
				viable: countViable(draft, ctx, idx, dayIdx, s),
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].viable != all[j].viable {
			return all[i].viable < all[j].viable
		}
		if all[i].slot.DayIdx != all[j].slot.DayIdx {
			return all[i].slot.DayIdx < all[j].slot.DayIdx
		}
		return all[i].slot.StaffIdx < all[j].slot.StaffIdx
	})

	out := make([]Slot, len(all))
	for i, s := range all {
		out[i] = s.slot
	}
	return out
}

func countViable(draft *model.Draft, ctx *validator.Context, idx, dayIdx int, s *model.Staff) int {
	n := 0
	for _, kind := range model.AllShiftKinds {
		if validator.Valid(draft, ctx, idx, dayIdx, kind, s) {
			n++
		}
	}
	return n
}
