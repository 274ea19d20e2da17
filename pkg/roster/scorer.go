package roster

import (
	"math/rand"
	"sort"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/validator"
)

// shortageWeight is how strongly an understaffed (date, kind) pulls a
// candidate toward the top of the value-ordering list.
const shortageWeight = 100

// fairnessBonus is the weight of each gender/weekday staffing convention
// bonus (the facility's bathing-day staffing pattern), and
// nightFairnessBonus nudges toward staff at or below the average night count.
const fairnessBonus = 5
const nightFairnessBonus = 50

// dayShiftKinds are the "day shift" kinds the bathing-day convention
// refers to, as distinct from early, late, and night.
var dayShiftKinds = map[model.ShiftKind]bool{
	model.Day1:   true,
	model.Day2:   true,
	model.Middle: true,
}

const sunday, monday, tuesday, wednesday, thursday, friday, saturday = 0, 1, 2, 3, 4, 5, 6

// ScoredCandidates returns the valid kinds for (staffIdx, dayIdx), ordered
// for the backtracking search to try first: the base list is
// shuffled, then stable-sorted descending by score, so ties keep the
// random order instead of always favoring enum declaration order. The
// teacher's scorer mixed in unseeded package-level randomness; this one
// takes its randomness from the caller so a fixed seed reproduces a fixed
// search order.
func ScoredCandidates(draft *model.Draft, ctx *validator.Context, idx, dayIdx int, s *model.Staff, rng *rand.Rand) []model.ShiftKind {
	var valid []model.ShiftKind
	for _, kind := range model.AllShiftKinds {
		if validator.Valid(draft, ctx, idx, dayIdx, kind, s) {
			valid = append(valid, kind)
		}
	}
	if len(valid) <= 1 {
		return valid
	}

	rng.Shuffle(len(valid), func(i, j int) { valid[i], valid[j] = valid[j], valid[i] })

	weekday := ctx.Weekday(dayIdx)
	avgNights := averageNights(draft)

	scores := make(map[model.ShiftKind]int, len(valid))
	for _, kind := range valid {
		scores[kind] = score(draft, ctx, dayIdx, weekday, kind, s, avgNights)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return scores[valid[i]] > scores[valid[j]]
	})
	return valid
}

func score(draft *model.Draft, ctx *validator.Context, dayIdx, weekday int, kind model.ShiftKind, s *model.Staff, avgNights float64) int {
	total := 0

	if kind.IsWork() {
		date := ctx.DateString(dayIdx)
		shortage := ctx.Required.NeedFor(date, kind) - draft.DailyKindCount(dayIdx, kind)
		if shortage > 0 {
			total += shortageWeight * shortage
		}
	}

	total += weekdayFairnessBonus(s.Gender, weekday, kind)

	if kind == model.Night {
		date := ctx.DateString(dayIdx)
		required := ctx.Required.NeedFor(date, model.Night)
		filled := draft.DailyKindCount(dayIdx, model.Night)
		staffIdx := draft.StaffIndexOf(s.ID)
		if filled < required && float64(draft.NightCount(staffIdx)) <= avgNights {
			total += nightFairnessBonus
		}
	}

	return total
}

// weekdayFairnessBonus implements the facility's bathing-day staffing
// convention: certain weekdays nudge day-shift (and, for men, early-shift)
// assignment to spread bathing-assistance duty evenly by gender.
func weekdayFairnessBonus(gender model.Gender, weekday int, kind model.ShiftKind) int {
	bonus := 0
	switch gender {
	case model.Male:
		if weekday == monday && dayShiftKinds[kind] {
			bonus += fairnessBonus
		}
		if weekday == tuesday || weekday == friday {
			if kind == model.Early {
				bonus += fairnessBonus
			}
			if dayShiftKinds[kind] {
				bonus += fairnessBonus
			}
		}
	case model.Female:
		if (weekday == monday || weekday == thursday) && dayShiftKinds[kind] {
			bonus += fairnessBonus
		}
	}
	return bonus
}

func averageNights(draft *model.Draft) float64 {
	n := draft.StaffCount()
	if n == 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += draft.NightCount(i)
	}
	return float64(total) / float64(n)
}
