// Package integration exercises the generate/validate round trip through
// the same packages the HTTP handlers call, without standing up a real
// database or server: a generated month must validate clean against the
// same rule set it was built under.
package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/roster"
	"github.com/carefac/roster/pkg/validator"
)

type staffSource struct{ staff []*model.Staff }

func (s *staffSource) ListStaff(ctx context.Context) ([]*model.Staff, error) { return s.staff, nil }

type shiftStore struct{ stored []*model.Shift }

func (s *shiftStore) PriorMonthTail(ctx context.Context, year, month int, staffIDs []uuid.UUID) (map[uuid.UUID]roster.PriorTail, error) {
	return nil, nil
}

func (s *shiftStore) ReplaceMonth(ctx context.Context, year, month int, shifts []*model.Shift) error {
	s.stored = shifts
	return nil
}

func crewOf(n int) []*model.Staff {
	crew := make([]*model.Staff, n)
	for i := range crew {
		crew[i] = &model.Staff{
			BaseModel:      model.BaseModel{ID: uuid.New()},
			Name:           "staff",
			EmploymentType: model.Regular,
			Experience:     model.ExperienceRegular,
		}
	}
	return crew
}

// TestGeneratedMonthValidatesAgainstItsOwnRules replays a generated month
// back onto a fresh draft, cell by cell, confirming every assignment the
// solver made still passes the hard-rule gate the /schedule/validate
// endpoint calls for a single cell.
func TestGeneratedMonthValidatesAgainstItsOwnRules(t *testing.T) {
	crew := crewOf(5)
	source := &staffSource{staff: crew}
	store := &shiftStore{}
	spec := model.JobSpec{Year: 2026, Month: 5, TargetHolidays: 8}

	result, err := roster.Generate(context.Background(), source, store, spec, 99)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	monthDays := spec.MonthDays()
	draft := model.NewDraft(crew, monthDays)
	rctx := validator.NewContext(spec.Year, spec.Month, monthDays, spec.RequiredStaffing, spec.TargetHolidays)

	byStaff := make(map[uuid.UUID]*model.Staff, len(crew))
	for _, s := range crew {
		byStaff[s.ID] = s
	}

	for _, sh := range result.Shifts {
		staffIdx := draft.StaffIndexOf(sh.StaffID)
		if staffIdx < 0 {
			t.Fatalf("shift references unknown staff %s", sh.StaffID)
		}
		dayIdx := model.DayIndex(sh.Date.Day())
		if !validator.Valid(draft, rctx, staffIdx, dayIdx, sh.ShiftKind, byStaff[sh.StaffID]) {
			t.Errorf("generated assignment staff=%s day=%d kind=%s fails its own validator",
				sh.StaffID, sh.Date.Day(), sh.ShiftKind)
		}
		draft.Set(staffIdx, dayIdx, sh.ShiftKind)
	}
}

// TestValidateRejectsASecondNightInARow confirms the validator a caller's
// single-cell /schedule/validate request drives rejects an obviously
// illegal assignment: a night shift the day after another night shift.
func TestValidateRejectsASecondNightInARow(t *testing.T) {
	crew := crewOf(1)
	monthDays := 28
	draft := model.NewDraft(crew, monthDays)
	draft.Set(0, model.DayIndex(1), model.Night)

	rctx := validator.NewContext(2026, 2, monthDays, nil, 8)

	if validator.Valid(draft, rctx, 0, model.DayIndex(2), model.Night, crew[0]) {
		t.Error("a second consecutive night shift should never validate")
	}
}
