// Package e2e exercises a full month's generation against an in-memory
// staff source and shift store: no database, no HTTP server, just the
// orchestrator and its downstream fairness/coverage analysis wired
// together the way a caller's request/response cycle would.
package e2e

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/roster"
	"github.com/carefac/roster/pkg/stats"
)

type memStaffSource struct{ staff []*model.Staff }

func (m *memStaffSource) ListStaff(ctx context.Context) ([]*model.Staff, error) {
	return m.staff, nil
}

type memShiftStore struct{ stored []*model.Shift }

func (m *memShiftStore) PriorMonthTail(ctx context.Context, year, month int, staffIDs []uuid.UUID) (map[uuid.UUID]roster.PriorTail, error) {
	return nil, nil
}

func (m *memShiftStore) ReplaceMonth(ctx context.Context, year, month int, shifts []*model.Shift) error {
	m.stored = shifts
	return nil
}

func buildCrew(n int) []*model.Staff {
	types := []model.EmploymentType{model.Regular, model.Contract, model.PartTime}
	crew := make([]*model.Staff, n)
	for i := range crew {
		crew[i] = &model.Staff{
			BaseModel:      model.BaseModel{ID: uuid.New()},
			Name:           "staff",
			EmploymentType: types[i%len(types)],
			Experience:     model.ExperienceRegular,
		}
	}
	return crew
}

// TestFullGenerationWorkflow runs a month through Generate, persists it to
// an in-memory store, then feeds the result through both downstream
// analyzers the way the stats endpoints do for a caller.
func TestFullGenerationWorkflow(t *testing.T) {
	crew := buildCrew(8)
	source := &memStaffSource{staff: crew}
	store := &memShiftStore{}
	spec := model.JobSpec{Year: 2026, Month: 3, TargetHolidays: 8}

	result, err := roster.Generate(context.Background(), source, store, spec, 42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Status != roster.StatusComplete {
		t.Fatalf("status = %q, want %q", result.Status, roster.StatusComplete)
	}
	if len(store.stored) == 0 {
		t.Fatal("generated month was never persisted")
	}

	fairness := stats.NewFairnessAnalyzer().Analyze(store.stored, crew)
	if fairness.OverallFairnessScore < 0 || fairness.OverallFairnessScore > 100 {
		t.Errorf("fairness score out of range: %f", fairness.OverallFairnessScore)
	}

	coverage := stats.NewCoverageAnalyzer().Analyze(store.stored, spec)
	if coverage == nil {
		t.Fatal("coverage analysis returned nil")
	}
	report := stats.NewCoverageAnalyzer().GenerateReport(coverage)
	if report == "" {
		t.Error("expected a non-empty coverage report")
	}

	monthDays := spec.MonthDays()
	perStaffDays := make(map[uuid.UUID]map[int]bool)
	for _, sh := range result.Shifts {
		if sh.Date.Day() < 1 || sh.Date.Day() > monthDays {
			t.Errorf("shift %+v falls outside the target month", sh)
		}
		if perStaffDays[sh.StaffID] == nil {
			perStaffDays[sh.StaffID] = make(map[int]bool)
		}
		if perStaffDays[sh.StaffID][sh.Date.Day()] {
			t.Errorf("staff %s double-booked on day %d", sh.StaffID, sh.Date.Day())
		}
		perStaffDays[sh.StaffID][sh.Date.Day()] = true
	}
	for _, s := range crew {
		if len(perStaffDays[s.ID]) != monthDays {
			t.Errorf("staff %s has %d assigned days, want %d", s.ID, len(perStaffDays[s.ID]), monthDays)
		}
	}
}

// TestFullGenerationWorkflow_RespectsNightQualification confirms that
// Generate does not error for a crew with no night-qualified staff and
// assigns none of them a night shift.
func TestFullGenerationWorkflow_RespectsNightQualification(t *testing.T) {
	crew := make([]*model.Staff, 6)
	for i := range crew {
		crew[i] = &model.Staff{
			BaseModel:      model.BaseModel{ID: uuid.New()},
			Name:           "staff",
			EmploymentType: model.PartTime,
			Experience:     model.ExperienceRegular,
		}
	}
	source := &memStaffSource{staff: crew}
	store := &memShiftStore{}
	spec := model.JobSpec{Year: 2026, Month: 4, TargetHolidays: 8}

	result, err := roster.Generate(context.Background(), source, store, spec, 7)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, sh := range result.Shifts {
		if sh.ShiftKind == model.Night {
			t.Errorf("shift %+v assigns night work to a non-night-qualified crew", sh)
		}
	}
}
