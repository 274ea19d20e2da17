package stats

import (
	"testing"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
)

func newStaff(name string) *model.Staff {
	return &model.Staff{
		BaseModel:      model.BaseModel{ID: uuid.New()},
		Name:           name,
		EmploymentType: model.Regular,
		Experience:     model.ExperienceRegular,
	}
}

func shiftFor(staffID uuid.UUID, day int, kind model.ShiftKind) *model.Shift {
	return &model.Shift{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Date:      model.JobSpec{Year: 2026, Month: 1}.DateOf(day),
		ShiftKind: kind,
		StaffID:   staffID,
	}
}

func TestFairnessAnalyzer_Analyze(t *testing.T) {
	alice := newStaff("alice")
	bob := newStaff("bob")
	staff := []*model.Staff{alice, bob}

	shifts := []*model.Shift{
		shiftFor(alice.ID, 1, model.Day1),
		shiftFor(alice.ID, 2, model.Day1),
		shiftFor(bob.ID, 1, model.Day1),
	}

	metrics := NewFairnessAnalyzer().Analyze(shifts, staff)

	if metrics == nil {
		t.Fatal("metrics should not be nil")
	}
	if metrics.HoursGini < 0 || metrics.HoursGini > 1 {
		t.Errorf("hours gini out of range: %f", metrics.HoursGini)
	}
	if len(metrics.StaffStats) != 2 {
		t.Errorf("expected 2 staff stats, got %d", len(metrics.StaffStats))
	}
	if metrics.MaxHours != 16 || metrics.MinHours != 8 {
		t.Errorf("expected max=16 min=8, got max=%f min=%f", metrics.MaxHours, metrics.MinHours)
	}
}

func TestFairnessAnalyzer_EmptyInput(t *testing.T) {
	metrics := NewFairnessAnalyzer().Analyze(nil, nil)
	if metrics == nil {
		t.Fatal("metrics should not be nil")
	}
	if metrics.OverallFairnessScore != 100 {
		t.Errorf("expected perfect score with no data, got %f", metrics.OverallFairnessScore)
	}
}

func TestFairnessAnalyzer_PerfectFairness(t *testing.T) {
	alice := newStaff("alice")
	bob := newStaff("bob")
	staff := []*model.Staff{alice, bob}

	shifts := []*model.Shift{
		shiftFor(alice.ID, 1, model.Day1),
		shiftFor(bob.ID, 1, model.Day1),
	}

	metrics := NewFairnessAnalyzer().Analyze(shifts, staff)
	if metrics.HoursGini > 0.01 {
		t.Errorf("identical hours should give gini near 0, got %f", metrics.HoursGini)
	}
}

func TestFairnessAnalyzer_NightAndHolidayGini(t *testing.T) {
	alice := newStaff("alice")
	bob := newStaff("bob")
	staff := []*model.Staff{alice, bob}

	shifts := []*model.Shift{
		shiftFor(alice.ID, 1, model.Night),
		shiftFor(alice.ID, 4, model.Night),
		shiftFor(bob.ID, 7, model.Day1),
		shiftFor(bob.ID, 8, model.Holiday),
	}

	metrics := NewFairnessAnalyzer().Analyze(shifts, staff)

	if metrics.NightShiftGini == 0 {
		t.Error("all night shifts going to one staff member should produce nonzero night gini")
	}
	for _, s := range metrics.StaffStats {
		if s.StaffName == "" {
			t.Error("staff stat missing name, name lookup by ID failed")
		}
	}
	if metrics.OverallFairnessScore < 0 || metrics.OverallFairnessScore > 100 {
		t.Errorf("score should be 0-100, got %f", metrics.OverallFairnessScore)
	}
}
