package handler

import (
	"net/http"
	"strconv"

	"github.com/carefac/roster/internal/repository"
	apperrors "github.com/carefac/roster/pkg/errors"
	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/stats"
)

// StatsHandler serves the read-only fairness and coverage diagnostics over
// an already-generated month. Neither endpoint feeds back into the
// solver; they only describe what's already persisted.
type StatsHandler struct {
	staffRepo *repository.StaffRepository
	shiftRepo *repository.ShiftRepository
	fairness  *stats.FairnessAnalyzer
	coverage  *stats.CoverageAnalyzer
}

func NewStatsHandler(staffRepo *repository.StaffRepository, shiftRepo *repository.ShiftRepository) *StatsHandler {
	return &StatsHandler{
		staffRepo: staffRepo,
		shiftRepo: shiftRepo,
		fairness:  stats.NewFairnessAnalyzer(),
		coverage:  stats.NewCoverageAnalyzer(),
	}
}

func parseYearMonth(r *http.Request) (model.JobSpec, bool) {
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		return model.JobSpec{}, false
	}
	return model.JobSpec{Year: year, Month: month}, true
}

func (h *StatsHandler) loadMonth(r *http.Request, spec model.JobSpec) ([]*model.Staff, []*model.Shift, error) {
	staff, err := h.staffRepo.ListStaff(r.Context())
	if err != nil {
		return nil, nil, err
	}
	monthDays := spec.MonthDays()
	shifts, _, err := h.shiftRepo.List(r.Context(), repository.ListFilter{
		StartDate: spec.DateOf(1).Format("2006-01-02"),
		EndDate:   spec.DateOf(monthDays).Format("2006-01-02"),
		Limit:     100000,
	})
	if err != nil {
		return nil, nil, err
	}
	return staff, shifts, nil
}

// Fairness handles GET /api/v1/stats/fairness?year=&month=.
func (h *StatsHandler) Fairness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	spec, ok := parseYearMonth(r)
	if !ok {
		writeAppError(w, apperrors.InvalidInput("year/month", "both required, month must be 1-12"))
		return
	}
	staff, shifts, err := h.loadMonth(r, spec)
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load month"))
		return
	}
	writeJSON(w, http.StatusOK, h.fairness.Analyze(shifts, staff))
}

// Coverage handles GET /api/v1/stats/coverage?year=&month=.
func (h *StatsHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	spec, ok := parseYearMonth(r)
	if !ok {
		writeAppError(w, apperrors.InvalidInput("year/month", "both required, month must be 1-12"))
		return
	}
	_, shifts, err := h.loadMonth(r, spec)
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load month"))
		return
	}
	writeJSON(w, http.StatusOK, h.coverage.Analyze(shifts, spec))
}
