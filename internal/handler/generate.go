// Package handler provides the HTTP request handlers for the roster API.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	fieldvalidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carefac/roster/internal/metrics"
	"github.com/carefac/roster/internal/repository"
	apperrors "github.com/carefac/roster/pkg/errors"
	"github.com/carefac/roster/pkg/logger"
	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/roster"
	"github.com/carefac/roster/pkg/validator"
)

// GenerateHandler serves the roster generation endpoint: it loads the
// current staff pool, runs the orchestrator for one month, and persists
// the result.
type GenerateHandler struct {
	staffRepo    *repository.StaffRepository
	shiftRepo    *repository.ShiftRepository
	defaultSeed  int64
	rosterLogger *logger.RosterLogger
	validate     *fieldvalidator.Validate
}

func NewGenerateHandler(staffRepo *repository.StaffRepository, shiftRepo *repository.ShiftRepository, defaultSeed int64) *GenerateHandler {
	return &GenerateHandler{
		staffRepo:    staffRepo,
		shiftRepo:    shiftRepo,
		defaultSeed:  defaultSeed,
		rosterLogger: logger.NewRosterLogger(),
		validate:     fieldvalidator.New(),
	}
}

// GenerateRequest is the body of POST /api/v1/schedule/generate.
type GenerateRequest struct {
	Year             int                    `json:"year" validate:"required,min=2000,max=2100"`
	Month            int                    `json:"month" validate:"required,min=1,max=12"`
	TargetHolidays   int                    `json:"targetHolidays" validate:"min=0"`
	RequiredStaffing model.RequiredStaffing `json:"required_staffing,omitempty"`
	Seed             int64                  `json:"seed,omitempty"`
}

// GenerateResponse is the body of a successful generate call.
type GenerateResponse struct {
	Message         string         `json:"message"`
	Year            int            `json:"year"`
	Month           int            `json:"month"`
	GeneratedShifts []*model.Shift `json:"generated_shifts"`
}

// Generate handles POST /api/v1/schedule/generate.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "request failed validation"))
		return
	}

	spec := model.JobSpec{
		Year:             req.Year,
		Month:            req.Month,
		TargetHolidays:   req.TargetHolidays,
		RequiredStaffing: req.RequiredStaffing,
	}

	seed := h.defaultSeed
	if req.Seed != 0 {
		seed = req.Seed
	}

	h.rosterLogger.StartGenerate(spec.Year, spec.Month, 0)
	start := time.Now()

	result, err := roster.Generate(r.Context(), h.staffRepo, h.shiftRepo, spec, seed)
	duration := time.Since(start)

	if err != nil {
		status := "cancelled"
		if err != roster.ErrCancelled {
			status = "error"
		}
		metrics.RecordGeneration(status, duration)
		if err == roster.ErrCancelled {
			writeAppError(w, apperrors.Wrap(err, apperrors.CodeTimeout, "generation was cancelled before it could be persisted"))
			return
		}
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "generation failed"))
		return
	}

	metrics.RecordGeneration(result.Status, duration)
	h.rosterLogger.GenerateComplete(spec.Year, spec.Month, result.Status, duration)

	writeJSON(w, http.StatusOK, GenerateResponse{
		Message:         result.Status,
		Year:            spec.Year,
		Month:           spec.Month,
		GeneratedShifts: result.Shifts,
	})
}

// ValidateRequest is the body of POST /api/v1/schedule/validate: a single
// candidate assignment checked against the hard rules, for callers that
// want to probe a specific cell before committing a manual edit.
type ValidateRequest struct {
	Year           int             `json:"year" validate:"required"`
	Month          int             `json:"month" validate:"required"`
	TargetHolidays int             `json:"targetHolidays"`
	Day            int             `json:"day" validate:"required,min=1"`
	ShiftKind      string          `json:"shift_kind" validate:"required"`
	StaffID        string          `json:"staff_id" validate:"required,uuid"`
}

// ValidateResponse reports whether the candidate cell satisfies every hard
// rule given the staffing already on file for the month.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// Validate handles POST /api/v1/schedule/validate: it rebuilds a draft from
// whatever is currently persisted for the month and checks one candidate
// cell against the same eight hard rules Generate's search obeys.
func (h *GenerateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "request failed validation"))
		return
	}

	kind, err := model.ParseShiftKind(req.ShiftKind)
	if err != nil {
		writeAppError(w, apperrors.InvalidInput("shift_kind", err.Error()))
		return
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		writeAppError(w, apperrors.InvalidInput("staff_id", "must be a UUID"))
		return
	}

	staffList, err := h.staffRepo.ListStaff(r.Context())
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load staff"))
		return
	}

	spec := model.JobSpec{Year: req.Year, Month: req.Month}
	monthDays := spec.MonthDays()
	draft := model.NewDraft(staffList, monthDays)

	monthStart := spec.DateOf(1).Format("2006-01-02")
	monthEnd := spec.DateOf(monthDays).Format("2006-01-02")
	existing, _, err := h.shiftRepo.List(r.Context(), repository.ListFilter{
		StartDate: monthStart, EndDate: monthEnd, Limit: 100000,
	})
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load existing shifts"))
		return
	}
	for _, sh := range existing {
		idx := draft.StaffIndexOf(sh.StaffID)
		if idx == -1 {
			continue
		}
		draft.Set(idx, model.DayIndex(sh.Date.Day()), sh.ShiftKind)
	}

	staffIdx := draft.StaffIndexOf(staffID)
	if staffIdx == -1 {
		writeAppError(w, apperrors.NotFound("staff", req.StaffID))
		return
	}

	rctx := validator.NewContext(spec.Year, spec.Month, monthDays, nil, req.TargetHolidays)
	var target *model.Staff
	for _, s := range staffList {
		if s.ID == staffID {
			target = s
			break
		}
	}

	valid := validator.Valid(draft, rctx, staffIdx, model.DayIndex(req.Day), kind, target)
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: valid})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeAppError(w http.ResponseWriter, err *apperrors.AppError) {
	logger.WithError(err).Msg("request failed")
	writeJSON(w, err.HTTPStatus, err)
}
