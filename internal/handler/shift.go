package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/carefac/roster/internal/repository"
	apperrors "github.com/carefac/roster/pkg/errors"
	"github.com/carefac/roster/pkg/model"
)

// ShiftHandler serves the persisted-shift CRUD and bulk endpoints.
type ShiftHandler struct {
	repo *repository.ShiftRepository
}

func NewShiftHandler(repo *repository.ShiftRepository) *ShiftHandler {
	return &ShiftHandler{repo: repo}
}

// List handles GET /api/v1/shift-data: every persisted shift in an
// optional [start_date, end_date] window, the read model a caller's UI
// grid renders from.
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	filter := repository.DefaultListFilter().WithDateRange(
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"),
	)
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset >= 0 {
		filter.Offset = offset
	}

	shifts, total, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list shifts"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"shifts": shifts, "total": total})
}

// Create handles POST /api/v1/shifts: a manual, single-cell edit outside a
// full Generate run.
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	var s model.Shift
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}
	if err := h.repo.Create(r.Context(), &s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create shift"))
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// Get handles GET /api/v1/shifts/{id}.
func (h *ShiftHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r.PathValue("id"))
	if !ok {
		return
	}
	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load shift"))
		return
	}
	if s == nil {
		writeAppError(w, apperrors.NotFound("shift", id.String()))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update handles PUT /api/v1/shifts/{id}.
func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r.PathValue("id"))
	if !ok {
		return
	}
	var s model.Shift
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}
	s.ID = id
	if err := h.repo.Update(r.Context(), &s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update shift"))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Delete handles DELETE /api/v1/shifts/{id}.
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r.PathValue("id"))
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete shift"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearRequest is the body of POST /api/v1/shifts/clear.
type ClearRequest struct {
	Year  int `json:"year" validate:"required"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

// Clear handles POST /api/v1/shifts/clear: wipes a month back to empty by
// replacing it with zero shifts, going through the same advisory-locked
// ReplaceMonth path Generate uses so a clear can never race a generate for
// the same month.
func (h *ShiftHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	var req ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeAppError(w, apperrors.InvalidInput("month", "must be between 1 and 12"))
		return
	}
	if err := h.repo.ReplaceMonth(r.Context(), req.Year, req.Month, nil); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to clear month"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
