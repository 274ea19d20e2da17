package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/carefac/roster/internal/repository"
	apperrors "github.com/carefac/roster/pkg/errors"
	"github.com/carefac/roster/pkg/model"
)

// StaffHandler serves the staff CRUD and availability-exception endpoints.
type StaffHandler struct {
	repo *repository.StaffRepository
}

func NewStaffHandler(repo *repository.StaffRepository) *StaffHandler {
	return &StaffHandler{repo: repo}
}

// List handles GET /api/v1/staff.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	filter := repository.DefaultListFilter()
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset >= 0 {
		filter.Offset = offset
	}
	filter.Search = r.URL.Query().Get("search")

	staff, total, err := h.repo.List(r.Context(), filter)
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list staff"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"staff": staff, "total": total})
}

// Create handles POST /api/v1/staff.
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	var s model.Staff
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}
	if s.Name == "" {
		writeAppError(w, apperrors.InvalidInput("name", "required"))
		return
	}
	if err := h.repo.Create(r.Context(), &s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create staff"))
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// Get handles GET /api/v1/staff/{id}.
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r.PathValue("id"))
	if !ok {
		return
	}
	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load staff"))
		return
	}
	if s == nil {
		writeAppError(w, apperrors.NotFound("staff", id.String()))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update handles PUT /api/v1/staff/{id}.
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r.PathValue("id"))
	if !ok {
		return
	}
	var s model.Staff
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}
	s.ID = id
	if err := h.repo.Update(r.Context(), &s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update staff"))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Delete handles DELETE /api/v1/staff/{id}.
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r.PathValue("id"))
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete staff"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateAvailabilitiesRequest is the body of
// POST /api/v1/staff/availabilities/update/{id}.
type UpdateAvailabilitiesRequest struct {
	Availability []model.AvailabilityEntry `json:"availability"`
}

// UpdateAvailabilities handles POST /api/v1/staff/availabilities/update/{id}:
// it wholesale-replaces one staff member's availability exceptions, the
// same replace-not-merge semantics ReplaceMonth uses for shifts.
func (h *StaffHandler) UpdateAvailabilities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	id, ok := parseUUIDParam(w, r.PathValue("id"))
	if !ok {
		return
	}
	var req UpdateAvailabilitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "malformed request body"))
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load staff"))
		return
	}
	if s == nil {
		writeAppError(w, apperrors.NotFound("staff", id.String()))
		return
	}

	s.Availability = req.Availability
	if err := h.repo.Update(r.Context(), s); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update availability"))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func parseUUIDParam(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeAppError(w, apperrors.InvalidInput("id", "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
