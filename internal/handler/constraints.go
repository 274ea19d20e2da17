package handler

import (
	"net/http"

	"github.com/carefac/roster/internal/constraints"
	apperrors "github.com/carefac/roster/pkg/errors"
)

// ConstraintsLibrary handles GET /api/v1/constraints/library: a static
// catalog of the validator's eight hard rules, for a caller that wants to
// render them rather than read the source.
func ConstraintsLibrary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, constraints.LibraryResponse{Rules: constraints.GetLibrary()})
}
