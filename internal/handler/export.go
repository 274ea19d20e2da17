package handler

import (
	"fmt"
	"net/http"

	"github.com/qax-os/excelize/v2"

	"github.com/carefac/roster/internal/repository"
	apperrors "github.com/carefac/roster/pkg/errors"
	"github.com/carefac/roster/pkg/model"
)

// ExportHandler renders a generated month as a spreadsheet grid: one row
// per staff member, one column per calendar day, the kanji shift token in
// each cell — the deliverable an operator hands to a shift supervisor who
// isn't going to read JSON.
type ExportHandler struct {
	staffRepo *repository.StaffRepository
	shiftRepo *repository.ShiftRepository
}

func NewExportHandler(staffRepo *repository.StaffRepository, shiftRepo *repository.ShiftRepository) *ExportHandler {
	return &ExportHandler{staffRepo: staffRepo, shiftRepo: shiftRepo}
}

// Export handles GET /api/v1/roster/{year}/{month}/export.xlsx.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}

	var year, month int
	if _, err := fmt.Sscanf(r.PathValue("year"), "%d", &year); err != nil {
		writeAppError(w, apperrors.InvalidInput("year", "must be an integer"))
		return
	}
	if _, err := fmt.Sscanf(r.PathValue("month"), "%d", &month); err != nil || month < 1 || month > 12 {
		writeAppError(w, apperrors.InvalidInput("month", "must be between 1 and 12"))
		return
	}
	spec := model.JobSpec{Year: year, Month: month}
	monthDays := spec.MonthDays()

	staff, err := h.staffRepo.ListStaff(r.Context())
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load staff"))
		return
	}
	shifts, _, err := h.shiftRepo.List(r.Context(), repository.ListFilter{
		StartDate: spec.DateOf(1).Format("2006-01-02"),
		EndDate:   spec.DateOf(monthDays).Format("2006-01-02"),
		Limit:     100000,
	})
	if err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load shifts"))
		return
	}

	byStaffDay := make(map[string]model.ShiftKind, len(shifts))
	for _, sh := range shifts {
		byStaffDay[fmt.Sprintf("%s:%d", sh.StaffID, sh.Date.Day())] = sh.ShiftKind
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Roster"
	f.SetSheetName(f.GetSheetName(0), sheet)

	f.SetCellValue(sheet, "A1", "Staff")
	for d := 1; d <= monthDays; d++ {
		col, _ := excelize.ColumnNumberToName(d + 1)
		f.SetCellValue(sheet, fmt.Sprintf("%s1", col), d)
	}

	for row, s := range staff {
		rowNum := row + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), s.Name)
		for d := 1; d <= monthDays; d++ {
			kind, ok := byStaffDay[fmt.Sprintf("%s:%d", s.ID, d)]
			if !ok {
				continue
			}
			col, _ := excelize.ColumnNumberToName(d + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowNum), kind.String())
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=roster-%04d-%02d.xlsx", year, month))
	if err := f.Write(w); err != nil {
		writeAppError(w, apperrors.Wrap(err, apperrors.CodeInternal, "failed to render spreadsheet"))
		return
	}
}
