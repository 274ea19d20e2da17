package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carefac/roster/internal/database"
	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/roster"
)

// ShiftRepository is the data access layer for a month's shift assignments.
// It implements roster.ShiftStore.
type ShiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(ctx context.Context, s *model.Shift) error {
	if s.ID == uuid.Nil {
		s.BaseModel = model.NewBaseModel()
	}
	query := `
		INSERT INTO shifts (id, date, shift_kind, notes, staff_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Date, s.ShiftKind.String(), s.Notes, s.StaffID, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

func (r *ShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	query := `
		SELECT s.id, s.date, s.shift_kind, s.notes, s.staff_id, st.name, s.created_at
		FROM shifts s JOIN staff st ON st.id = s.staff_id
		WHERE s.id = $1
	`
	return r.scanShift(r.db.QueryRowContext(ctx, query, id))
}

func (r *ShiftRepository) Update(ctx context.Context, s *model.Shift) error {
	query := `UPDATE shifts SET date = $2, shift_kind = $3, notes = $4, staff_id = $5 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, s.ID, s.Date, s.ShiftKind.String(), s.Notes, s.StaffID)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("shift %s not found", s.ID)
	}
	return nil
}

func (r *ShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("shift %s not found", id)
	}
	return nil
}

func (r *ShiftRepository) List(ctx context.Context, filter ListFilter) ([]*model.Shift, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("s.date >= $%d", argIndex))
		args = append(args, filter.StartDate)
		argIndex++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("s.date <= $%d", argIndex))
		args = append(args, filter.EndDate)
		argIndex++
	}

	where := "1=1"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM shifts s WHERE %s", where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shifts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.date, s.shift_kind, s.notes, s.staff_id, st.name, s.created_at
		FROM shifts s JOIN staff st ON st.id = s.staff_id
		WHERE %s
		ORDER BY s.date, st.name
		LIMIT $%d OFFSET $%d
	`, where, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var out []*model.Shift
	for rows.Next() {
		sh, err := r.scanShiftRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, sh)
	}
	return out, total, nil
}

// PriorMonthTail implements roster.ShiftStore: the last two calendar days
// before (year, month) for each staff ID, read-only context the draft seeds
// its tail cells from.
func (r *ShiftRepository) PriorMonthTail(ctx context.Context, year, month int, staffIDs []uuid.UUID) (map[uuid.UUID]roster.PriorTail, error) {
	out := make(map[uuid.UUID]roster.PriorTail, len(staffIDs))
	if len(staffIDs) == 0 {
		return out, nil
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	twoBefore := monthStart.AddDate(0, 0, -2).Format("2006-01-02")
	oneBefore := monthStart.AddDate(0, 0, -1).Format("2006-01-02")

	placeholders := make([]string, len(staffIDs))
	args := make([]interface{}, 0, len(staffIDs)+2)
	args = append(args, twoBefore, oneBefore)
	for i, id := range staffIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT staff_id, date, shift_kind
		FROM shifts
		WHERE date IN ($1, $2) AND staff_id IN (%s)
	`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load prior-month tail: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID uuid.UUID
		var date, token string
		if err := rows.Scan(&staffID, &date, &token); err != nil {
			return nil, fmt.Errorf("scan prior-month tail: %w", err)
		}
		kind, err := model.ParseShiftKind(token)
		if err != nil {
			return nil, err
		}
		tail := out[staffID]
		if date == twoBefore {
			tail.TwoDaysBefore = kind
		} else {
			tail.OneDayBefore = kind
		}
		out[staffID] = tail
	}
	return out, rows.Err()
}

// ReplaceMonth implements roster.ShiftStore: atomically swaps out every
// shift row in [year, month] for shifts, holding an exclusive advisory lock
// on the month for the duration of the transaction.
func (r *ShiftRepository) ReplaceMonth(ctx context.Context, year, month int, shifts []*model.Shift) error {
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := database.LockMonth(ctx, tx, year, month); err != nil {
			return fmt.Errorf("lock month: %w", err)
		}

		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)

		_, err := tx.ExecContext(ctx, `DELETE FROM shifts WHERE date >= $1 AND date < $2`,
			monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02"))
		if err != nil {
			return fmt.Errorf("clear month: %w", err)
		}

		for _, s := range shifts {
			if s.ID == uuid.Nil {
				s.BaseModel = model.NewBaseModel()
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO shifts (id, date, shift_kind, notes, staff_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, s.ID, s.Date.Format("2006-01-02"), s.ShiftKind.String(), s.Notes, s.StaffID, s.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert shift: %w", err)
			}
		}
		return nil
	})
}

func (r *ShiftRepository) scanShift(row *sql.Row) (*model.Shift, error) {
	var s model.Shift
	var dateStr, token string
	err := row.Scan(&s.ID, &dateStr, &token, &s.Notes, &s.StaffID, &s.StaffName, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan shift: %w", err)
	}
	return finishShiftScan(&s, dateStr, token)
}

func (r *ShiftRepository) scanShiftRow(rows *sql.Rows) (*model.Shift, error) {
	var s model.Shift
	var dateStr, token string
	if err := rows.Scan(&s.ID, &dateStr, &token, &s.Notes, &s.StaffID, &s.StaffName, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan shift: %w", err)
	}
	return finishShiftScan(&s, dateStr, token)
}

func finishShiftScan(s *model.Shift, dateStr, token string) (*model.Shift, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("parse shift date: %w", err)
	}
	kind, err := model.ParseShiftKind(token)
	if err != nil {
		return nil, err
	}
	s.Date = date
	s.ShiftKind = kind
	return s, nil
}
