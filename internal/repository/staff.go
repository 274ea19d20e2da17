package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carefac/roster/pkg/model"
)

// StaffRepository is the data access layer for staff and their weekly
// availability exceptions. It implements roster.StaffSource.
type StaffRepository struct {
	db DB
}

func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create inserts a staff row and its availability entries in one transaction.
func (r *StaffRepository) Create(ctx context.Context, s *model.Staff) error {
	if s.ID == uuid.Nil {
		s.BaseModel = model.NewBaseModel()
	}

	query := `
		INSERT INTO staff (id, name, gender, employment_type, experience, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Gender, s.EmploymentType, s.Experience, s.CreatedAt); err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}

	return r.replaceAvailability(ctx, s.ID, s.Availability)
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `SELECT id, name, gender, employment_type, experience, created_at FROM staff WHERE id = $1`
	s, err := r.scanStaff(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	avail, err := r.loadAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Availability = avail
	return s, nil
}

func (r *StaffRepository) Update(ctx context.Context, s *model.Staff) error {
	query := `UPDATE staff SET name = $2, gender = $3, employment_type = $4, experience = $5 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Gender, s.EmploymentType, s.Experience)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("staff %s not found", s.ID)
	}
	return r.replaceAvailability(ctx, s.ID, s.Availability)
}

func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("staff %s not found", id)
	}
	return nil
}

func (r *StaffRepository) List(ctx context.Context, filter ListFilter) ([]*model.Staff, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	where := "1=1"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM staff WHERE %s", where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count staff: %w", err)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "desc"
	}

	query := fmt.Sprintf(`
		SELECT id, name, gender, employment_type, experience, created_at
		FROM staff
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, orderBy, orderDir, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var out []*model.Staff
	for rows.Next() {
		s, err := r.scanStaffRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, nil
}

// ListStaff implements roster.StaffSource: every staff row with its
// availability populated, the full pool the generator draws from.
func (r *StaffRepository) ListStaff(ctx context.Context) ([]*model.Staff, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, gender, employment_type, experience, created_at FROM staff ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var out []*model.Staff
	for rows.Next() {
		s, err := r.scanStaffRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, s := range out {
		avail, err := r.loadAvailability(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Availability = avail
	}
	return out, nil
}

func (r *StaffRepository) loadAvailability(ctx context.Context, staffID uuid.UUID) ([]model.AvailabilityEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT day_of_week, shift_kind, is_available
		FROM staff_availability
		WHERE staff_id = $1
	`, staffID)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	defer rows.Close()

	var out []model.AvailabilityEntry
	for rows.Next() {
		var e model.AvailabilityEntry
		var token string
		if err := rows.Scan(&e.DayOfWeek, &token, &e.IsAvailable); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		kind, err := model.ParseShiftKind(token)
		if err != nil {
			return nil, err
		}
		e.ShiftKind = kind
		out = append(out, e)
	}
	return out, rows.Err()
}

// replaceAvailability deletes and re-inserts a staff member's availability
// exceptions, mirroring how ReplaceMonth replaces a month's shifts wholesale.
func (r *StaffRepository) replaceAvailability(ctx context.Context, staffID uuid.UUID, entries []model.AvailabilityEntry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM staff_availability WHERE staff_id = $1`, staffID); err != nil {
		return fmt.Errorf("clear availability: %w", err)
	}
	for _, e := range entries {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO staff_availability (staff_id, day_of_week, shift_kind, is_available)
			VALUES ($1, $2, $3, $4)
		`, staffID, e.DayOfWeek, e.ShiftKind.String(), e.IsAvailable)
		if err != nil {
			return fmt.Errorf("insert availability: %w", err)
		}
	}
	return nil
}

func (r *StaffRepository) scanStaff(row *sql.Row) (*model.Staff, error) {
	s := &model.Staff{}
	var createdAt time.Time
	err := row.Scan(&s.ID, &s.Name, &s.Gender, &s.EmploymentType, &s.Experience, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan staff: %w", err)
	}
	s.CreatedAt = createdAt
	return s, nil
}

func (r *StaffRepository) scanStaffRow(rows *sql.Rows) (*model.Staff, error) {
	s := &model.Staff{}
	var createdAt time.Time
	if err := rows.Scan(&s.ID, &s.Name, &s.Gender, &s.EmploymentType, &s.Experience, &createdAt); err != nil {
		return nil, fmt.Errorf("scan staff: %w", err)
	}
	s.CreatedAt = createdAt
	return s, nil
}
