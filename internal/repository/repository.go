// Package repository provides the data access layer over Postgres.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Repository is the generic CRUD interface every concrete repository
// implements.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]*T, int, error)
}

// ListFilter controls pagination, ordering, and search for List calls.
type ListFilter struct {
	Status    string                 `json:"status,omitempty"`
	Search    string                 `json:"search,omitempty"`
	StartDate string                 `json:"start_date,omitempty"`
	EndDate   string                 `json:"end_date,omitempty"`
	Offset    int                    `json:"offset"`
	Limit     int                    `json:"limit"`
	OrderBy   string                 `json:"order_by,omitempty"`
	OrderDir  string                 `json:"order_dir,omitempty"` // asc/desc
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// DefaultListFilter returns a sane default page.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Offset:   0,
		Limit:    20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

func (f ListFilter) WithLimit(limit int) ListFilter {
	f.Limit = limit
	return f
}

func (f ListFilter) WithOffset(offset int) ListFilter {
	f.Offset = offset
	return f
}

func (f ListFilter) WithStatus(status string) ListFilter {
	f.Status = status
	return f
}

func (f ListFilter) WithDateRange(start, end string) ListFilter {
	f.StartDate = start
	f.EndDate = end
	return f
}

// DB is the subset of *sql.DB (or *sql.Tx) the repositories depend on.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Tx extends DB with transaction control.
type Tx interface {
	DB
	Commit() error
	Rollback() error
}

type TxFunc func(tx Tx) error

type Scanner interface {
	Scan(dest ...interface{}) error
}
