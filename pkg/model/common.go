// Package model defines the core data model for the roster engine.
package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel holds the fields common to every persisted row.
type BaseModel struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewBaseModel returns a BaseModel stamped with a fresh ID and timestamp.
func NewBaseModel() BaseModel {
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}

// DateRange is an inclusive YYYY-MM-DD span, used by reporting endpoints.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
