package database

import (
	"context"
	"errors"

	"spendbook/models"
)

var (
	// ErrNotFound no record matches the identifier
	ErrNotFound = errors.New("expense not found")
	// ErrConflict the record changed between read and conditional write
	ErrConflict = errors.New("expense was modified concurrently")
)

// Store persists expense records. Implementations are safe for concurrent use.
type Store interface {
	// Create persists a new record and returns it with its identifier and timestamps.
	Create(ctx context.Context, f models.ExpenseFields) (*models.Expense, error)
	// List returns every record, newest date first.
	List(ctx context.Context) ([]models.Expense, error)
	// Get returns ErrNotFound when no record has the identifier.
	Get(ctx context.Context, id string) (*models.Expense, error)
	// Update writes f over current only if the stored version still equals
	// current.Version, returning ErrConflict otherwise.
	Update(ctx context.Context, current *models.Expense, f models.ExpenseFields) (*models.Expense, error)
	// Delete returns ErrNotFound when no record has the identifier.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
