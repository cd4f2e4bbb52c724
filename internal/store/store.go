// Package store provides owner-scoped persistence for problem records.
//
// The Store interface is the capability set the web layer receives: every
// operation takes or carries the owning user's ID, so cross-user access is
// structurally impossible here regardless of what the database enforces.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/solvetrack/solvetrack/internal/domain"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("problem not found")

// Filter narrows a List call. Empty fields match everything; Search does a
// case-insensitive substring match over title, platform, and topic.
type Filter struct {
	Status     string
	Difficulty string
	Topic      string
	Search     string
}

// Store is the persistence capability set injected into the web layer.
type Store interface {
	// List returns the user's records, newest first.
	List(ctx context.Context, userID string, f Filter) ([]domain.Problem, error)

	// Get returns one record owned by userID, or ErrNotFound.
	Get(ctx context.Context, userID string, id uuid.UUID) (domain.Problem, error)

	// Insert persists a new record, assigning CreatedAt and UpdatedAt.
	Insert(ctx context.Context, p *domain.Problem) error

	// InsertBatch persists records in a single transaction and returns the
	// number inserted. Used by the CSV import path.
	InsertBatch(ctx context.Context, ps []*domain.Problem) (int, error)

	// Update persists changes to an existing record owned by p.UserID,
	// refreshing UpdatedAt. Returns ErrNotFound if no row matched.
	Update(ctx context.Context, p *domain.Problem) error

	// Delete removes one record owned by userID. Returns ErrNotFound if no
	// row matched.
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}
