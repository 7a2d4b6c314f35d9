// Package repository defines the activity store interface and errors.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/model"
)

// Store provides read/write access to the activity roster.
//
// Every mutating call performs its checks and its change under one lock, so
// capacity and uniqueness hold even when requests race.
type Store interface {
	// List returns a deep copy of all activities keyed by name.
	List(ctx context.Context) model.Catalog

	// Get returns a copy of a single activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the activity's participants.
	// Errors, checked in order: ErrActivityNotFound, ErrAlreadySignedUp, ErrActivityFull.
	Signup(ctx context.Context, name, email string) error

	// Remove drops email from the activity's participants.
	// Errors, checked in order: ErrActivityNotFound, ErrParticipantNotFound.
	Remove(ctx context.Context, name, email string) error

	// Replace swaps the whole roster for a copy of c.
	Replace(ctx context.Context, c model.Catalog)

	// Count returns the number of activities.
	Count(ctx context.Context) int
}
