// Package repository defines the profile store interface and errors.
package repository

import (
	"context"

	"github.com/Kartik-0-8/buildathon/internal/domain/model"
)

// Store provides read/write access to profile snapshots. The store is
// only a lookup surface: match scores are viewer-relative, so no score
// ordering is kept here and ranking happens per query.
type Store interface {
	// Upsert inserts or replaces the profile keyed by its ID.
	// Returns true when the profile was newly created.
	Upsert(ctx context.Context, p model.Profile) (bool, error)

	// Get returns the profile for id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Profile, error)

	// Students returns a snapshot of every student profile, in a
	// deterministic order so repeated rankings of an unchanged pool
	// agree on tie order.
	Students(ctx context.Context) ([]model.StudentProfile, error)

	// Count returns the number of profiles tracked, by role.
	Count(ctx context.Context) (students, organizers, professionals int)
}
