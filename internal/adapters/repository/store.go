// Package repository defines the profile and comparison stores and errors.
package repository

import (
	"context"

	"github.com/gitscout/gitscout/internal/domain/model"
)

// ProfileStore provides CRUD access to standard profiles.
type ProfileStore interface {
	// CreateProfile assigns an id and created_at and persists the profile.
	CreateProfile(ctx context.Context, profile model.StandardProfile) (model.StandardProfile, error)

	// GetProfile returns ErrNotFound for unknown ids.
	GetProfile(ctx context.Context, id string) (model.StandardProfile, error)

	// ListProfiles returns the owner's profiles ordered newest-first.
	ListProfiles(ctx context.Context, ownerID string) ([]model.StandardProfile, error)

	// UpdateProfile replaces the stored document. Returns ErrNotFound for
	// unknown ids; id, owner and created_at are never changed.
	UpdateProfile(ctx context.Context, profile model.StandardProfile) (model.StandardProfile, error)

	// DeleteProfile returns ErrNotFound for unknown ids. Comparison records
	// referencing the profile are left intact.
	DeleteProfile(ctx context.Context, id string) error
}

// ComparisonStore provides access to persisted comparison records.
// Records are created once and never mutated.
type ComparisonStore interface {
	CreateComparison(ctx context.Context, record model.ComparisonRecord) (model.ComparisonRecord, error)

	// GetComparison returns ErrNotFound for unknown ids.
	GetComparison(ctx context.Context, id string) (model.ComparisonRecord, error)

	// ListComparisons returns the owner's records ordered newest-first.
	ListComparisons(ctx context.Context, ownerID string) ([]model.ComparisonRecord, error)

	// DeleteComparison returns ErrNotFound for unknown ids.
	DeleteComparison(ctx context.Context, id string) error
}

// Store bundles both stores behind a single handle.
type Store interface {
	ProfileStore
	ComparisonStore

	// Close releases the underlying connection.
	Close() error
}
