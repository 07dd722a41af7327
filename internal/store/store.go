// Package store provides persistence for completed screening records.
package store

import (
	"context"

	"github.com/talentscout/intake/internal/domain"
)

// Repository defines the interface for persisting completed screenings.
type Repository interface {
	// SaveScreening stores a completed screening record.
	SaveScreening(ctx context.Context, rec *domain.ScreeningRecord) error

	// GetScreening retrieves a screening by session id, or nil if absent.
	GetScreening(ctx context.Context, sessionID string) (*domain.ScreeningRecord, error)

	// ListScreenings returns up to limit records, newest first.
	ListScreenings(ctx context.Context, limit int) ([]*domain.ScreeningRecord, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
