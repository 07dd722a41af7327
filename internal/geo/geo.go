// Package geo resolves area pincodes to locations.
package geo

import (
	"context"
	"errors"

	"github.com/talentscout/intake/internal/domain"
)

// ErrNotFound is returned when a pincode cannot be resolved.
var ErrNotFound = errors.New("pincode not found")

// Lookup resolves a candidate pincode to a structured location. A real
// geocoder can be substituted behind this contract.
type Lookup interface {
	Lookup(ctx context.Context, pincode string) (*domain.Location, error)
}

// StaticLookup is the offline lookup policy: any 6-digit numeric pincode
// resolves to a sample location, anything else is not found.
type StaticLookup struct{}

// NewStaticLookup creates the offline lookup.
func NewStaticLookup() *StaticLookup {
	return &StaticLookup{}
}

// Lookup implements the Lookup contract.
func (s *StaticLookup) Lookup(_ context.Context, pincode string) (*domain.Location, error) {
	if len(pincode) != 6 {
		return nil, ErrNotFound
	}
	for _, r := range pincode {
		if r < '0' || r > '9' {
			return nil, ErrNotFound
		}
	}
	return &domain.Location{
		City:    "Sample City",
		State:   "Sample State",
		Country: "Sample Country",
	}, nil
}
