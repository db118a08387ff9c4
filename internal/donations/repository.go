// Package donations holds the donation ledger: the repository contract over
// the donation collection and its two interchangeable implementations, one
// backed by a durable local store and one by a remote ledger API. The
// implementation is chosen once at composition time, never per call.
package donations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/relieflink/backend/internal/models"
)

var (
	// ErrNotFound is returned by Update and Delete when no donation with the
	// given id exists.
	ErrNotFound = errors.New("donation not found")

	// ErrUnavailable wraps network or storage failures of the backing store.
	ErrUnavailable = errors.New("donation store unavailable")
)

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	DonorName        *string                  `json:"donorName,omitempty"`
	Location         *string                  `json:"location,omitempty"`
	ItemsDescription *string                  `json:"itemsDescription,omitempty"`
	Category         *models.DonationCategory `json:"category,omitempty"`
	WeightKg         *float64                 `json:"weightKg,omitempty"`
	Quantity         *int                     `json:"quantity,omitempty"`
	Status           *models.DonationStatus   `json:"status,omitempty"`
	ImpactMessage    *string                  `json:"impactMessage,omitempty"`
}

// Repository is the persistence contract for the donation collection.
//
// There is no cross-process concurrency control: two clients updating or
// deleting the same id race, and the last write wins. Callers accept this.
type Repository interface {
	// Create persists a donation, assigning an id if absent, and returns the
	// stored form.
	Create(ctx context.Context, donation *models.Donation) (*models.Donation, error)

	// ListAll returns every donation, newest first for the local store; the
	// remote store returns the upstream order as-is.
	ListAll(ctx context.Context) ([]models.Donation, error)

	// ListByUser returns the donations owned by userID, same ordering as
	// ListAll.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Donation, error)

	// Update applies the non-nil fields of patch and returns the updated
	// record. Returns ErrNotFound when id is absent.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*models.Donation, error)

	// Delete removes the donation permanently, with no recovery path.
	// Returns ErrNotFound when id is absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
