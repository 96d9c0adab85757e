package trips

import (
	"context"
	"time"

	"github.com/sagarsaathi/saathi/internal/pkg/models"
)

// TripRepo is the Record Store for trips, drivers and requester back-references.
// Every status change goes through TransitionTrip, which applies the change only
// if the stored status still matches.
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/sagarsaathi/saathi/services/trips TripRepo,LocationCache
type TripRepo interface {
	// CreateTrip stores a PENDING trip and points the requester's active trip at it
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	// ListTripsByStatus returns trips in any of statuses, most recent first
	ListTripsByStatus(ctx context.Context, statuses ...models.TripStatus) ([]*models.Trip, error)
	ListTripsByRequester(ctx context.Context, requesterID string) ([]*models.Trip, error)
	TransitionTrip(ctx context.Context, t models.TripTransition) (*models.Trip, error)
	// UpdateLastKnownLocation never overwrites a newer position
	UpdateLastKnownLocation(ctx context.Context, tripID string, loc models.LastKnownLocation) error
	AppendDistressEvent(ctx context.Context, tripID string, at time.Time, coords models.Coordinates) (*models.DistressEvent, error)
	AcknowledgeDistress(ctx context.Context, tripID string, seq int, adminID string) (*models.DistressEvent, error)
	SetRating(ctx context.Context, tripID string, rating int) error
	// DeleteTrip removes a terminal trip without unhandled distress and clears the back-reference
	DeleteTrip(ctx context.Context, tripID string) error
	GetDriver(ctx context.Context, driverID string) (*models.Driver, error)
	AddDriverStrike(ctx context.Context, driverID string) error
}

// LocationCache holds the latest live position per trip with a TTL
type LocationCache interface {
	SetLocation(ctx context.Context, tripID string, loc models.LastKnownLocation) error
	// GetLocation returns nil, nil on a miss
	GetLocation(ctx context.Context, tripID string) (*models.LastKnownLocation, error)
	DeleteLocation(ctx context.Context, tripID string) error
}
