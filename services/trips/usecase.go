package trips

import (
	"context"

	"github.com/sagarsaathi/saathi/internal/pkg/models"
)

// TripUC coordinates the trip lifecycle
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/sagarsaathi/saathi/services/trips TripUC,LocationUC,DistressUC
type TripUC interface {
	CreateTrip(ctx context.Context, requester models.Identity, req models.CreateTripRequest) (*models.Trip, error)
	AcceptTrip(ctx context.Context, tripID string, driver models.Identity) (*models.Trip, error)
	StartTrip(ctx context.Context, tripID string, actor models.Identity) (*models.Trip, error)
	CompleteTrip(ctx context.Context, tripID string, actor models.Identity) (*models.Trip, error)
	CancelTrip(ctx context.Context, tripID string, actor models.Identity, reason string) (*models.Trip, error)
	GetTrip(ctx context.Context, tripID string, viewer models.Identity) (*models.Trip, error)
	ListPendingTrips(ctx context.Context) ([]*models.Trip, error)
	ListTripsForRequester(ctx context.Context, requesterID string) ([]*models.Trip, error)
	ListActiveTrips(ctx context.Context) ([]*models.Trip, error)
	RateTrip(ctx context.Context, tripID string, requester models.Identity, rating int) (*models.Trip, error)
	DeleteTrip(ctx context.Context, tripID string, requester models.Identity) error
	// AuthorizeRoom allows the requester, the assigned driver and admins into a trip room
	AuthorizeRoom(ctx context.Context, identity models.Identity, tripID string) error
}

// LocationUC is the live location channel
type LocationUC interface {
	PublishLocation(ctx context.Context, tripID string, coords models.Coordinates, sender models.Identity) (*models.LocationUpdatedEvent, error)
	GetLocation(ctx context.Context, tripID string, viewer models.Identity) (*models.LastKnownLocation, error)
	// Drain waits for in-flight location writes
	Drain(ctx context.Context) error
}

// DistressUC escalates SOS triggers to every safety monitor
type DistressUC interface {
	TriggerDistress(ctx context.Context, tripID string, coords models.Coordinates, sender models.Identity) (*models.SOSAlertEvent, error)
	AcknowledgeDistress(ctx context.Context, tripID string, seq int, admin models.Identity) (*models.DistressEvent, error)
}
