package trips

import (
	"context"

	"github.com/sagarsaathi/saathi/internal/pkg/models"
)

// TripGW publishes domain events for downstream consumers such as the notifier
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/sagarsaathi/saathi/services/trips TripGW,Broadcaster
type TripGW interface {
	PublishTripEvent(ctx context.Context, subject string, event models.TripEvent) error
	PublishSOS(ctx context.Context, alert models.SOSAlertEvent) error
}

// Broadcaster fans realtime events out to connected sessions without blocking
type Broadcaster interface {
	BroadcastToRoom(room, event string, data interface{}) int
	BroadcastToRole(role models.Role, event string, data interface{}) int
}
