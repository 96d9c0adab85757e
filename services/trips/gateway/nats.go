package gateway

import (
	"context"

	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	natspkg "github.com/sagarsaathi/saathi/internal/pkg/nats"
	nrpkg "github.com/sagarsaathi/saathi/internal/pkg/newrelic"
	"github.com/sagarsaathi/saathi/services/trips"
)

// TripGW handles NATS publishing for trip events
type TripGW struct {
	natsClient *natspkg.Client
}

// NewTripGW creates a new trip gateway
func NewTripGW(client *natspkg.Client) trips.TripGW {
	return &TripGW{
		natsClient: client,
	}
}

// PublishTripEvent publishes a lifecycle event on subject
func (g *TripGW) PublishTripEvent(ctx context.Context, subject string, event models.TripEvent) error {
	return nrpkg.WithSegment(ctx, "NATS/"+subject, func() error {
		return g.natsClient.PublishJSON(subject, event)
	})
}

// PublishSOS publishes a distress alert for out-of-band notifiers
func (g *TripGW) PublishSOS(ctx context.Context, alert models.SOSAlertEvent) error {
	return nrpkg.WithSegment(ctx, "NATS/"+constants.SubjectTripSOS, func() error {
		return g.natsClient.PublishJSON(constants.SubjectTripSOS, alert)
	})
}
