package usecase

import (
	"context"

	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/logger"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	nrpkg "github.com/sagarsaathi/saathi/internal/pkg/newrelic"
	"github.com/sagarsaathi/saathi/internal/pkg/observability"
	"github.com/sagarsaathi/saathi/services/trips"
)

type distressUC struct {
	cfg         *models.Config
	tripRepo    trips.TripRepo
	tripGW      trips.TripGW
	broadcaster trips.Broadcaster
}

// NewDistressUC creates the SOS escalation path
func NewDistressUC(
	cfg *models.Config,
	tripRepo trips.TripRepo,
	tripGW trips.TripGW,
	broadcaster trips.Broadcaster,
) (trips.DistressUC, error) {
	return &distressUC{
		cfg:         cfg,
		tripRepo:    tripRepo,
		tripGW:      tripGW,
		broadcaster: broadcaster,
	}, nil
}

// TriggerDistress records an incident and alerts every admin session.
// Nothing is broadcast unless the incident was stored.
func (uc *distressUC) TriggerDistress(ctx context.Context, tripID string, coords models.Coordinates, sender models.Identity) (*models.SOSAlertEvent, error) {
	if !coords.Valid() {
		return nil, apperror.Validation("location is out of range")
	}

	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsParticipant(sender.SubjectID) {
		return nil, apperror.Unauthorized("only trip participants can raise an alert for trip %s", tripID)
	}
	if trip.Status.IsTerminal() {
		return nil, apperror.InvalidState("trip %s is %s", tripID, trip.Status)
	}

	event, err := nrpkg.WithSegmentAndReturn(ctx, "TripRepo/AppendDistressEvent", func() (*models.DistressEvent, error) {
		return uc.tripRepo.AppendDistressEvent(ctx, tripID, models.Now(), coords)
	})
	if err != nil {
		observability.DistressPersistFailures.Inc()
		logger.ErrorCtx(ctx, "Failed to record distress alert",
			logger.TripID(tripID),
			logger.SubjectID(sender.SubjectID),
			logger.Float64("lat", coords.Lat),
			logger.Float64("lng", coords.Lng),
			logger.Err(err))
		return nil, err
	}

	alert := &models.SOSAlertEvent{
		TripID:      tripID,
		Location:    coords,
		Timestamp:   event.TriggeredAt,
		Seq:         event.Seq,
		TriggeredBy: sender.SubjectID,
		RequesterID: trip.RequesterID,
		DriverID:    trip.AssignedDriver(),
	}

	monitors := uc.broadcaster.BroadcastToRole(models.RoleAdmin, constants.EventSOSAlert, alert)
	observability.DistressAlertsTotal.Inc()
	if monitors == 0 {
		logger.WarnCtx(ctx, "Distress alert recorded with no monitor online",
			logger.TripID(tripID), logger.Int("seq", event.Seq))
	} else {
		logger.InfoCtx(ctx, "Distress alert broadcast",
			logger.TripID(tripID), logger.Int("seq", event.Seq), logger.Int("monitors", monitors))
	}

	if uc.tripGW != nil {
		if err := uc.tripGW.PublishSOS(ctx, *alert); err != nil {
			logger.ErrorCtx(ctx, "Failed to publish distress alert", logger.TripID(tripID), logger.Err(err))
		}
	}
	return alert, nil
}

// AcknowledgeDistress marks one incident handled by an admin. The trip's
// distress flag stays set.
func (uc *distressUC) AcknowledgeDistress(ctx context.Context, tripID string, seq int, admin models.Identity) (*models.DistressEvent, error) {
	if !admin.IsAdmin() {
		return nil, apperror.Unauthorized("only admins can acknowledge distress alerts")
	}
	if seq < 1 {
		return nil, apperror.Validation("seq must be positive")
	}

	event, err := uc.tripRepo.AcknowledgeDistress(ctx, tripID, seq, admin.SubjectID)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Distress alert acknowledged",
		logger.TripID(tripID), logger.Int("seq", seq), logger.SubjectID(admin.SubjectID))
	return event, nil
}
