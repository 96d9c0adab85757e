package usecase

import (
	"context"
	"sync"

	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/logger"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	nrpkg "github.com/sagarsaathi/saathi/internal/pkg/newrelic"
	"github.com/sagarsaathi/saathi/internal/pkg/observability"
	"github.com/sagarsaathi/saathi/internal/pkg/retry"
	"github.com/sagarsaathi/saathi/internal/utils"
	"github.com/sagarsaathi/saathi/services/trips"
)

type locationUC struct {
	cfg         models.TrackingConfig
	tripRepo    trips.TripRepo
	cache       trips.LocationCache
	broadcaster trips.Broadcaster
	retrier     *retry.Retrier

	inflight sync.WaitGroup
}

// NewLocationUC creates the live location channel
func NewLocationUC(
	cfg *models.Config,
	tripRepo trips.TripRepo,
	cache trips.LocationCache,
	broadcaster trips.Broadcaster,
) (trips.LocationUC, error) {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = cfg.Tracking.PersistRetries
	if cfg.Tracking.PersistRetryDelay > 0 {
		retryCfg.BaseDelay = cfg.Tracking.PersistRetryDelay
	}
	retryCfg.ShouldRetry = func(err error) bool {
		return apperror.KindOf(err) == apperror.KindPersistence
	}

	return &locationUC{
		cfg:         cfg.Tracking,
		tripRepo:    tripRepo,
		cache:       cache,
		broadcaster: broadcaster,
		retrier:     retry.New(retryCfg),
	}, nil
}

// PublishLocation broadcasts the assigned driver's position to the trip room
// and stores it in the background. A failed write never suppresses the broadcast.
func (uc *locationUC) PublishLocation(ctx context.Context, tripID string, coords models.Coordinates, sender models.Identity) (*models.LocationUpdatedEvent, error) {
	if !coords.Valid() {
		observability.LocationUpdatesTotal.WithLabelValues(observability.OutcomeRejected).Inc()
		return nil, apperror.Validation("location is out of range")
	}

	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsAssignedDriver(sender.SubjectID) {
		observability.LocationUpdatesTotal.WithLabelValues(observability.OutcomeDropped).Inc()
		return nil, apperror.Unauthorized("only the assigned driver can publish locations for trip %s", tripID)
	}
	if !trip.Status.IsActive() {
		observability.LocationUpdatesTotal.WithLabelValues(observability.OutcomeRejected).Inc()
		return nil, apperror.InvalidState("trip %s is %s: locations are accepted only while it is active", tripID, trip.Status)
	}

	loc := models.LastKnownLocation{
		Coordinates: coords,
		Geohash:     utils.EncodeCoordinates(coords, uc.cfg.GeohashPrecision),
		UpdatedAt:   models.Now(),
	}
	event := &models.LocationUpdatedEvent{
		TripID:    tripID,
		Location:  coords,
		Geohash:   loc.Geohash,
		Timestamp: loc.UpdatedAt,
	}

	uc.broadcaster.BroadcastToRoom(tripID, constants.EventLocationUpdated, event)
	observability.LocationUpdatesTotal.WithLabelValues(observability.OutcomeBroadcast).Inc()

	uc.persist(ctx, tripID, loc)
	return event, nil
}

func (uc *locationUC) persist(ctx context.Context, tripID string, loc models.LastKnownLocation) {
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()

		bg := nrpkg.NewBackgroundContext(ctx)
		if uc.cfg.PersistTimeout > 0 {
			var cancel context.CancelFunc
			bg, cancel = context.WithTimeout(bg, uc.cfg.PersistTimeout)
			defer cancel()
		}

		if uc.cache != nil {
			if err := uc.cache.SetLocation(bg, tripID, loc); err != nil {
				logger.Warn("Failed to cache location", logger.TripID(tripID), logger.Err(err))
			}
		}

		err := uc.retrier.Execute(bg, func(ctx context.Context) error {
			return uc.tripRepo.UpdateLastKnownLocation(ctx, tripID, loc)
		})
		if err != nil {
			observability.LocationPersistFailures.Inc()
			logger.ErrorCtx(bg, "Failed to persist last known location",
				logger.TripID(tripID),
				logger.Float64("lat", loc.Lat),
				logger.Float64("lng", loc.Lng),
				logger.Err(err))
		}
	}()
}

// GetLocation returns the freshest known position, preferring the cache
func (uc *locationUC) GetLocation(ctx context.Context, tripID string, viewer models.Identity) (*models.LastKnownLocation, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.CanBeViewedBy(viewer) {
		return nil, apperror.Unauthorized("not allowed to view trip %s", tripID)
	}

	if uc.cache != nil {
		cached, err := uc.cache.GetLocation(ctx, tripID)
		if err != nil {
			logger.WarnCtx(ctx, "Location cache unavailable, using record store", logger.TripID(tripID), logger.Err(err))
		}
		if cached != nil && (trip.LastKnownLocation == nil || !cached.UpdatedAt.Before(trip.LastKnownLocation.UpdatedAt)) {
			return cached, nil
		}
	}

	if trip.LastKnownLocation == nil {
		return nil, apperror.NotFound("no location recorded for trip %s", tripID)
	}
	return trip.LastKnownLocation, nil
}

// Drain blocks until background writes finish or ctx is done
func (uc *locationUC) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
