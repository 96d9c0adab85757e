package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/logger"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	nrpkg "github.com/sagarsaathi/saathi/internal/pkg/newrelic"
	"github.com/sagarsaathi/saathi/internal/pkg/observability"
	"github.com/sagarsaathi/saathi/services/trips"
)

var transitionSubjects = map[models.TripStatus]string{
	models.TripStatusConfirmed:  constants.SubjectTripAccepted,
	models.TripStatusInProgress: constants.SubjectTripStarted,
	models.TripStatusCompleted:  constants.SubjectTripCompleted,
	models.TripStatusCancelled:  constants.SubjectTripCancelled,
}

type tripUC struct {
	cfg         *models.Config
	tripRepo    trips.TripRepo
	cache       trips.LocationCache
	tripGW      trips.TripGW
	broadcaster trips.Broadcaster
}

// NewTripUC creates the trip coordinator
func NewTripUC(
	cfg *models.Config,
	tripRepo trips.TripRepo,
	cache trips.LocationCache,
	tripGW trips.TripGW,
	broadcaster trips.Broadcaster,
) (trips.TripUC, error) {
	return &tripUC{
		cfg:         cfg,
		tripRepo:    tripRepo,
		cache:       cache,
		tripGW:      tripGW,
		broadcaster: broadcaster,
	}, nil
}

func validateCreate(req *models.CreateTripRequest) error {
	if req.GroupSize < 1 {
		return apperror.Validation("groupSize must be at least 1")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return apperror.Validation("startDate and endDate are required")
	}
	if !req.StartDate.Before(req.EndDate) {
		return apperror.Validation("startDate must be before endDate")
	}
	if len(req.Stops) == 0 {
		return apperror.Validation("at least one stop is required")
	}
	if strings.TrimSpace(req.Origin.Address) == "" || !req.Origin.Valid() {
		return apperror.Validation("origin needs an address and valid coordinates")
	}

	unordered := true
	for _, s := range req.Stops {
		if s.Order != 0 {
			unordered = false
			break
		}
	}
	for i := range req.Stops {
		s := &req.Stops[i]
		if strings.TrimSpace(s.Address) == "" || !s.Valid() {
			return apperror.Validation("stop %d needs an address and valid coordinates", i+1)
		}
		if unordered {
			s.Order = i + 1
			continue
		}
		if s.Order < 1 || (i > 0 && s.Order <= req.Stops[i-1].Order) {
			return apperror.Validation("stop order must be unique and increasing")
		}
	}
	return nil
}

// CreateTrip records a new PENDING trip for the requester
func (uc *tripUC) CreateTrip(ctx context.Context, requester models.Identity, req models.CreateTripRequest) (*models.Trip, error) {
	if requester.SubjectID == "" {
		return nil, apperror.Unauthorized("requester is required")
	}
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	now := models.Now()
	trip := &models.Trip{
		ID:              uuid.NewString(),
		RequesterID:     requester.SubjectID,
		Origin:          req.Origin,
		Stops:           req.Stops,
		GroupSize:       req.GroupSize,
		StartDate:       req.StartDate.UTC(),
		EndDate:         req.EndDate.UTC(),
		Status:          models.TripStatusPending,
		DistressHistory: []models.DistressEvent{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := nrpkg.WithSegment(ctx, "TripRepo/CreateTrip", func() error {
		return uc.tripRepo.CreateTrip(ctx, trip)
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to create trip", logger.SubjectID(requester.SubjectID), logger.Err(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Trip created", logger.TripID(trip.ID), logger.SubjectID(requester.SubjectID))
	uc.publish(ctx, constants.SubjectTripCreated, trip, requester.SubjectID)
	return trip, nil
}

// AcceptTrip assigns a vetted driver to a PENDING trip. Of several drivers
// racing for the same trip exactly one succeeds.
func (uc *tripUC) AcceptTrip(ctx context.Context, tripID string, driver models.Identity) (*models.Trip, error) {
	if driver.Role != models.RoleDriver || driver.SubjectID == "" {
		return nil, apperror.Unauthorized("only drivers can accept trips")
	}

	d, err := uc.tripRepo.GetDriver(ctx, driver.SubjectID)
	if err != nil {
		return nil, err
	}
	if !d.CanAcceptTrips() {
		return nil, apperror.Unauthorized("driver %s is not cleared to accept trips", d.ID)
	}

	return uc.transition(ctx, models.TripTransition{
		TripID:   tripID,
		From:     models.SourcesOf(models.TripStatusConfirmed),
		To:       models.TripStatusConfirmed,
		DriverID: driver.SubjectID,
		ActorID:  driver.SubjectID,
	})
}

// StartTrip moves a CONFIRMED trip to IN_PROGRESS, by its driver only
func (uc *tripUC) StartTrip(ctx context.Context, tripID string, actor models.Identity) (*models.Trip, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsAssignedDriver(actor.SubjectID) {
		return nil, apperror.Unauthorized("only the assigned driver can start trip %s", tripID)
	}

	return uc.transition(ctx, models.TripTransition{
		TripID:  tripID,
		From:    models.SourcesOf(models.TripStatusInProgress),
		To:      models.TripStatusInProgress,
		ActorID: actor.SubjectID,
	})
}

// CompleteTrip moves an IN_PROGRESS trip to COMPLETED
func (uc *tripUC) CompleteTrip(ctx context.Context, tripID string, actor models.Identity) (*models.Trip, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsAssignedDriver(actor.SubjectID) && !actor.IsAdmin() {
		return nil, apperror.Unauthorized("only the assigned driver can complete trip %s", tripID)
	}

	completed, err := uc.transition(ctx, models.TripTransition{
		TripID:          tripID,
		From:            models.SourcesOf(models.TripStatusCompleted),
		To:              models.TripStatusCompleted,
		ActorID:         actor.SubjectID,
		ClearActiveTrip: true,
	})
	if err != nil {
		return nil, err
	}
	uc.evictLocation(ctx, tripID)
	return completed, nil
}

// CancelTrip cancels a PENDING or CONFIRMED trip. A driver who backs out of a
// confirmed trip receives a strike.
func (uc *tripUC) CancelTrip(ctx context.Context, tripID string, actor models.Identity, reason string) (*models.Trip, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsParticipant(actor.SubjectID) && !actor.IsAdmin() {
		return nil, apperror.Unauthorized("not allowed to cancel trip %s", tripID)
	}
	if !trip.Status.CanTransitionTo(models.TripStatusCancelled) {
		return nil, apperror.InvalidState("trip %s is %s and can no longer be cancelled", tripID, trip.Status)
	}

	cancelled, err := uc.transition(ctx, models.TripTransition{
		TripID:          tripID,
		From:            models.SourcesOf(models.TripStatusCancelled),
		To:              models.TripStatusCancelled,
		Reason:          strings.TrimSpace(reason),
		ActorID:         actor.SubjectID,
		ClearActiveTrip: true,
	})
	if err != nil {
		return nil, err
	}

	if trip.IsAssignedDriver(actor.SubjectID) {
		if err := uc.tripRepo.AddDriverStrike(ctx, actor.SubjectID); err != nil {
			logger.WarnCtx(ctx, "Failed to record driver strike",
				logger.TripID(tripID), logger.SubjectID(actor.SubjectID), logger.Err(err))
		}
	}
	uc.evictLocation(ctx, tripID)
	return cancelled, nil
}

func (uc *tripUC) transition(ctx context.Context, t models.TripTransition) (*models.Trip, error) {
	t.At = models.Now()

	trip, err := nrpkg.WithSegmentAndReturn(ctx, "TripRepo/TransitionTrip", func() (*models.Trip, error) {
		return uc.tripRepo.TransitionTrip(ctx, t)
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInvalidState {
			observability.TripTransitionConflicts.WithLabelValues(string(t.To)).Inc()
		}
		logger.WarnCtx(ctx, "Trip transition rejected",
			logger.TripID(t.TripID),
			logger.String("to", string(t.To)),
			logger.SubjectID(t.ActorID),
			logger.Err(err))
		return nil, err
	}

	observability.TripTransitionsTotal.WithLabelValues(string(t.To)).Inc()
	logger.InfoCtx(ctx, "Trip status changed",
		logger.TripID(trip.ID),
		logger.String("status", string(trip.Status)),
		logger.SubjectID(t.ActorID))

	uc.broadcaster.BroadcastToRoom(trip.ID, constants.EventTripUpdated, models.TripUpdatedEvent{
		TripID:    trip.ID,
		Status:    trip.Status,
		DriverID:  trip.AssignedDriver(),
		Reason:    trip.CancelReason,
		Timestamp: t.At,
	})
	uc.publish(ctx, transitionSubjects[t.To], trip, t.ActorID)
	return trip, nil
}

// publish never fails the calling operation
func (uc *tripUC) publish(ctx context.Context, subject string, trip *models.Trip, actorID string) {
	if uc.tripGW == nil || subject == "" {
		return
	}
	event := models.TripEvent{
		TripID:      trip.ID,
		RequesterID: trip.RequesterID,
		DriverID:    trip.AssignedDriver(),
		Status:      trip.Status,
		ActorID:     actorID,
		Reason:      trip.CancelReason,
		Timestamp:   trip.UpdatedAt,
	}
	if err := uc.tripGW.PublishTripEvent(ctx, subject, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish trip event",
			logger.TripID(trip.ID), logger.String("subject", subject), logger.Err(err))
	}
}

func (uc *tripUC) evictLocation(ctx context.Context, tripID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteLocation(ctx, tripID); err != nil {
		logger.WarnCtx(ctx, "Failed to evict cached location", logger.TripID(tripID), logger.Err(err))
	}
}

// GetTrip returns the trip if viewer is a participant or an admin
func (uc *tripUC) GetTrip(ctx context.Context, tripID string, viewer models.Identity) (*models.Trip, error) {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.CanBeViewedBy(viewer) {
		return nil, apperror.Unauthorized("not allowed to view trip %s", tripID)
	}
	return trip, nil
}

// ListPendingTrips is the driver queue, newest first
func (uc *tripUC) ListPendingTrips(ctx context.Context) ([]*models.Trip, error) {
	return uc.tripRepo.ListTripsByStatus(ctx, models.TripStatusPending)
}

func (uc *tripUC) ListTripsForRequester(ctx context.Context, requesterID string) ([]*models.Trip, error) {
	return uc.tripRepo.ListTripsByRequester(ctx, requesterID)
}

// ListActiveTrips feeds the safety monitor
func (uc *tripUC) ListActiveTrips(ctx context.Context) ([]*models.Trip, error) {
	return uc.tripRepo.ListTripsByStatus(ctx, models.TripStatusConfirmed, models.TripStatusInProgress)
}

// RateTrip stores the requester's one-time rating of a completed trip
func (uc *tripUC) RateTrip(ctx context.Context, tripID string, requester models.Identity, rating int) (*models.Trip, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}

	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.RequesterID != requester.SubjectID {
		return nil, apperror.Unauthorized("only the requester can rate trip %s", tripID)
	}
	if trip.Status != models.TripStatusCompleted {
		return nil, apperror.InvalidState("trip %s is %s: only completed trips can be rated", tripID, trip.Status)
	}
	if trip.Rating != nil {
		return nil, apperror.InvalidState("trip %s is already rated", tripID)
	}

	if err := uc.tripRepo.SetRating(ctx, tripID, rating); err != nil {
		return nil, err
	}
	return uc.tripRepo.GetTrip(ctx, tripID)
}

// DeleteTrip removes a finished trip. Trips with unhandled distress are kept.
func (uc *tripUC) DeleteTrip(ctx context.Context, tripID string, requester models.Identity) error {
	trip, err := uc.tripRepo.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.RequesterID != requester.SubjectID && !requester.IsAdmin() {
		return apperror.Unauthorized("not allowed to delete trip %s", tripID)
	}
	if !trip.Status.IsTerminal() {
		return apperror.InvalidState("trip %s is %s: only finished trips can be deleted", tripID, trip.Status)
	}
	if trip.HasActiveDistress() {
		return apperror.InvalidState("trip %s has an unhandled distress alert", tripID)
	}

	if err := uc.tripRepo.DeleteTrip(ctx, tripID); err != nil {
		return err
	}
	uc.evictLocation(ctx, tripID)
	logger.InfoCtx(ctx, "Trip deleted", logger.TripID(tripID), logger.SubjectID(requester.SubjectID))
	return nil
}

// AuthorizeRoom admits the requester, the assigned driver and admins
func (uc *tripUC) AuthorizeRoom(ctx context.Context, identity models.Identity, tripID string) error {
	_, err := uc.GetTrip(ctx, tripID, identity)
	return err
}
