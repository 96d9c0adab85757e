package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
)

// MemoryTripRepo is an in-process record store for local runs and tests.
// A single mutex makes every conditional write a compare-and-set.
type MemoryTripRepo struct {
	mu          sync.RWMutex
	trips       map[string]*models.Trip
	activeTrips map[string]string
	drivers     map[string]*models.Driver
}

// NewMemoryTripRepository creates an empty in-memory store
func NewMemoryTripRepository() *MemoryTripRepo {
	return &MemoryTripRepo{
		trips:       make(map[string]*models.Trip),
		activeTrips: make(map[string]string),
		drivers:     make(map[string]*models.Driver),
	}
}

// UpsertDriver registers or replaces a driver record
func (r *MemoryTripRepo) UpsertDriver(driver models.Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := driver
	r.drivers[d.ID] = &d
}

// ActiveTripOf returns the requester's active trip reference
func (r *MemoryTripRepo) ActiveTripOf(requesterID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeTrips[requesterID]
}

func cloneTrip(t *models.Trip) *models.Trip {
	c := *t
	c.Stops = append([]models.Stop{}, t.Stops...)
	c.DistressHistory = append([]models.DistressEvent{}, t.DistressHistory...)
	if t.DriverID != nil {
		v := *t.DriverID
		c.DriverID = &v
	}
	if t.Rating != nil {
		v := *t.Rating
		c.Rating = &v
	}
	if t.LastKnownLocation != nil {
		v := *t.LastKnownLocation
		c.LastKnownLocation = &v
	}
	for _, ts := range []**time.Time{&c.AcceptedAt, &c.StartedAt, &c.CompletedAt, &c.CancelledAt} {
		if *ts != nil {
			v := **ts
			*ts = &v
		}
	}
	return &c
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func (r *MemoryTripRepo) CreateTrip(_ context.Context, trip *models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trips[trip.ID]; exists {
		return apperror.Persistence(nil, "trip %s already exists", trip.ID)
	}
	r.trips[trip.ID] = cloneTrip(trip)
	r.activeTrips[trip.RequesterID] = trip.ID
	return nil
}

func (r *MemoryTripRepo) GetTrip(_ context.Context, tripID string) (*models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[tripID]
	if !ok {
		return nil, apperror.NotFound("trip %s not found", tripID)
	}
	return cloneTrip(t), nil
}

func (r *MemoryTripRepo) ListTripsByStatus(_ context.Context, statuses ...models.TripStatus) ([]*models.Trip, error) {
	return r.filter(func(t *models.Trip) bool {
		for _, s := range statuses {
			if t.Status == s {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryTripRepo) ListTripsByRequester(_ context.Context, requesterID string) ([]*models.Trip, error) {
	return r.filter(func(t *models.Trip) bool { return t.RequesterID == requesterID }), nil
}

func (r *MemoryTripRepo) filter(keep func(*models.Trip) bool) []*models.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*models.Trip{}
	for _, t := range r.trips {
		if keep(t) {
			out = append(out, cloneTrip(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *MemoryTripRepo) TransitionTrip(_ context.Context, tr models.TripTransition) (*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tr.TripID]
	if !ok {
		return nil, apperror.NotFound("trip %s not found", tr.TripID)
	}

	matched := false
	for _, from := range tr.From {
		if t.Status == from {
			matched = true
			break
		}
	}
	if !matched {
		return nil, apperror.InvalidState("trip %s is %s: cannot move to %s", tr.TripID, t.Status, tr.To)
	}

	previous := t.Status
	t.Status = tr.To
	t.UpdatedAt = tr.At
	if tr.DriverID != "" {
		driverID := tr.DriverID
		t.DriverID = &driverID
	}
	switch tr.To {
	case models.TripStatusConfirmed:
		if previous == models.TripStatusPending {
			t.AcceptedAt = timePtr(tr.At)
		}
	case models.TripStatusInProgress:
		t.StartedAt = timePtr(tr.At)
	case models.TripStatusCompleted:
		t.CompletedAt = timePtr(tr.At)
	case models.TripStatusCancelled:
		t.CancelledAt = timePtr(tr.At)
		t.CancelReason = tr.Reason
		t.CancelledBy = tr.ActorID
	}

	if tr.ClearActiveTrip && r.activeTrips[t.RequesterID] == t.ID {
		delete(r.activeTrips, t.RequesterID)
	}
	return cloneTrip(t), nil
}

func (r *MemoryTripRepo) UpdateLastKnownLocation(_ context.Context, tripID string, loc models.LastKnownLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok {
		return nil
	}
	if t.LastKnownLocation != nil && t.LastKnownLocation.UpdatedAt.After(loc.UpdatedAt) {
		return nil
	}
	l := loc
	t.LastKnownLocation = &l
	return nil
}

func (r *MemoryTripRepo) AppendDistressEvent(_ context.Context, tripID string, at time.Time, coords models.Coordinates) (*models.DistressEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok {
		return nil, apperror.NotFound("trip %s not found", tripID)
	}

	event := models.DistressEvent{Seq: len(t.DistressHistory) + 1, TriggeredAt: at, Coordinates: coords}
	t.DistressTriggered = true
	t.DistressHistory = append(t.DistressHistory, event)
	t.UpdatedAt = at
	return &event, nil
}

func (r *MemoryTripRepo) AcknowledgeDistress(_ context.Context, tripID string, seq int, adminID string) (*models.DistressEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok || seq < 1 || seq > len(t.DistressHistory) {
		return nil, apperror.NotFound("distress event %d of trip %s not found", seq, tripID)
	}
	event := &t.DistressHistory[seq-1]
	if event.Handled() {
		return nil, apperror.InvalidState("distress event %d already handled by %s", seq, event.HandledBy)
	}
	event.HandledBy = adminID
	e := *event
	return &e, nil
}

func (r *MemoryTripRepo) SetRating(_ context.Context, tripID string, rating int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok {
		return apperror.NotFound("trip %s not found", tripID)
	}
	if t.Status != models.TripStatusCompleted || t.Rating != nil {
		return apperror.InvalidState("trip %s is %s: only an unrated completed trip can be rated", tripID, t.Status)
	}
	v := rating
	t.Rating = &v
	t.UpdatedAt = models.Now()
	return nil
}

func (r *MemoryTripRepo) DeleteTrip(_ context.Context, tripID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok {
		return apperror.NotFound("trip %s not found", tripID)
	}
	if !t.Status.IsTerminal() || t.HasActiveDistress() {
		return apperror.InvalidState("trip %s is %s: only a terminal trip without open distress can be deleted", tripID, t.Status)
	}
	delete(r.trips, tripID)
	if r.activeTrips[t.RequesterID] == tripID {
		delete(r.activeTrips, t.RequesterID)
	}
	return nil
}

func (r *MemoryTripRepo) GetDriver(_ context.Context, driverID string) (*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return nil, apperror.NotFound("driver %s not found", driverID)
	}
	c := *d
	return &c, nil
}

func (r *MemoryTripRepo) AddDriverStrike(_ context.Context, driverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return apperror.NotFound("driver %s not found", driverID)
	}
	d.StrikeCount++
	return nil
}
