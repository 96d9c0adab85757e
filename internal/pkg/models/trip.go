package models

import (
	"time"
)

// TripStatus represents the current status of a trip
type TripStatus string

const (
	TripStatusPending    TripStatus = "PENDING"
	TripStatusConfirmed  TripStatus = "CONFIRMED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// tripTransitions lists every legal forward edge of the trip state machine
var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusPending:    {TripStatusConfirmed, TripStatusCancelled},
	TripStatusConfirmed:  {TripStatusInProgress, TripStatusCancelled},
	TripStatusInProgress: {TripStatusCompleted},
}

// Valid reports whether s is a known trip status
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusPending, TripStatusConfirmed, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// IsActive reports whether a driver is currently bound to an ongoing trip
func (s TripStatus) IsActive() bool {
	return s == TripStatusConfirmed || s == TripStatusInProgress
}

// CanTransitionTo reports whether next is a legal successor of s
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SourcesOf returns every status from which next can be reached
func SourcesOf(next TripStatus) []TripStatus {
	var sources []TripStatus
	for _, from := range []TripStatus{TripStatusPending, TripStatusConfirmed, TripStatusInProgress} {
		if from.CanTransitionTo(next) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Coordinates is a WGS84 position
type Coordinates struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// Valid reports whether the coordinates are within WGS84 bounds
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Place is an addressed point
type Place struct {
	Address string `json:"address" db:"address"`
	Coordinates
}

// Stop is one ordered waypoint of a trip
type Stop struct {
	Place
	Order int `json:"order" db:"seq"`
}

// LastKnownLocation is the most recent position received for a trip.
// UpdatedAt is always assigned by the server.
type LastKnownLocation struct {
	Coordinates
	Geohash   string    `json:"geohash,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DistressEvent is one immutable SOS incident recorded against a trip
type DistressEvent struct {
	Seq         int       `json:"seq" db:"seq"`
	TriggeredAt time.Time `json:"triggeredAt" db:"triggered_at"`
	Coordinates
	HandledBy string `json:"handledBy,omitempty" db:"handled_by"`
}

// Handled reports whether a monitor acknowledged the incident
func (e DistressEvent) Handled() bool {
	return e.HandledBy != ""
}

// Trip represents a requested intercity journey
type Trip struct {
	ID                string             `json:"id"`
	RequesterID       string             `json:"requesterId"`
	DriverID          *string            `json:"driverId"`
	Origin            Place              `json:"origin"`
	Stops             []Stop             `json:"stops"`
	GroupSize         int                `json:"groupSize"`
	StartDate         time.Time          `json:"startDate"`
	EndDate           time.Time          `json:"endDate"`
	Status            TripStatus         `json:"status"`
	LastKnownLocation *LastKnownLocation `json:"lastKnownLocation"`
	DistressTriggered bool               `json:"distressTriggered"`
	DistressHistory   []DistressEvent    `json:"distressHistory"`
	Rating            *int               `json:"rating"`
	LeadFeePaid       bool               `json:"leadFeePaid"`
	CancelReason      string             `json:"cancelReason,omitempty"`
	CancelledBy       string             `json:"cancelledBy,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	AcceptedAt        *time.Time         `json:"acceptedAt,omitempty"`
	StartedAt         *time.Time         `json:"startedAt,omitempty"`
	CompletedAt       *time.Time         `json:"completedAt,omitempty"`
	CancelledAt       *time.Time         `json:"cancelledAt,omitempty"`
}

// AssignedDriver returns the driver id or "" while the trip is unassigned
func (t *Trip) AssignedDriver() string {
	if t.DriverID == nil {
		return ""
	}
	return *t.DriverID
}

// IsAssignedDriver reports whether subjectID is the trip's driver
func (t *Trip) IsAssignedDriver(subjectID string) bool {
	return subjectID != "" && t.AssignedDriver() == subjectID
}

// IsParticipant reports whether subjectID is the requester or the assigned driver
func (t *Trip) IsParticipant(subjectID string) bool {
	return subjectID != "" && (t.RequesterID == subjectID || t.IsAssignedDriver(subjectID))
}

// CanBeViewedBy reports whether id may read the trip or join its room
func (t *Trip) CanBeViewedBy(id Identity) bool {
	return id.Role == RoleAdmin || t.IsParticipant(id.SubjectID)
}

// HasActiveDistress reports whether any incident is still unhandled
func (t *Trip) HasActiveDistress() bool {
	for _, e := range t.DistressHistory {
		if !e.Handled() {
			return true
		}
	}
	return false
}

// CreateTripRequest is the body of POST /trips
type CreateTripRequest struct {
	Origin    Place     `json:"origin"`
	Stops     []Stop    `json:"stops"`
	GroupSize int       `json:"groupSize"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// AcceptTripRequest is the body of PUT /trips/:id/accept
type AcceptTripRequest struct {
	DriverID string `json:"driverId"`
}

// CancelTripRequest is the body of PUT /trips/:id/cancel
type CancelTripRequest struct {
	Reason string `json:"reason"`
}

// RateTripRequest is the body of PUT /trips/:id/rating
type RateTripRequest struct {
	Rating int `json:"rating"`
}

// TripTransition describes one conditional status change applied by the record store.
// The change only happens if the stored status is one of From.
type TripTransition struct {
	TripID          string
	From            []TripStatus
	To              TripStatus
	DriverID        string
	Reason          string
	ActorID         string
	ClearActiveTrip bool
	At              time.Time
}
