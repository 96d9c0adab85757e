package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TripRoomRequest is the payload of join-trip and leave-trip.
// Clients may send either a bare trip id string or {"tripId": "..."}.
type TripRoomRequest struct {
	TripID string `json:"tripId"`
}

// UnmarshalJSON accepts both payload shapes
func (r *TripRoomRequest) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.TripID)
	}
	type plain TripRoomRequest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = TripRoomRequest(p)
	return nil
}

// TripRoomAck confirms a join-trip
type TripRoomAck struct {
	TripID string `json:"tripId"`
}

// LocationUpdateRequest is the payload of location-update
type LocationUpdateRequest struct {
	TripID   string      `json:"tripId"`
	Location Coordinates `json:"location"`
}

// LocationUpdatedEvent is broadcast to a trip room for every accepted position.
// Timestamp is assigned by the server.
type LocationUpdatedEvent struct {
	TripID    string      `json:"tripId"`
	Location  Coordinates `json:"location"`
	Geohash   string      `json:"geohash,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SOSRequest is the payload of trigger-sos
type SOSRequest struct {
	TripID   string      `json:"tripId"`
	Location Coordinates `json:"location"`
}

// SOSAlertEvent is broadcast to every admin session for every distress trigger
type SOSAlertEvent struct {
	TripID      string      `json:"tripId"`
	Location    Coordinates `json:"location"`
	Timestamp   time.Time   `json:"timestamp"`
	Seq         int         `json:"seq"`
	TriggeredBy string      `json:"triggeredBy"`
	RequesterID string      `json:"requesterId"`
	DriverID    string      `json:"driverId,omitempty"`
}

// TripUpdatedEvent is broadcast to a trip room after a status change
type TripUpdatedEvent struct {
	TripID    string     `json:"tripId"`
	Status    TripStatus `json:"status"`
	DriverID  string     `json:"driverId,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// TripEvent is the NATS payload for trip lifecycle subjects
type TripEvent struct {
	TripID      string     `json:"tripId"`
	RequesterID string     `json:"requesterId"`
	DriverID    string     `json:"driverId,omitempty"`
	Status      TripStatus `json:"status"`
	ActorID     string     `json:"actorId,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}
