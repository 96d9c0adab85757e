package constants

// WebSocket event types
const (
	EventError = "error"
	EventPing  = "ping"
	EventPong  = "pong"

	// client -> server
	EventJoinTrip       = "join-trip"
	EventLeaveTrip      = "leave-trip"
	EventLocationUpdate = "location-update"
	EventTriggerSOS     = "trigger-sos"

	// server -> client
	EventJoinedTrip      = "joined-trip"
	EventLocationUpdated = "location-updated"
	EventSOSAlert        = "sos-alert"
	EventTripUpdated     = "trip-updated"
)

// WebSocket error codes
const (
	ErrorInvalidFormat    = "invalid_format"
	ErrorValidationFailed = "validation_failed"
	ErrorInvalidState     = "invalid_state"
	ErrorInternalError    = "internal_error"
	ErrorUnknownEvent     = "unknown_event"
)
