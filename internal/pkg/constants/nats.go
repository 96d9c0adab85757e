package constants

// NATS subjects published by the trips service
const (
	SubjectTripCreated   = "trip.created"
	SubjectTripAccepted  = "trip.accepted"
	SubjectTripStarted   = "trip.started"
	SubjectTripCompleted = "trip.completed"
	SubjectTripCancelled = "trip.cancelled"
	SubjectTripSOS       = "trip.sos"
)
