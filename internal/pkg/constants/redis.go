package constants

// Redis key formats
const (
	KeyTripLocation = "trip:location:%s" // Format: trip:location:{trip_id}
)
