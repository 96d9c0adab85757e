package models

// Role is the authorization role carried by an authenticated subject
type Role string

const (
	RoleUser   Role = "user"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleDriver || r == RoleAdmin
}

// Identity is the authenticated caller behind a request or realtime session
type Identity struct {
	SubjectID string `json:"subjectId"`
	Role      Role   `json:"role"`
}

// IsAdmin reports whether the identity belongs to a safety monitor
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Driver is the vetting state of a driver account
type Driver struct {
	ID          string `json:"id" db:"id"`
	IsVerified  bool   `json:"isVerified" db:"is_verified"`
	IsSuspended bool   `json:"isSuspended" db:"is_suspended"`
	StrikeCount int    `json:"strikeCount" db:"strike_count"`
}

// CanAcceptTrips reports whether the driver passed vetting and is not suspended
func (d Driver) CanAcceptTrips() bool {
	return d.IsVerified && !d.IsSuspended
}
