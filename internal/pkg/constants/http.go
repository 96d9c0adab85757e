package constants

// Echo context keys set by the JWT middleware
const (
	ContextKeyIdentity = "identity"
	ContextKeyUserID   = "user_id"
	ContextKeyRole     = "user_role"
)
