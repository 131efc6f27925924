package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user's ID.
	ContextKeyUserID = "user_id"

	MinPasswordLength = 8

	DefaultPageSize = 10
	MaxPageSize     = 100
)
