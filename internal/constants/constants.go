package constants

// Session and context keys
const (
	SessionCookieName = "goalboard_session"
	ContextKeyUserID  = "user_id"
)

// Password policy
const (
	MinPasswordLength = 12
	// bcrypt truncates anything past 72 bytes
	MaxPasswordLength = 72
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
