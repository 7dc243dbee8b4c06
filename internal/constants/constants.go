package constants

import "time"

// Context keys
const (
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"
)

// Session
const (
	SessionCookieName = "agendapp_session"
	SessionKeyToken   = "token"
	SessionMaxAge     = 48 * time.Hour
)

// Header names
const (
	HeaderRequestID     = "X-Request-Id"
	HeaderAuthorization = "Authorization"
)

// Validation limits
const (
	MinPasswordLength = 4
	MaxPasswordLength = 255
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AI
const (
	MaxSuggestedTasks = 10
)
