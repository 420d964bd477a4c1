package constants

// Context keys
const (
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"
	SessionKeyToken     = "token"
)

// Session and header names
const (
	SessionCookieName = "todo_session"
	HeaderRequestID   = "X-Request-Id"
	HeaderTotalCount  = "X-Total-Count"
	BearerPrefix      = "Bearer "
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

// Validation limits
const (
	MinUsernameLength    = 2
	MaxUsernameLength    = 100
	MinPasswordLength    = 8
	MaxPasswordLength    = 60
	MaxPasswordBytes     = 72
	MaxDescriptionLength = 255
	MaxSuggestionText    = 4000
	MaxSuggestedTasks    = 20
)
