package constants

// Context keys
const (
	ContextKeyIdentity = "identity"
)

// Authorization header
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)
