package common

type contextKey string

const (
	RequestIDContextKey  contextKey = "request_id"
	IdentityContextKey   contextKey = "identity"
	ClaimsContextKey     contextKey = "claims"
	StartTimeContextKey  contextKey = "__start_time"
	WsSemaphoreKey       contextKey = "ws_semaphore"
	WsUsernameContextKey contextKey = "ws_username"
)
