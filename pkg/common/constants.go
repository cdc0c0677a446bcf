package common

const (
	RequestIDHeader     = "X-Request-Id"
	AuthorizationHeader = "Authorization"

	RateLimitLimitHeader     = "X-Ratelimit-Limit"
	RateLimitRemainingHeader = "X-Ratelimit-Remaining"
	RateLimitResetHeader     = "X-Ratelimit-Reset"
	RetryAfterHeader         = "Retry-After"

	BearerScheme = "Bearer"

	WebsocketPath = "/ws"
	MetricsPath   = "/metrics"
)
