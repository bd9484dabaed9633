package apierrors

// HTTP 400 Bad Request.
const (
	ErrInvalidDateRange   = "INVALID_DATE_RANGE"
	ErrEmotionParseFailed = "EMOTION_PARSE_FAILED"
)

// HTTP 401 Unauthorized.
const (
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
)

// HTTP 404 Not Found.
const (
	ErrUserNotFound    = "USER_NOT_FOUND"
	ErrPostNotFound    = "POST_NOT_FOUND"
	ErrSessionNotFound = "SESSION_NOT_FOUND"
)

// HTTP 429 Too Many Requests.
const (
	ErrLoginRateLimited = "LOGIN_RATE_LIMITED"
)

// HTTP 502 Bad Gateway.
const (
	ErrEmotionUpstream = "EMOTION_UPSTREAM_FAILED"
)
