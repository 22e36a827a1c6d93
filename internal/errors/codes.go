package apierrors

// HTTP 400 Bad Request.
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
)

// HTTP 401 Unauthorized.
const (
	CodeUnauthorized = "UNAUTHORIZED"
)

// HTTP 404 Not Found.
const (
	CodeNoRunAvailable = "NO_RUN_AVAILABLE"
)

// HTTP 429 Too Many Requests.
const (
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
)

// HTTP 5xx.
const (
	CodeDatabaseError       = "DATABASE_ERROR"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)
