package models

// BodyKey holds the validated request body in the request context.
type BodyKey struct{}

// LoggerKey holds the request-scoped logger in the request context.
type LoggerKey struct{}
