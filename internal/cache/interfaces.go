package cache

type ICache interface {
	// GetRateLimit counts a request for identifier and returns the seconds to wait once the
	// limit is exceeded, zero otherwise.
	GetRateLimit(identifier string, requestsPerMinute int) (int, error)

	Close() error
}
