package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"badge/internal/configuration"
	"badge/internal/models"

	"github.com/redis/rueidis"
)

type RueidisCache struct {
	client rueidis.Client
}

var _ ICache = (*RueidisCache)(nil)

func NewRedisCache(config *models.RedisCacheConfiguration) (*RueidisCache, error) {
	return newRueidisCache(config.Hosts, config.Password, config.TLSEnabled, config.TLSServerName, "redis")
}

func NewValkeyCache(config *models.ValkeyCacheConfiguration) (*RueidisCache, error) {
	return newRueidisCache(config.Hosts, config.Password, config.TLSEnabled, config.TLSServerName, "valkey")
}

// NewRueidisCacheFromClient wraps an existing client.
func NewRueidisCacheFromClient(client rueidis.Client) *RueidisCache {
	return &RueidisCache{client: client}
}

func newRueidisCache(
	hosts []string,
	password string,
	tlsEnabled bool,
	tlsServerName,
	errorContext string,
) (*RueidisCache, error) {
	clientOption := rueidis.ClientOption{
		InitAddress: hosts,
		Password:    password,
	}

	if tlsEnabled {
		clientOption.TLSConfig = &tls.Config{
			ServerName: tlsServerName,
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := rueidis.NewClient(clientOption)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", errorContext, err)
	}
	return &RueidisCache{client: client}, nil
}

func (r *RueidisCache) GetRateLimit(identifier string, requestsPerMinute int) (int, error) {
	ctx := context.Background()

	key := fmt.Sprintf(configuration.CacheAppRateLimitKey, identifier)
	count, err := r.client.Do(ctx, r.client.B().Incr().Key(key).Build()).AsInt64()
	if err != nil {
		return 0, err
	}

	if count == 1 {
		if err = r.expire(ctx, key); err != nil {
			return 0, err
		}
	}

	if int(count) > requestsPerMinute {
		retryAfter, ttlErr := r.client.Do(ctx, r.client.B().Ttl().Key(key).Build()).AsInt64()
		if ttlErr != nil {
			return 0, ttlErr
		}
		// -1 means the first EXPIRE never landed; start a fresh window.
		if retryAfter == -1 {
			if err = r.expire(ctx, key); err != nil {
				return 0, err
			}
			retryAfter = int64(configuration.RateLimitWindow / time.Second)
		}
		return max(int(retryAfter), 1), nil
	}

	return 0, nil
}

func (r *RueidisCache) expire(ctx context.Context, key string) error {
	window := int64(configuration.RateLimitWindow / time.Second)
	return r.client.Do(ctx, r.client.B().Expire().Key(key).Seconds(window).Build()).Error()
}

func (r *RueidisCache) Close() error {
	r.client.Close()
	return nil
}
