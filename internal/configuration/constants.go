package configuration

import "time"

const AppName = "cds-badge"

const (
	DefaultDatabaseWorkers = 12
	DefaultQueueFactor     = 4
	DefaultCommandTimeout  = 5 * time.Second
	DefaultRunEventsTopic  = "cds.events"
)

const (
	CacheAppRateLimitKey = "badge:ratelimit:%s"
	RateLimitWindow      = time.Minute
)

// EventsRunEvents is the queue key the run consumer subscribes to.
const EventsRunEvents = "run_events"

// Messaging provider types.
const (
	ProviderKafka     = "kafka"
	ProviderJetstream = "jetstream"
	ProviderGCP       = "gcp"
	ProviderAWS       = "aws"
	ProviderMemory    = "memory"
)

// Database types.
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// Cache types.
const (
	CacheNone   = "none"
	CacheRedis  = "redis"
	CacheValkey = "valkey"
)

// RunAuthHeader carries the base64 encoded service token on write requests.
const RunAuthHeader = "X_AUTH_HEADER"

// BadgeSubject is the left-hand label of every badge.
const BadgeSubject = "CDS"

var ArrayConfigFields = []string{
	"app.allowed_origins",
	"app.trusted_proxies",
	"cache.redis.hosts",
	"cache.valkey.hosts",
	"events.kafka.brokers",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
