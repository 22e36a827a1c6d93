package models

import (
	"fmt"
	"time"
)

type Configuration struct {
	App      AppConfiguration      `mapstructure:"app"      validate:"required"`
	Database DatabaseConfiguration `mapstructure:"database" validate:"required"`
	Cache    CacheConfiguration    `mapstructure:"cache"    validate:"required"`
	Events   EventsConfiguration   `mapstructure:"events"   validate:"required"`
}

type AppConfiguration struct {
	Profile        string                 `mapstructure:"profile"         validate:"oneof=default api worker"`
	Version        string                 `mapstructure:"version"`
	LogLevel       string                 `mapstructure:"log_level"       validate:"oneof=debug info warn error fatal panic"`
	Host           string                 `mapstructure:"host"`
	Port           int                    `mapstructure:"port"            validate:"gte=80,lte=65535"`
	AllowedOrigins []string               `mapstructure:"allowed_origins" validate:"required"`
	TrustedProxies []string               `mapstructure:"trusted_proxies"`
	RunTokenHash   string                 `mapstructure:"run_token_hash"`
	Tracing        TracingConfiguration   `mapstructure:"tracing"`
	Profiling      ProfilingConfiguration `mapstructure:"profiling"`
}

type TracingConfiguration struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"     validate:"required_if=Enabled true"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

type ProfilingConfiguration struct {
	Enabled       bool   `mapstructure:"enabled"`
	ServerAddress string `mapstructure:"server_address" validate:"required_if=Enabled true"`
}

type DatabaseConfiguration struct {
	Type           string               `mapstructure:"type"            validate:"required,oneof=postgres sqlite"`
	DSN            string               `mapstructure:"dsn"`
	Host           string               `mapstructure:"host"`
	Port           int32                `mapstructure:"port"            validate:"gte=1,lte=65535"`
	User           string               `mapstructure:"user"`
	Password       string               `mapstructure:"password"`
	Name           string               `mapstructure:"name"`
	SSLMode        string               `mapstructure:"sslmode"`
	SQLite         *SQLiteConfiguration `mapstructure:"sqlite"          validate:"required_if=Type sqlite"`
	Workers        int                  `mapstructure:"workers"         validate:"gte=1,lte=256"`
	QueueSize      int                  `mapstructure:"queue_size"      validate:"gte=0"`
	CommandTimeout time.Duration        `mapstructure:"command_timeout" validate:"gt=0"`
	HealthInterval time.Duration        `mapstructure:"health_interval" validate:"gt=0"`
}

type SQLiteConfiguration struct {
	Path string `mapstructure:"path" validate:"required"`
}

// PostgresDSN builds a keyword/value connection string unless an explicit DSN is set.
func (c DatabaseConfiguration) PostgresDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode,
	)
}

type CacheConfiguration struct {
	Type               string                    `mapstructure:"type"                  validate:"required,oneof=none redis valkey"`
	Redis              *RedisCacheConfiguration  `mapstructure:"redis"                 validate:"required_if=Type redis"`
	Valkey             *ValkeyCacheConfiguration `mapstructure:"valkey"                validate:"required_if=Type valkey"`
	RateLimitPerMinute int                       `mapstructure:"rate_limit_per_minute" validate:"gte=0"`
}

type RedisCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required,min=1"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type ValkeyCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required,min=1"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type QueueConfig struct {
	Name string `mapstructure:"name" validate:"required"`
}

type EventsConfiguration struct {
	Type      string                 `mapstructure:"type"      validate:"required,oneof=kafka jetstream gcp aws memory"`
	Queues    map[string]QueueConfig `mapstructure:"queues"    validate:"required,dive"`
	Kafka     *KafkaEventsConfig     `mapstructure:"kafka"     validate:"required_if=Type kafka"`
	Jetstream *JetStreamEventsConfig `mapstructure:"jetstream" validate:"required_if=Type jetstream"`
	PubSub    *PubSubConfiguration   `mapstructure:"gcp"       validate:"required_if=Type gcp"`
}

type KafkaEventsConfig struct {
	Brokers         []string      `mapstructure:"brokers"           validate:"required,min=1"`
	ConsumerGroup   string        `mapstructure:"consumer_group"    validate:"required"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	TLSEnabled      bool          `mapstructure:"tls_enabled"`
	Version         string        `mapstructure:"version"`
	NackResendSleep time.Duration `mapstructure:"nack_resend_sleep"`
}

type PubSubConfiguration struct {
	ProjectID          string `mapstructure:"project_id"          validate:"required"`
	SubscriptionSuffix string `mapstructure:"subscription_suffix"`
}

type JetStreamEventsConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port string `mapstructure:"port" validate:"required"`
}
