package configuration

import (
	"os"
	"strings"
	"time"

	"badge/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func parseArrayFields(k *koanf.Koanf) {
	for _, field := range ArrayConfigFields {
		if stringVal := k.String(field); stringVal != "" {
			stringVal = strings.Trim(stringVal, "[]")
			var items []string
			if strings.Contains(stringVal, ",") {
				items = strings.Split(stringVal, ",")
			} else {
				items = strings.Fields(stringVal)
			}
			for i, item := range items {
				items[i] = strings.TrimSpace(item)
			}
			err := k.Set(field, items)
			if err != nil {
				zap.L().
					Error("Error parsing array field", zap.String("field", field), zap.Error(err))
			}
		}
	}
}

func readEnvVars(k *koanf.Koanf) {
	err := k.Load(env.Provider("", ".", func(s string) string {
		s = strings.ToLower(s)
		segments := strings.Split(s, "__")
		return strings.Join(segments, ".")
	}), nil)
	if err != nil {
		zap.L().Warn("Error loading environment variables", zap.Error(err))
	}

	parseArrayFields(k)
}

func readFileConfig(k *koanf.Koanf) error {
	configFilePath := os.Getenv("CONFIG_FILE_PATH")
	var filePath string
	if configFilePath == "" {
		for _, path := range ConfigFileSearchPaths {
			if _, err := os.Stat(path); err == nil {
				filePath = path
				break
			}
		}
	} else {
		filePath = configFilePath
	}

	if filePath == "" {
		zap.L().Warn("No configuration file found")
		return nil
	}

	if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
		return err
	}
	zap.L().Info("Read configuration from file " + filePath)
	return nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]interface{}{
		"app.profile":         ProfileDefault,
		"app.version":         "snapshot",
		"app.log_level":       "info",
		"app.port":            8080,
		"app.allowed_origins": []string{"*"},

		"app.tracing.sample_ratio": 1.0,

		"database.type":            "postgres",
		"database.port":            int32(5432),
		"database.workers":         DefaultDatabaseWorkers,
		"database.command_timeout": DefaultCommandTimeout,
		"database.health_interval": 30 * time.Second,

		"cache.type":                  "none",
		"cache.rate_limit_per_minute": 0,

		"events.queues": map[string]interface{}{
			EventsRunEvents: map[string]interface{}{"name": DefaultRunEventsTopic},
		},
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

func setIfMissing(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		_ = k.Set(key, value)
	}
}

func loadConditionalDefaults(k *koanf.Koanf) {
	// The api profile never subscribes, so it needs no broker.
	if k.String("app.profile") == ProfileAPI {
		setIfMissing(k, "events.type", ProviderMemory)
	}
	if k.String("events.type") == ProviderKafka {
		setIfMissing(k, "events.kafka.consumer_group", AppName)
		setIfMissing(k, "events.kafka.nack_resend_sleep", time.Second)
	}
	if k.String("events.type") == ProviderGCP {
		setIfMissing(k, "events.gcp.subscription_suffix", "-sub")
	}
	if k.String("database.type") == DatabaseSQLite {
		setIfMissing(k, "database.sqlite.path", AppName+".db")
	}
	if !k.Exists("database.queue_size") {
		_ = k.Set("database.queue_size", k.Int("database.workers")*DefaultQueueFactor)
	}
}

// Load builds the configuration from defaults, the optional YAML file and the environment.
func Load() (models.Configuration, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return models.Configuration{}, err
	}
	if err := readFileConfig(k); err != nil {
		return models.Configuration{}, err
	}
	readEnvVars(k)
	loadConditionalDefaults(k)

	var config models.Configuration
	err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "mapstructure"})
	if err != nil {
		return models.Configuration{}, err
	}

	validate := validator.New()
	if err = validate.Struct(config); err != nil {
		return models.Configuration{}, err
	}

	return config, nil
}

func Read() models.Configuration {
	config, err := Load()
	if err != nil {
		zap.L().Fatal("Invalid configuration", zap.Error(err))
	}
	return config
}
