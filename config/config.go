package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	AppName                       string `toml:"app_name" env:"FERN_APP_NAME" env-default:"fern" validate:"required"`
	Port                          int    `toml:"port" env:"FERN_PORT" env-default:"3000" validate:"gt=0,lte=65535"`
	LogLevel                      string `toml:"log_level" env:"FERN_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	PrettyLogs                    bool   `toml:"pretty_logs" env:"FERN_PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int    `toml:"http_server_write_timeout_seconds" env:"FERN_HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int    `toml:"http_server_read_timeout_seconds" env:"FERN_HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int    `toml:"http_server_idle_timeout_seconds" env:"FERN_HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	StartupMaxAttempts            int    `toml:"startup_max_attempts" env:"FERN_STARTUP_MAX_ATTEMPTS" env-default:"5" validate:"gte=1"`

	// Site locale pages are fetched in
	Locale string `toml:"locale" env:"FERN_LOCALE" env-default:"en"`
	// Verify the TLS certificate of the site. The variable keeps the name
	// existing deployments of the scraper set.
	VerifySSL bool `toml:"verify_ssl" env:"IMDBINFO_VERIFY_SSL" env-default:"true"`
	// User agent sent with every page request
	UserAgent string `toml:"user_agent" env:"FERN_USER_AGENT" env-default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
	// Page request timeout
	RequestTimeoutSeconds int `toml:"request_timeout_seconds" env:"FERN_REQUEST_TIMEOUT_SECONDS" env-default:"30" validate:"gt=0"`
	// Largest page body accepted
	MaxResponseBytes int `toml:"max_response_bytes" env:"FERN_MAX_RESPONSE_BYTES" env-default:"10485760" validate:"gt=0"`
	// Page requests per minute and host, 0 disables pacing. Shared through
	// Redis when it is enabled.
	FetchRequestsPerMinute int `toml:"fetch_requests_per_minute" env:"FERN_FETCH_REQUESTS_PER_MINUTE" env-default:"60" validate:"gte=0"`
	FetchBurst             int `toml:"fetch_burst" env:"FERN_FETCH_BURST" env-default:"5" validate:"gte=1"`

	// Result cache
	CacheMaxSize    int `toml:"cache_max_size" env:"FERN_CACHE_MAX_SIZE" env-default:"1000" validate:"gte=0"`
	CacheTTLSeconds int `toml:"cache_ttl_seconds" env:"FERN_CACHE_TTL_SECONDS" env-default:"300" validate:"gte=0"`

	// Redis replaces the in-memory cache when enabled
	RedisEnabled  bool   `toml:"redis_enabled" env:"FERN_REDIS_ENABLED" env-default:"false"`
	RedisHost     string `toml:"redis_host" env:"FERN_REDIS_HOST" env-default:"localhost" validate:"required_if=RedisEnabled true"`
	RedisPort     int    `toml:"redis_port" env:"FERN_REDIS_PORT" env-default:"6379"`
	RedisPassword string `toml:"redis_password" env:"FERN_REDIS_PASSWORD" env-default:""`
	RedisDB       int    `toml:"redis_db" env:"FERN_REDIS_DB" env-default:"0"`

	// Kafka worker
	KafkaBrokers       []string `toml:"kafka_brokers" env:"FERN_KAFKA_BROKERS" env-default:"localhost:9092" validate:"min=1"`
	KafkaInputTopic    string   `toml:"kafka_input_topic" env:"FERN_KAFKA_INPUT_TOPIC" env-default:"raw-documents"`
	KafkaConsumerGroup string   `toml:"kafka_consumer_group" env:"FERN_KAFKA_CONSUMER_GROUP" env-default:"fern-worker"`
	KafkaOutputTopic   string   `toml:"kafka_output_topic" env:"FERN_KAFKA_OUTPUT_TOPIC" env-default:"parsed-records"`
	KafkaErrorTopic    string   `toml:"kafka_error_topic" env:"FERN_KAFKA_ERROR_TOPIC" env-default:"parse-errors"`
	KafkaBatchSize     int      `toml:"kafka_batch_size" env:"FERN_KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout  int      `toml:"kafka_batch_timeout_ms" env:"FERN_KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks  int      `toml:"kafka_required_acks" env:"FERN_KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression   string   `toml:"kafka_compression" env:"FERN_KAFKA_COMPRESSION" env-default:"snappy" validate:"oneof=none gzip snappy lz4 zstd"`

	// Processor
	ProcessorWorkerCount    int `toml:"processor_worker_count" env:"FERN_PROCESSOR_WORKER_COUNT" env-default:"4" validate:"gte=1"`
	ProcessorTimeoutSeconds int `toml:"processor_timeout_seconds" env:"FERN_PROCESSOR_TIMEOUT_SECONDS" env-default:"30" validate:"gte=1"`
}

// CacheTTL returns the configured cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Load builds the config from the env-default tags, then the TOML file at
// path (if path is not empty), then a .env file in the working directory (if
// present), then the environment. A variable set in the environment or .env
// always wins over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := ectoenv.BindEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyFile sets the keys of the TOML file at path whose variable is not set
// in the environment.
func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	values := map[string]any{}
	if err := toml.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	variables := envNames()
	for key := range values {
		if name, ok := variables[key]; ok && os.Getenv(name) != "" {
			delete(values, key)
		}
	}

	remaining, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(remaining, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// envNames maps each TOML key to the variable that overrides it.
func envNames() map[string]string {
	t := reflect.TypeOf(Config{})
	names := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		names[field.Tag.Get("toml")] = field.Tag.Get(ectoenv.ENV_TAG)
	}
	return names
}

// compact trims list entries and drops empty ones, e.g. from "a:9092, b:9092,".
func compact(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
