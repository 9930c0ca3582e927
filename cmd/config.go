package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the basket service. Values come from, in
// increasing priority: DefaultConfig, the YAML file, a .env file, and the environment.
type Config struct {
	HTTPPort string       `yaml:"http_port"`
	LogLevel string       `yaml:"log_level"`
	DB       DBConfig     `yaml:"db"`
	Kafka    KafkaConfig  `yaml:"kafka"`
	Basket   BasketConfig `yaml:"basket"`
	Jobs     JobsConfig   `yaml:"jobs"`
}

// DBConfig holds the PostgreSQL connection and pool settings.
type DBConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SslMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// KafkaConfig holds a comma separated broker list and the topic order events go to.
type KafkaConfig struct {
	Host              string `yaml:"host"`
	OrderChangedTopic string `yaml:"order_changed_topic"`
}

// BasketConfig tunes the basket service and the currency cache.
type BasketConfig struct {
	OperationTimeout  time.Duration `yaml:"operation_timeout"`
	VatRate           string        `yaml:"vat_rate"`
	CurrencyCacheSize int           `yaml:"currency_cache_size"`
	CurrencyCacheTTL  time.Duration `yaml:"currency_cache_ttl"`
}

// JobsConfig holds the cron schedules of the background jobs.
// Schedules use six fields with seconds first.
type JobsConfig struct {
	OutboxRelaySchedule     string        `yaml:"outbox_relay_schedule"`
	OutboxBatchSize         int           `yaml:"outbox_batch_size"`
	CurrencyRefreshSchedule string        `yaml:"currency_refresh_schedule"`
	Timeout                 time.Duration `yaml:"timeout"`
}

// DefaultConfig returns settings suitable for a local docker-compose setup.
func DefaultConfig() Config {
	return Config{
		HTTPPort: "8080",
		LogLevel: "info",
		DB: DBConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "basket",
			SslMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Kafka: KafkaConfig{
			OrderChangedTopic: "basket.order.changed",
		},
		Basket: BasketConfig{
			OperationTimeout:  5 * time.Second,
			VatRate:           "0.20",
			CurrencyCacheSize: 64,
			CurrencyCacheTTL:  10 * time.Minute,
		},
		Jobs: JobsConfig{
			OutboxRelaySchedule:     "*/2 * * * * *",
			OutboxBatchSize:         100,
			CurrencyRefreshSchedule: "0 */5 * * * *",
			Timeout:                 10 * time.Second,
		},
	}
}

// LoadConfig builds the configuration. A missing YAML file or .env file is not an error.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			if err = yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"HTTP_PORT":                 &c.HTTPPort,
		"LOG_LEVEL":                 &c.LogLevel,
		"DB_HOST":                   &c.DB.Host,
		"DB_PORT":                   &c.DB.Port,
		"DB_USER":                   &c.DB.User,
		"DB_PASSWORD":               &c.DB.Password,
		"DB_NAME":                   &c.DB.Name,
		"DB_SSLMODE":                &c.DB.SslMode,
		"KAFKA_HOST":                &c.Kafka.Host,
		"KAFKA_ORDER_CHANGED_TOPIC": &c.Kafka.OrderChangedTopic,
		"BASKET_VAT_RATE":           &c.Basket.VatRate,
		"OUTBOX_RELAY_SCHEDULE":     &c.Jobs.OutboxRelaySchedule,
		"CURRENCY_REFRESH_SCHEDULE": &c.Jobs.CurrencyRefreshSchedule,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"DB_MAX_OPEN_CONNS":          &c.DB.MaxOpenConns,
		"DB_MAX_IDLE_CONNS":          &c.DB.MaxIdleConns,
		"BASKET_CURRENCY_CACHE_SIZE": &c.Basket.CurrencyCacheSize,
		"OUTBOX_BATCH_SIZE":          &c.Jobs.OutboxBatchSize,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"DB_CONN_MAX_LIFETIME":      &c.DB.ConnMaxLifetime,
		"BASKET_OPERATION_TIMEOUT":  &c.Basket.OperationTimeout,
		"BASKET_CURRENCY_CACHE_TTL": &c.Basket.CurrencyCacheTTL,
		"JOBS_TIMEOUT":              &c.Jobs.Timeout,
	}
	for key, dst := range durations {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	return nil
}

// Validate reports every missing or out of range setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http port is required"))
	}
	if c.DB.Host == "" || c.DB.Name == "" || c.DB.User == "" {
		errs = append(errs, errors.New("db host, name and user are required"))
	}
	if c.Basket.OperationTimeout <= 0 {
		errs = append(errs, errors.New("basket operation timeout must be positive"))
	}
	if c.Basket.CurrencyCacheSize <= 0 {
		errs = append(errs, errors.New("currency cache size must be positive"))
	}
	if c.Jobs.OutboxBatchSize <= 0 {
		errs = append(errs, errors.New("outbox batch size must be positive"))
	}
	if c.Jobs.Timeout <= 0 {
		errs = append(errs, errors.New("jobs timeout must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DSN is the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SslMode)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
