package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	FeatureFlags  FeatureFlagsConfig
	Shipping      ShippingConfig
	Consolidation ConsolidationConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SIVER_APP_ENV" required:"true"`
	Port         string `envconfig:"SIVER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SIVER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SIVER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SIVER_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SIVER_DB_DSN"`
	Driver string `envconfig:"SIVER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SIVER_DB_HOST"`
	LegacyPort     int    `envconfig:"SIVER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SIVER_DB_USER"`
	LegacyPassword string `envconfig:"SIVER_DB_PASSWORD"`
	LegacyName     string `envconfig:"SIVER_DB_NAME"`
	LegacySSLMode  string `envconfig:"SIVER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SIVER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SIVER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SIVER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SIVER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN backfills DSN from the legacy discrete variables when unset.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Driver == "sqlite" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either SIVER_DB_DSN or SIVER_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.LegacyUser),
		url.QueryEscape(d.LegacyPassword),
		d.LegacyHost,
		d.LegacyPort,
		d.LegacyName,
		d.LegacySSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SIVER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SIVER_REDIS_ADDR"`
	Password     string        `envconfig:"SIVER_REDIS_PASSWORD"`
	DB           int           `envconfig:"SIVER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SIVER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SIVER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SIVER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SIVER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SIVER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SIVER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SIVER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SIVER_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SIVER_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SIVER_AUTO_MIGRATE" default:"false"`
}

type ShippingConfig struct {
	RateCacheTTL time.Duration `envconfig:"SIVER_SHIPPING_RATE_CACHE_TTL" default:"5m"`
}

type ConsolidationConfig struct {
	CronInterval   time.Duration `envconfig:"SIVER_CONSOLIDATION_CRON_INTERVAL" default:"5m"`
	IdempotencyTTL time.Duration `envconfig:"SIVER_CONSOLIDATION_IDEMPOTENCY_TTL" default:"168h"`
	RetentionDays  int           `envconfig:"SIVER_OUTBOX_RETENTION_DAYS" default:"30"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SIVER_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SIVER_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SIVER_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	LogisticsTopic        string `envconfig:"SIVER_PUBSUB_LOGISTICS_TOPIC" default:"sv-logistics-events"`
	LogisticsSubscription string `envconfig:"SIVER_PUBSUB_LOGISTICS_SUBSCRIPTION"`
	OrdersTopic           string `envconfig:"SIVER_PUBSUB_ORDERS_TOPIC" default:"sv-order-events"`
	OrdersSubscription    string `envconfig:"SIVER_PUBSUB_ORDERS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"SIVER_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"SIVER_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"SIVER_OUTBOX_MAX_ATTEMPTS" default:"10"`
}
