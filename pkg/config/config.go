package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable consumed by the platform.
	EnvPrefix = "SOLAROPS"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Config aggregates every tunable the scheduling platform reads from the environment.
type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Matcher   MatcherConfig
	Cron      CronConfig
	Outbox    OutboxConfig
	GCP       GCPConfig
	PubSub    PubSubConfig
	CORS      CORSConfig
	Scheduler SchedulerConfig
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("SOLAROPS_DB_DSN is required")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOLAROPS_APP_ENV" required:"true"`
	Port         string `envconfig:"SOLAROPS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SOLAROPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOLAROPS_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"SOLAROPS_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN             string        `envconfig:"SOLAROPS_DB_DSN"`
	MaxOpenConns    int           `envconfig:"SOLAROPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOLAROPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOLAROPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOLAROPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOLAROPS_REDIS_URL"`
	Address      string        `envconfig:"SOLAROPS_REDIS_ADDR"`
	Password     string        `envconfig:"SOLAROPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOLAROPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOLAROPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOLAROPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOLAROPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOLAROPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOLAROPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// MatcherConfig tunes the slot matcher's proposal pass.
type MatcherConfig struct {
	LookaheadDays int `envconfig:"SOLAROPS_MATCHER_LOOKAHEAD_DAYS" default:"14"`
	MaxProposals  int `envconfig:"SOLAROPS_MATCHER_MAX_PROPOSALS" default:"3"`
}

// SchedulerConfig bounds the proposal expiry policy enforced by the cron worker.
type SchedulerConfig struct {
	ProposalTTLDays       int `envconfig:"SOLAROPS_PROPOSAL_TTL_DAYS" default:"14"`
	OutboxRetentionDays   int `envconfig:"SOLAROPS_OUTBOX_RETENTION_DAYS" default:"30"`
	UpcomingInstallsLimit int `envconfig:"SOLAROPS_UPCOMING_INSTALLS_LIMIT" default:"100"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"SOLAROPS_CRON_INTERVAL" default:"1h"`
	LockKey  string        `envconfig:"SOLAROPS_CRON_LOCK_KEY" default:"solarops:cron:lock"`
	LockTTL  time.Duration `envconfig:"SOLAROPS_CRON_LOCK_TTL" default:"55m"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"SOLAROPS_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"SOLAROPS_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"SOLAROPS_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"SOLAROPS_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	NotificationTopic string `envconfig:"SOLAROPS_PUBSUB_NOTIFICATION_TOPIC" default:"solarops-schedule-events"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SOLAROPS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
