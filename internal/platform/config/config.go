// Package config loads process configuration from the environment. An
// optional .env file is read first; real environment variables win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	strutil "famcard/pkg/platform/strings"
)

// Cache backends.
const (
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
	CacheNone     = "none"
)

// Backend is the case-management backend and its login.
type Backend struct {
	URL         string        `env:"URL"`
	Username    string        `env:"USR"`
	Password    string        `env:"PSW"`
	SnapshotDir string        `env:"SNAPSHOT_DIR"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"120s"`
}

// Pipeline tunes the lookup pipeline.
type Pipeline struct {
	Timeout           time.Duration `env:"PIPELINE_TIMEOUT" envDefault:"30s"`
	EnrichConcurrency int           `env:"ENRICH_CONCURRENCY" envDefault:"0"`
	EligibilityCheck  bool          `env:"ELIGIBILITY_CHECK" envDefault:"false"`
	NeedASPRule       string        `env:"NEED_ASP_RULE" envDefault:"present"`
	AuthRetryAttempts int           `env:"AUTH_RETRY_ATTEMPTS" envDefault:"1"`
	AuthRetryInterval time.Duration `env:"AUTH_RETRY_INTERVAL" envDefault:"500ms"`
	BreakerFailures   int           `env:"BREAKER_FAILURES" envDefault:"5"`
	BreakerOpenFor    time.Duration `env:"BREAKER_OPEN_FOR" envDefault:"30s"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend     string        `env:"CACHE_BACKEND" envDefault:"memory"`
	TTL         time.Duration `env:"CACHE_TTL" envDefault:"12h"`
	RedisURL    string        `env:"REDIS_URL"`
	DatabaseURL string        `env:"DATABASE_URL"`
}

// Audit configures the lookup audit sink. Without brokers events go to the
// log.
type Audit struct {
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic        string   `env:"AUDIT_TOPIC" envDefault:"famcard.audit.lookups"`
}

// Server captures HTTP server and ambient settings.
type Server struct {
	Addr         string `env:"FAMCARD_ADDR" envDefault:":8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Config is the full process configuration.
type Config struct {
	Backend  Backend
	Pipeline Pipeline
	Cache    Cache
	Audit    Audit
	Server   Server
}

// Load reads the optional dotenv files and parses the environment.
func Load(dotenvFiles ...string) (Config, error) {
	if err := loadDotenv(dotenvFiles...); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Audit.KafkaBrokers = strutil.DedupeAndTrim(cfg.Audit.KafkaBrokers)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", f, err)
	}
	return nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	var errs []error
	if c.Backend.SnapshotDir == "" {
		if c.Backend.URL == "" {
			errs = append(errs, errors.New("URL is required unless SNAPSHOT_DIR is set"))
		}
		if c.Backend.Username == "" || c.Backend.Password == "" {
			errs = append(errs, errors.New("USR and PSW are required unless SNAPSHOT_DIR is set"))
		}
	}
	switch strings.ToLower(c.Cache.Backend) {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis cache"))
		}
	case CachePostgres:
		if c.Cache.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend))
	}
	if c.Cache.TTL <= 0 && !strings.EqualFold(c.Cache.Backend, CacheNone) {
		errs = append(errs, errors.New("CACHE_TTL must be positive"))
	}
	if c.Pipeline.Timeout <= 0 {
		errs = append(errs, errors.New("PIPELINE_TIMEOUT must be positive"))
	}
	if c.Pipeline.EnrichConcurrency < 0 {
		errs = append(errs, errors.New("ENRICH_CONCURRENCY must not be negative"))
	}
	if c.Pipeline.AuthRetryAttempts < 1 {
		errs = append(errs, errors.New("AUTH_RETRY_ATTEMPTS must be at least 1"))
	}
	return errors.Join(errs...)
}
