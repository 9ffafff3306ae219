package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Store    StoreConfig    `envPrefix:"STORE_"`
	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Logger   LoggerConfig   `envPrefix:"LOG_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string   `env:"NAME" envDefault:"innerplog"`
	Env                   string   `env:"ENV" envDefault:"development"`
	Host                  string   `env:"HOST" envDefault:"0.0.0.0"`
	Port                  string   `env:"PORT" envDefault:"8080"`
	Version               string   `env:"VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int      `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	CORSOrigins           []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `env:"DSN"`
	MaxConns       int32  `env:"MAX_CONNS" envDefault:"10"`
	MinConns       int32  `env:"MIN_CONNS" envDefault:"2"`
	RunMigrations  bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
	ConnMaxIdleSec int32  `env:"CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec int32  `env:"CONN_MAX_LIFE_SECONDS" envDefault:"300"`
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string `env:"JWT_SECRET" envDefault:"dev-secret-key-change-in-production"`
	AccessTokenTTLMinutes int    `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"60"`
	BcryptCost            int    `env:"BCRYPT_COST" envDefault:"12"`
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must not be empty"))
	}
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required for the postgres store"))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_TTL_MINUTES must be positive"))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the lifetime of issued access tokens.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}
