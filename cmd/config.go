package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/u44592/hni/internal/core/domain/services"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort           string `envconfig:"HTTP_PORT" default:"8080"`
	DBHost             string `envconfig:"DB_HOST"`
	DBPort             string `envconfig:"DB_PORT"`
	DBUser             string `envconfig:"DB_USER"`
	DBPassword         string `envconfig:"DB_PASSWORD"`
	DBName             string `envconfig:"DB_NAME"`
	DBSslMode          string `envconfig:"DB_SSLMODE" default:"disable"`
	GeoServiceGrpcHost string `envconfig:"GEO_SERVICE_GRPC_HOST" required:"true"`

	// RedisAddr selects the shared turn lock; empty means an in-process lock.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	TurnLockTTL   time.Duration `envconfig:"TURN_LOCK_TTL" default:"30s"`

	TimeZone          string  `envconfig:"TIME_ZONE" default:"Local"`
	MaxCandidates     int     `envconfig:"MAX_CANDIDATES" default:"3"`
	SearchRadiusMiles float64 `envconfig:"SEARCH_RADIUS_MILES" default:"3"`

	DraftTTL            time.Duration `envconfig:"DRAFT_TTL" default:"24h"`
	DraftExpirySchedule string        `envconfig:"DRAFT_EXPIRY_SCHEDULE" default:"0 * * * * *"`

	// InboundRate is the number of messages per second accepted per phone.
	InboundRate  float64 `envconfig:"INBOUND_RATE" default:"1"`
	InboundBurst int     `envconfig:"INBOUND_BURST" default:"5"`
}

// LoadConfig reads the process environment, which main fills from .env first.
// Unset optional values get their defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	var errs []error
	if _, err := cfg.Location(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Policy().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Policy() services.ConversationPolicy {
	return services.ConversationPolicy{
		MaxCandidates:     c.MaxCandidates,
		SearchRadiusMiles: c.SearchRadiusMiles,
	}
}

// Location is the time zone menu windows and "today" are evaluated in.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("TIME_ZONE: %w", err)
	}
	return loc, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
