// Package config loads settings from the environment, after an optional .env
// file, into one process wide Config.
package config

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"seatq/shared/constant"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Cache    Cache    `envconfig:"CACHE"`
	JWT      JWT      `envconfig:"JWT"`
	Admin    Admin    `envconfig:"ADMIN"`
	Matching Matching `envconfig:"MATCHING"`
	Notifier Notifier `envconfig:"NOTIFIER"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	DB       struct {
		Postgres Postgres `envconfig:"POSTGRES"`
	} `envconfig:"DB"`
	External External `envconfig:"EXTERNAL"`
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required"))
	}

	if !slices.Contains([]string{constant.StoreDriverPostgres, constant.StoreDriverMemory}, c.Matching.StoreDriver) {
		errs = append(errs, fmt.Errorf("unknown MATCHING_STORE_DRIVER %q", c.Matching.StoreDriver))
	}

	if c.Matching.MaxCommitAttempts == 0 {
		errs = append(errs, errors.New("MATCHING_MAX_COMMIT_ATTEMPTS must be at least 1"))
	}

	if c.Kafka.Enable && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLE is set"))
	}

	return errors.Join(errs...)
}

var (
	conf     Config
	loadOnce sync.Once
	loadErr  error
)

// Load reads the environment once. Later calls return the first result.
func Load() (*Config, error) {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Err(err).Msg("no .env file, using process environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("failed to process environment variables: %w", err)

			return
		}

		if err := conf.Validate(); err != nil {
			loadErr = fmt.Errorf("invalid configuration: %w", err)

			return
		}

		log.Info().Str("env", conf.Server.Env).Str("store", conf.Matching.StoreDriver).Msg("configuration loaded")
	})

	return &conf, loadErr
}

// Get is Load for callers that cannot run without configuration.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	return cfg
}
