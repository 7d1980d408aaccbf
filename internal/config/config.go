// Package config loads application settings from YAML, .env and APP_* environment variables.
package config

import (
	"time"

	"github.com/maxviazov/reporting-dashboard/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Reports  ReportsConfig       `mapstructure:"reports"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// PostgresConfig holds connection and pool settings. Credentials come from the environment.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gt=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// ReportsConfig carries the values every report handler is built with.
type ReportsConfig struct {
	PageSize       int           `mapstructure:"page_size" validate:"min=1,max=100"`
	Locale         string        `mapstructure:"locale" validate:"required,bcp47_language_tag"`
	CurrencySymbol string        `mapstructure:"currency_symbol" validate:"required"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout" validate:"gt=0"`
}
