package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	AES          AESConfig          `mapstructure:"aes"`
	Log          LogConfig          `mapstructure:"log"`
	Verification VerificationConfig `mapstructure:"verification"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key sealing endpoint secrets
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// VerificationConfig controls webhook verification behaviour.
type VerificationConfig struct {
	// DefaultToleranceSeconds applies to endpoints without their own window.
	DefaultToleranceSeconds int `mapstructure:"default_tolerance_seconds"`
	// AllowUnknownPlatforms lets endpoints with an unrecognised platform pass unchecked.
	AllowUnknownPlatforms bool  `mapstructure:"allow_unknown_platforms"`
	MaxBodyBytes          int64 `mapstructure:"max_body_bytes"`
	// DeliveryTTL is how long a delivery id is remembered for de-duplication.
	DeliveryTTL time.Duration `mapstructure:"delivery_ttl"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: HKV_ (hook verifier).
// Nested keys use underscore: HKV_DATABASE_HOST, HKV_VERIFICATION_DELIVERY_TTL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "webhook_verifier")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("verification.default_tolerance_seconds", 300)
	v.SetDefault("verification.allow_unknown_platforms", false)
	v.SetDefault("verification.max_body_bytes", 1<<20)
	v.SetDefault("verification.delivery_ttl", "24h")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: HKV_DATABASE_HOST -> database.host
	v.SetEnvPrefix("HKV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if len(c.AES.Key) != 64 {
		errs = append(errs, errors.New("aes.key must be 64 hex characters"))
	}
	if c.Verification.DefaultToleranceSeconds <= 0 {
		errs = append(errs, errors.New("verification.default_tolerance_seconds must be positive"))
	}
	if c.Verification.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("verification.max_body_bytes must be positive"))
	}
	if c.Verification.DeliveryTTL <= 0 {
		errs = append(errs, errors.New("verification.delivery_ttl must be positive"))
	}
	return errors.Join(errs...)
}
