// Package config handles configuration for the server component: defaults,
// an optional JSON or YAML file, LANDLEASE_* environment variables (a .env
// file is honoured) and command-line flags, applied in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/landlease/internal/flagx"
)

// Auth modes.
const (
	AuthNone  = "none"
	AuthOwner = "owner"
)

// Config holds runtime settings for the landlease server.
//
// Fields:
//   - GRPCAddress / HTTPAddress: bind addresses; an empty HTTPAddress disables the gateway.
//   - StoreDriver: memory, sqlite, postgres or redis. StoreDSN applies to the SQL drivers.
//   - Redis*: connection settings for the redis driver.
//   - AuthMode: "none" allows every mutation, "owner" requires a JWT whose account owns the record.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - S3*: object storage for snapshot export; an empty S3Bucket disables export.
type Config struct {
	GRPCAddress                 string        `mapstructure:"grpc_address"`
	HTTPAddress                 string        `mapstructure:"http_address"`
	StoreDriver                 string        `mapstructure:"store_driver"`
	StoreDSN                    string        `mapstructure:"store_dsn"`
	RedisAddr                   string        `mapstructure:"redis_addr"`
	RedisPassword               string        `mapstructure:"redis_password"`
	RedisDB                     int           `mapstructure:"redis_db"`
	RedisPrefix                 string        `mapstructure:"redis_prefix"`
	AuthMode                    string        `mapstructure:"auth_mode"`
	SecretKey                   string        `mapstructure:"secret_key"`
	AccessTokenValidityDuration time.Duration `mapstructure:"access_token_validity_duration"`
	S3User                      string        `mapstructure:"s3_user"`
	S3Password                  string        `mapstructure:"s3_password"`
	S3Bucket                    string        `mapstructure:"s3_bucket"`
	S3Region                    string        `mapstructure:"s3_region"`
	S3BaseEndpoint              string        `mapstructure:"s3_base_endpoint"`
	LogLevel                    string        `mapstructure:"log_level"`
	LogFormat                   string        `mapstructure:"log_format"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.GRPCAddress = ":50051"
	c.HTTPAddress = ":8080"
	c.StoreDriver = "sqlite"
	c.StoreDSN = "file:data/landlease.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RedisPrefix = "landlease/"
	c.AuthMode = AuthNone
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthNone, AuthOwner:
	default:
		return fmt.Errorf("unknown auth mode %q", c.AuthMode)
	}
	if c.AuthMode == AuthOwner && c.SecretKey == "" {
		return fmt.Errorf("auth mode %q needs a secret key", c.AuthMode)
	}
	if c.GRPCAddress == "" {
		return fmt.Errorf("grpc address is required")
	}
	return nil
}

// Load builds a Config from defaults, the file named by -c/-config,
// the environment and finally the flags in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	if err := parseFileAndEnv(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
