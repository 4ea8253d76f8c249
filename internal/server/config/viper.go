package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LANDLEASE"

var dotEnvFile = ".env"

// loadDotEnv exports the variables of path into the process environment
// without overriding ones already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseFileAndEnv overlays cfg with the optional config file and with
// LANDLEASE_<KEY> environment variables. The file format follows its
// extension (.json, .yaml, .yml).
func parseFileAndEnv(cfg *Config, path string) error {
	v := viper.New()

	// every key needs a default for AutomaticEnv to see it
	for key, value := range asMap(cfg) {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func asMap(c *Config) map[string]any {
	return map[string]any{
		"grpc_address":                   c.GRPCAddress,
		"http_address":                   c.HTTPAddress,
		"store_driver":                   c.StoreDriver,
		"store_dsn":                      c.StoreDSN,
		"redis_addr":                     c.RedisAddr,
		"redis_password":                 c.RedisPassword,
		"redis_db":                       c.RedisDB,
		"redis_prefix":                   c.RedisPrefix,
		"auth_mode":                      c.AuthMode,
		"secret_key":                     c.SecretKey,
		"access_token_validity_duration": c.AccessTokenValidityDuration,
		"s3_user":                        c.S3User,
		"s3_password":                    c.S3Password,
		"s3_bucket":                      c.S3Bucket,
		"s3_region":                      c.S3Region,
		"s3_base_endpoint":               c.S3BaseEndpoint,
		"log_level":                      c.LogLevel,
		"log_format":                     c.LogFormat,
	}
}
