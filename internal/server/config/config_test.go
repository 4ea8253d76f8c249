package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func noDotEnv(t *testing.T) {
	t.Helper()
	orig := dotEnvFile
	dotEnvFile = ""
	t.Cleanup(func() { dotEnvFile = orig })
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":50051", c.GRPCAddress)
	assert.Equal(t, ":8080", c.HTTPAddress)
	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.Equal(t, "file:data/landlease.db", c.StoreDSN)
	assert.Equal(t, AuthNone, c.AuthMode)
	assert.Equal(t, 60*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Empty(t, c.S3Bucket)
	require.NoError(t, c.Validate())
}

func TestLoad_NoSourcesKeepsDefaults(t *testing.T) {
	noDotEnv(t)

	c, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestLoad_YAMLFile(t *testing.T) {
	noDotEnv(t)
	path := writeFile(t, "landlease.yaml", `
grpc_address: "127.0.0.1:9000"
store_driver: redis
redis_addr: "redis:6379"
redis_db: 2
auth_mode: owner
access_token_validity_duration: 5m
s3_bucket: snapshots
log_format: text
`)

	c, err := Load([]string{"-c", path})
	require.NoError(t, err)

	want := defaults()
	want.GRPCAddress = "127.0.0.1:9000"
	want.StoreDriver = "redis"
	want.RedisAddr = "redis:6379"
	want.RedisDB = 2
	want.AuthMode = AuthOwner
	want.AccessTokenValidityDuration = 5 * time.Minute
	want.S3Bucket = "snapshots"
	want.LogFormat = "text"
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoad_JSONFile(t *testing.T) {
	noDotEnv(t)
	path := writeFile(t, "landlease.json", `{"store_driver":"postgres","store_dsn":"postgres://u:p@db/landlease","http_address":""}`)

	c, err := Load([]string{"--config=" + path})
	require.NoError(t, err)
	assert.Equal(t, "postgres", c.StoreDriver)
	assert.Equal(t, "postgres://u:p@db/landlease", c.StoreDSN)
	assert.Equal(t, "", c.HTTPAddress)
}

func TestLoad_Precedence(t *testing.T) {
	noDotEnv(t)
	path := writeFile(t, "landlease.yaml", "grpc_address: file:1\nstore_dsn: file.db\ns3_region: eu-west-1\n")

	t.Setenv("LANDLEASE_GRPC_ADDRESS", "env:2")
	t.Setenv("LANDLEASE_STORE_DSN", "env.db")
	t.Setenv("LANDLEASE_ACCESS_TOKEN_VALIDITY_DURATION", "2m")

	c, err := Load([]string{"-c", path, "-a", "flag:3", "-unknown", "x"})
	require.NoError(t, err)

	assert.Equal(t, "flag:3", c.GRPCAddress)
	assert.Equal(t, "env.db", c.StoreDSN)
	assert.Equal(t, "eu-west-1", c.S3Region)
	assert.Equal(t, 2*time.Minute, c.AccessTokenValidityDuration)
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeFile(t, ".env", "LANDLEASE_S3_BUCKET=from-dotenv\nLANDLEASE_LOG_LEVEL=debug\n")
	orig := dotEnvFile
	dotEnvFile = path
	t.Cleanup(func() {
		dotEnvFile = orig
		_ = os.Unsetenv("LANDLEASE_S3_BUCKET")
	})
	t.Setenv("LANDLEASE_LOG_LEVEL", "warn")

	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", c.S3Bucket)
	// real environment wins over .env
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	noDotEnv(t)

	_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = Load([]string{"-m", "everyone"})
	assert.ErrorContains(t, err, "unknown auth mode")

	_, err = Load([]string{"-t", "soon"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"owner with secret", func(c *Config) { c.AuthMode = AuthOwner }, false},
		{"owner without secret", func(c *Config) { c.AuthMode = AuthOwner; c.SecretKey = "" }, true},
		{"bad mode", func(c *Config) { c.AuthMode = "x" }, true},
		{"no grpc address", func(c *Config) { c.GRPCAddress = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
