package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *Config {
	return &Config{
		Port:       "8080",
		Env:        "development",
		JWTSecret:  "a-development-secret-that-is-long-enough",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "user",
		DBPassword: "password",
		DBName:     "draftly",
		DBSSLMode:  "disable",
		RedisURL:   "localhost:6379",
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "draftly", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9999")
	t.Setenv("DB_NAME", "draftly_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "draftly_test", cfg.DBName)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid development config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "production with default secret",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			wantErr: "changed from the default",
		},
		{
			name: "production with short secret",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "short"
			},
			wantErr: "at least 32 characters",
		},
		{
			name: "production with weak db password",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = strings.Repeat("x", 32)
				c.DBPassword = "password"
			},
			wantErr: "strong DB_PASSWORD",
		},
		{
			name: "valid production config",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = strings.Repeat("x", 32)
				c.DBPassword = "s3cure-and-unique"
				c.DBSSLMode = "require"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
