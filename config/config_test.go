package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8081",
			BaseURL:        "https://cybermentor.me",
			AllowedOrigins: []string{"https://cybermentor.me"},
		},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/cybermentor"},
		Notifier: NotifierConfig{EndpointURL: "http://localhost:8082"},
		ContactPolicy: ContactPolicyConfig{
			MessageMinLength:  120,
			DailyRequestLimit: 3,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database URL",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "PORT is required",
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.Server.BaseURL = "" },
			wantErr: "BASE_URL is required",
		},
		{
			name:    "missing CORS origins",
			mutate:  func(c *Config) { c.Server.AllowedOrigins = nil },
			wantErr: "ALLOWED_CORS_ORIGINS is required",
		},
		{
			name:    "missing notifier endpoint",
			mutate:  func(c *Config) { c.Notifier.EndpointURL = "" },
			wantErr: "NOTIFIER_ENDPOINT_URL is required",
		},
		{
			name:    "non-positive message minimum",
			mutate:  func(c *Config) { c.ContactPolicy.MessageMinLength = 0 },
			wantErr: "CONTACT_MESSAGE_MIN_LENGTH must be positive",
		},
		{
			name:    "non-positive daily limit",
			mutate:  func(c *Config) { c.ContactPolicy.DailyRequestLimit = 0 },
			wantErr: "CONTACT_DAILY_REQUEST_LIMIT must be positive",
		},
		{
			name:    "profiling enabled without endpoint",
			mutate:  func(c *Config) { c.Profiling.Enabled = true },
			wantErr: "O11Y_PROFILING_ENDPOINT is required when profiling is enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: true,
		},
		{
			name: "debug gin mode",
			config: &Config{
				Server: ServerConfig{GinMode: "debug"},
			},
			expected: true,
		},
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production", GinMode: "release"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Server: ServerConfig{AppEnv: "production"}}).IsProduction())
	assert.False(t, (&Config{Server: ServerConfig{AppEnv: "development"}}).IsProduction())
	assert.False(t, (&Config{Server: ServerConfig{AppEnv: "staging"}}).IsProduction())
}
