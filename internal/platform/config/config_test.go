// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tutorials/internal/platform/config"
)

/*
TestParse_Defaults verifies default values when only the memory driver is selected.
*/
func TestParse_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", config.DriverMemory)

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.DebugLogging())
}

/*
TestConfig_DebugLogging checks that DEBUG is honoured outside production only.
*/
func TestConfig_DebugLogging(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		debug       string
		expected    bool
	}{
		{"development_debug", "development", "true", true},
		{"development_quiet", "development", "false", false},
		{"production_debug", "production", "true", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORAGE_DRIVER", config.DriverMemory)
			t.Setenv("ENVIRONMENT", tt.environment)
			t.Setenv("DEBUG", tt.debug)

			cfg, err := config.Parse()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.DebugLogging())
		})
	}
}

/*
TestParse_Validation checks the cross-field validation rules.
*/
func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		hasError bool
	}{
		{"postgres_without_url", map[string]string{"STORAGE_DRIVER": "postgres"}, true},
		{"postgres_with_url", map[string]string{"STORAGE_DRIVER": "postgres", "DATABASE_URL": "postgres://localhost/tutorials"}, false},
		{"unknown_driver", map[string]string{"STORAGE_DRIVER": "mongo"}, true},
		{"zero_rate_limit", map[string]string{"STORAGE_DRIVER": "memory", "RATE_LIMIT_RPS": "0"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Parse()
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestConfig_IsOriginAllowed covers exact, wildcard, and rejected origins.
*/
func TestConfig_IsOriginAllowed(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", config.DriverMemory)
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8081,https://tutorials.example.com")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsOriginAllowed("http://localhost:8081"))
	assert.True(t, cfg.IsOriginAllowed("https://tutorials.example.com"))
	assert.False(t, cfg.IsOriginAllowed("http://evil.example.com"))

	cfg.AllowedOrigins = []string{"*"}
	assert.True(t, cfg.IsOriginAllowed("http://anything.example.com"))
}
