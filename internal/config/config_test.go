package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvVars lists every variable Load reads, so each test starts clean.
var configEnvVars = []string{
	"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
	"TIMEOUT_GLOBAL_SEARCH", "TIMEOUT_PER_PROVIDER",
	"LOG_LEVEL", "LOG_FORMAT", "APP_ENV",
	"AMADEUS_BASE_URL", "AMADEUS_CLIENT_ID", "AMADEUS_CLIENT_SECRET", "AMADEUS_MAX_OFFERS",
	"SERPAPI_BASE_URL", "SERPAPI_API_KEY",
	"SKYSCANNER_BASE_URL", "SKYSCANNER_API_KEY", "SKYSCANNER_API_HOST",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

func resetEnv(t *testing.T) {
	t.Helper()
	for _, v := range configEnvVars {
		os.Unsetenv(v)
	}
}

func loadWith(t *testing.T, vars map[string]string) (*Config, error) {
	t.Helper()
	resetEnv(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
	return Load()
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadWith(t, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "10s", cfg.Server.ReadTimeout.String())
	assert.Equal(t, "45s", cfg.Server.WriteTimeout.String())

	assert.Equal(t, "30s", cfg.Timeouts.GlobalSearch.String())
	assert.Equal(t, "12s", cfg.Timeouts.PerProvider.String())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "development", cfg.App.Env)

	assert.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.BaseURL)
	assert.Empty(t, cfg.Amadeus.ClientID, "amadeus credentials unset by default")
	assert.Equal(t, 50, cfg.Amadeus.MaxOffers)
	assert.Equal(t, "https://serpapi.com", cfg.SerpAPI.BaseURL)
	assert.Equal(t, "skyscanner89.p.rapidapi.com", cfg.Skyscanner.Host)

	assert.Empty(t, cfg.Cache.RedisAddr, "cache disabled by default")
	assert.Equal(t, "2m0s", cfg.Cache.TTL.String())

	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{
		"SERVER_PORT":           "3000",
		"SERVER_READ_TIMEOUT":   "1m30s",
		"TIMEOUT_GLOBAL_SEARCH": "10s",
		"TIMEOUT_PER_PROVIDER":  "3s",
		"LOG_LEVEL":             "debug",
		"LOG_FORMAT":            "console",
		"APP_ENV":               "production",
		"REDIS_ADDR":            "localhost:6379",
	})
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "1m30s", cfg.Server.ReadTimeout.String())
	assert.Equal(t, "10s", cfg.Timeouts.GlobalSearch.String())
	assert.Equal(t, "3s", cfg.Timeouts.PerProvider.String())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)

	assert.Equal(t, "45s", cfg.Server.WriteTimeout.String(), "untouched values keep defaults")
}

func TestLoad_ProviderCredentials(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{
		"AMADEUS_CLIENT_ID":     "client-id",
		"AMADEUS_CLIENT_SECRET": "client-secret",
		"SERPAPI_API_KEY":       "serp-key",
		"SKYSCANNER_API_KEY":    "sky-key",
	})
	require.NoError(t, err)

	assert.Equal(t, "client-id", cfg.Amadeus.ClientID)
	assert.Equal(t, "client-secret", cfg.Amadeus.ClientSecret)
	assert.Equal(t, "serp-key", cfg.SerpAPI.APIKey)
	assert.Equal(t, "sky-key", cfg.Skyscanner.APIKey)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		vars   map[string]string
		errMsg string
	}{
		{"port zero", map[string]string{"SERVER_PORT": "0"}, "SERVER_PORT must be between 1 and 65535"},
		{"port too high", map[string]string{"SERVER_PORT": "65536"}, "SERVER_PORT must be between 1 and 65535"},
		{"negative read timeout", map[string]string{"SERVER_READ_TIMEOUT": "-1s"}, "SERVER_READ_TIMEOUT must be positive"},
		{"zero write timeout", map[string]string{"SERVER_WRITE_TIMEOUT": "0s"}, "SERVER_WRITE_TIMEOUT must be positive"},
		{"zero global timeout", map[string]string{"TIMEOUT_GLOBAL_SEARCH": "0s"}, "TIMEOUT_GLOBAL_SEARCH must be positive"},
		{"zero provider timeout", map[string]string{"TIMEOUT_PER_PROVIDER": "0s"}, "TIMEOUT_PER_PROVIDER must be positive"},
		{
			"provider timeout not below global",
			map[string]string{"TIMEOUT_GLOBAL_SEARCH": "5s", "TIMEOUT_PER_PROVIDER": "5s"},
			"TIMEOUT_PER_PROVIDER",
		},
		{"unknown log level", map[string]string{"LOG_LEVEL": "trace"}, "LOG_LEVEL must be one of"},
		{"unknown log format", map[string]string{"LOG_FORMAT": "text"}, "LOG_FORMAT must be one of"},
		{"unknown app env", map[string]string{"APP_ENV": "local"}, "APP_ENV must be one of"},
		{"amadeus id without secret", map[string]string{"AMADEUS_CLIENT_ID": "id"}, "AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET"},
		{"amadeus secret without id", map[string]string{"AMADEUS_CLIENT_SECRET": "secret"}, "AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET"},
		{"zero max offers", map[string]string{"AMADEUS_MAX_OFFERS": "0"}, "AMADEUS_MAX_OFFERS"},
		{"negative cache ttl", map[string]string{"CACHE_TTL": "-1s"}, "CACHE_TTL must be positive"},
		{"zero rate limit rps", map[string]string{"RATE_LIMIT_RPS": "0"}, "RATE_LIMIT_RPS must be positive"},
		{"zero rate limit burst", map[string]string{"RATE_LIMIT_BURST": "0"}, "RATE_LIMIT_BURST must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadWith(t, tt.vars)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_ValidEnumValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"log level warn", map[string]string{"LOG_LEVEL": "warn"}},
		{"log level error", map[string]string{"LOG_LEVEL": "error"}},
		{"log format console", map[string]string{"LOG_FORMAT": "console"}},
		{"app env staging", map[string]string{"APP_ENV": "staging"}},
		{"port boundary low", map[string]string{"SERVER_PORT": "1"}},
		{"port boundary high", map[string]string{"SERVER_PORT": "65535"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadWith(t, tt.vars)

			require.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}

func TestMustLoad(t *testing.T) {
	resetEnv(t)
	assert.NotPanics(t, func() {
		assert.NotNil(t, MustLoad())
	})

	t.Setenv("SERVER_PORT", "0")
	assert.Panics(t, func() {
		MustLoad()
	})
}

func TestConfig_EnvironmentHelpers(t *testing.T) {
	tests := []struct {
		env           string
		isDevelopment bool
		isProduction  bool
	}{
		{"development", true, false},
		{"staging", false, false},
		{"production", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg, err := loadWith(t, map[string]string{"APP_ENV": tt.env})
			require.NoError(t, err)

			assert.Equal(t, tt.isDevelopment, cfg.IsDevelopment())
			assert.Equal(t, tt.isProduction, cfg.IsProduction())
		})
	}
}
