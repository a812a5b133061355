package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		APIBaseURL:     "http://localhost:8080",
		RequestTimeout: 10 * time.Second,
		CacheStaleTime: 5 * time.Minute,
		CacheGCTime:    24 * time.Hour,
		RetryAttempts:  1,
		SessionDBPath:  "./test-session.db",
		LogLevel:       "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "empty API base URL",
			mutate:      func(c *Config) { c.APIBaseURL = "" },
			wantErr:     true,
			errorString: "API base URL cannot be empty",
		},
		{
			name:        "invalid API base URL scheme",
			mutate:      func(c *Config) { c.APIBaseURL = "ftp://example.com" },
			wantErr:     true,
			errorString: "invalid API base URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name:        "request timeout too short",
			mutate:      func(c *Config) { c.RequestTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "request timeout too long",
			mutate:      func(c *Config) { c.RequestTimeout = 10 * time.Minute },
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
		{
			name:        "gc time shorter than stale time",
			mutate:      func(c *Config) { c.CacheGCTime = time.Minute },
			wantErr:     true,
			errorString: "must not be shorter than stale time",
		},
		{
			name:        "negative retry attempts",
			mutate:      func(c *Config) { c.RetryAttempts = -1 },
			wantErr:     true,
			errorString: "invalid retry attempts -1: must not be negative",
		},
		{
			name:        "too many retry attempts",
			mutate:      func(c *Config) { c.RetryAttempts = 10 },
			wantErr:     true,
			errorString: "invalid retry attempts 10: must be at most 5",
		},
		{
			name:        "empty session database path",
			mutate:      func(c *Config) { c.SessionDBPath = "" },
			wantErr:     true,
			errorString: "session database path cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose': must be one of [debug info warn error]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"API_BASE_URL", "REQUEST_TIMEOUT", "CACHE_STALE_TIME",
		"CACHE_GC_TIME", "RETRY_ATTEMPTS", "SESSION_DB_PATH", "LOG_LEVEL",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.CacheStaleTime != 5*time.Minute {
		t.Errorf("CacheStaleTime = %v, want 5m", cfg.CacheStaleTime)
	}
	if cfg.CacheGCTime != 24*time.Hour {
		t.Errorf("CacheGCTime = %v, want 24h", cfg.CacheGCTime)
	}
	if cfg.RetryAttempts != 1 {
		t.Errorf("RetryAttempts = %d, want 1", cfg.RetryAttempts)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("RETRY_ATTEMPTS", "2")

	cfg := Load()

	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("APIBaseURL = %q, want override", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.RetryAttempts != 2 {
		t.Errorf("RetryAttempts = %d, want 2", cfg.RetryAttempts)
	}
}
