package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		cleanup func()
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "load with defaults (no config file)",
			setup: func() {
				viper.Reset()
			},
			cleanup: func() {},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Search.Community != "television" {
					t.Errorf("Search.Community = %s, want television", cfg.Search.Community)
				}
				if cfg.Search.Query != "Heated Rivalry" {
					t.Errorf("Search.Query = %s, want Heated Rivalry", cfg.Search.Query)
				}
				if cfg.Search.Limit != 100 {
					t.Errorf("Search.Limit = %d, want 100", cfg.Search.Limit)
				}
				if cfg.Search.Sort != "new" {
					t.Errorf("Search.Sort = %s, want new", cfg.Search.Sort)
				}
				if cfg.Select.OtherPosts != 5 {
					t.Errorf("Select.OtherPosts = %d, want 5", cfg.Select.OtherPosts)
				}
				if cfg.HTTP.MaxAttempts != 5 {
					t.Errorf("HTTP.MaxAttempts = %d, want 5", cfg.HTTP.MaxAttempts)
				}
				if cfg.HTTP.Timeout != 30*time.Second {
					t.Errorf("HTTP.Timeout = %v, want 30s", cfg.HTTP.Timeout)
				}
				if cfg.Storage.Backend != "csv" {
					t.Errorf("Storage.Backend = %s, want csv", cfg.Storage.Backend)
				}
				if cfg.Server.Port != 8010 {
					t.Errorf("Server.Port = %d, want 8010", cfg.Server.Port)
				}
			},
		},
		{
			name: "load with environment variables",
			setup: func() {
				viper.Reset()
				viper.SetEnvPrefix("TRACKER")
				viper.AutomaticEnv()
				os.Setenv("TRACKER_SEARCH_COMMUNITY", "hockey")
				os.Setenv("TRACKER_SEARCH_LIMIT", "25")
				os.Setenv("TRACKER_HTTP_MAXATTEMPTS", "3")
				os.Setenv("TRACKER_STORAGE_BACKEND", "postgres")
				// Manually bind env vars since AutomaticEnv doesn't work with nested keys
				viper.BindEnv("search.community", "TRACKER_SEARCH_COMMUNITY")
				viper.BindEnv("search.limit", "TRACKER_SEARCH_LIMIT")
				viper.BindEnv("http.maxattempts", "TRACKER_HTTP_MAXATTEMPTS")
				viper.BindEnv("storage.backend", "TRACKER_STORAGE_BACKEND")
			},
			cleanup: func() {
				os.Unsetenv("TRACKER_SEARCH_COMMUNITY")
				os.Unsetenv("TRACKER_SEARCH_LIMIT")
				os.Unsetenv("TRACKER_HTTP_MAXATTEMPTS")
				os.Unsetenv("TRACKER_STORAGE_BACKEND")
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Search.Community != "hockey" {
					t.Errorf("Search.Community = %s, want hockey", cfg.Search.Community)
				}
				if cfg.Search.Limit != 25 {
					t.Errorf("Search.Limit = %d, want 25", cfg.Search.Limit)
				}
				if cfg.HTTP.MaxAttempts != 3 {
					t.Errorf("HTTP.MaxAttempts = %d, want 3", cfg.HTTP.MaxAttempts)
				}
				if cfg.Storage.Backend != "postgres" {
					t.Errorf("Storage.Backend = %s, want postgres", cfg.Storage.Backend)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.cleanup()

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
