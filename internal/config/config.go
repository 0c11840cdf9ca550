// Package config provides configuration management for the tracker.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Search   SearchConfig
	Select   SelectConfig
	HTTP     HTTPConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Queue    QueueConfig
	Server   ServerConfig
	Output   OutputConfig
	Logging  LoggingConfig
}

// SearchConfig describes what is polled from the source community.
type SearchConfig struct {
	Community  string
	Query      string
	Limit      int
	Sort       string // new | top | relevance
	TimeFilter string // all | year | month | week | day
}

// SelectConfig controls the notable-post selection policy.
type SelectConfig struct {
	OtherPosts int
}

// HTTPConfig controls the fetch layer.
type HTTPConfig struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
}

// StorageConfig selects the history log backend.
type StorageConfig struct {
	Backend     string // csv | postgres
	HistoryFile string
}

// DatabaseConfig contains Postgres connection configuration (postgres backend).
type DatabaseConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// QueueConfig contains Redis/asynq settings for scheduled runs.
type QueueConfig struct {
	RedisURL string
	CronSpec string
}

// ServerConfig contains dashboard server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// OutputConfig names the report output locations.
type OutputConfig struct {
	Dir string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TRACKER")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Search
	viper.SetDefault("search.community", "television")
	viper.SetDefault("search.query", "Heated Rivalry")
	viper.SetDefault("search.limit", 100)
	viper.SetDefault("search.sort", "new")
	viper.SetDefault("search.timefilter", "all")

	// Selection
	viper.SetDefault("select.otherposts", 5)

	// HTTP
	viper.SetDefault("http.baseurl", "https://www.reddit.com")
	viper.SetDefault("http.useragent", "RewindOS-SubTracker/1.0 (personal project; respectful polling)")
	viper.SetDefault("http.timeout", 30*time.Second)
	viper.SetDefault("http.maxattempts", 5)

	// Storage
	viper.SetDefault("storage.backend", "csv")
	viper.SetDefault("storage.historyfile", "data/television_heatedrivalry_comment_history.csv")

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "rivalrytracker")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxconnections", 10)
	viper.SetDefault("database.minconnections", 2)
	viper.SetDefault("database.maxidletime", 10*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// Queue
	viper.SetDefault("queue.redisurl", "localhost:6379")
	viper.SetDefault("queue.cronspec", "0 * * * *")

	// Server
	viper.SetDefault("server.port", 8010)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Output
	viper.SetDefault("output.dir", "out")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
