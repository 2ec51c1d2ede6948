// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package config

import (
	"net"
	"strconv"
	"time"
)

// Store drivers accepted by StoreConfig.Driver.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite3"
	DriverDuckDB = "duckdb"
)

// Config holds the complete service configuration.
//
// Configuration is loaded in three layers, later layers overriding earlier ones:
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/propertyrank/config.yaml)
//  3. Environment variables (HTTP_PORT, STORE_DRIVER, CACHE_TTL, ...)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Store     StoreConfig     `koanf:"store"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// StoreConfig selects and configures the listing store backend.
type StoreConfig struct {
	// Driver is DriverBadger, DriverSQLite or DriverDuckDB.
	Driver string `koanf:"driver"`
	// Path is the badger directory or the SQL database file.
	Path string `koanf:"path"`
	// InMemory discards data on exit. Path is ignored.
	InMemory bool `koanf:"in_memory"`
	// SeedPath, when set, names a JSON seed document loaded at startup.
	SeedPath string `koanf:"seed_path"`
}

// CacheConfig holds score cache settings
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	MaxEntries      int           `koanf:"max_entries"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"` // 0 disables the janitor
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// RecommendConfig holds recommendation engine settings
type RecommendConfig struct {
	ReferenceYear int           `koanf:"reference_year"`
	FetchTimeout  time.Duration `koanf:"fetch_timeout"`
}

// BreakerConfig holds the listing store circuit breaker settings
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// Address returns the host:port the HTTP server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load reads configuration from defaults, the optional config file and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
