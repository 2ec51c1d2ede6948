// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package config provides configuration loading and validation for PropertyRank.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. Later layers win.

# Configuration File

The first existing file among CONFIG_PATH, ./config.yaml, ./config.yml,
/etc/propertyrank/config.yaml and /etc/propertyrank/config.yml is loaded:

	server:
	  port: 8000
	store:
	  driver: sqlite3
	  path: /data/listings.db
	  seed_path: /data/seed.json
	cache:
	  max_entries: 2000
	  ttl: 2h
	security:
	  cors_origins:
	    - https://app.example.com

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

Listing Store:
  - STORE_DRIVER: badger, sqlite3 or duckdb (default: badger)
  - STORE_PATH: Badger directory or database file (default: /data/propertyrank)
  - STORE_IN_MEMORY: Keep data in memory only (default: false)
  - SEED_PATH: JSON seed document loaded at startup (default: none)

Score Cache:
  - CACHE_ENABLED (default: true)
  - CACHE_MAX_ENTRIES (default: 1000)
  - CACHE_TTL (default: 1h)
  - CACHE_CLEANUP_INTERVAL: Expired entry sweep, 0 disables (default: 5m)

Security:
  - ALLOWED_ORIGINS: Comma-separated CORS origins (default: *)
  - RATE_LIMIT_REQUESTS (default: 100)
  - RATE_LIMIT_WINDOW (default: 1m)
  - DISABLE_RATE_LIMIT (default: false)

Recommendation Engine:
  - RECOMMEND_REFERENCE_YEAR: Year property age is measured from (default: 2024)
  - RECOMMEND_FETCH_TIMEOUT (default: 10s)

Circuit Breaker:
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
    BREAKER_MIN_REQUESTS, BREAKER_FAILURE_RATIO

Environment variables that are not listed are ignored.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	addr := cfg.Server.Address()
*/
package config
