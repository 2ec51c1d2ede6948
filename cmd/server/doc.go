// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package main is the entry point for the PropertyRank server.
//
// PropertyRank serves a catalogue of property listings over HTTP and ranks
// them against a buyer's criteria. Alongside recommendations it offers a
// linear price estimator, side-by-side comparison and text search.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional YAML file, environment (Koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. Listing store: BadgerDB, SQLite or DuckDB behind a circuit breaker
//  4. Seed data: optional JSON document loaded into the store
//  5. Score cache and recommendation engine
//  6. HTTP router: Chi with CORS, rate limiting and Prometheus metrics
//  7. Supervisor tree: HTTP server and cache janitor (suture v4)
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8000
//	STORE_DRIVER=badger          # badger, sqlite3 or duckdb
//	STORE_PATH=/data/propertyrank
//	SEED_PATH=/data/seed.json
//	CACHE_MAX_ENTRIES=1000
//	CACHE_TTL=1h
//	ALLOWED_ORIGINS=*
//
// See package config for the complete list.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
// accepting connections and waits up to HTTP_SHUTDOWN_TIMEOUT for in-flight
// requests, then the store is closed.
//
// # Example Usage
//
//	export STORE_DRIVER=sqlite3
//	export STORE_PATH=./listings.db
//	export SEED_PATH=./seed.json
//	./propertyrank
package main
