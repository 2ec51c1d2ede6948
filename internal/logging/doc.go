// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

// Package logging provides the process-wide zerolog logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("driver", "badger").Msg("Listing store opened")
//	logging.Error().Err(err).Msg("Seed failed")
//
//	// Request-scoped fields from middleware.RequestID
//	logging.Ctx(r.Context()).Warn().Msg("Slow request detected")
//
// Components that need their own logger derive one with WithComponent or
// receive a zerolog.Logger by value, as recommend.NewEngine does.
//
// # slog Bridge
//
// NewSlogLogger returns a *slog.Logger that writes through the global
// zerolog logger. The supervisor tree hands it to sutureslog so restarts and
// backoff events share the service's log format.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
