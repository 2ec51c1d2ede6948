// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package services provides suture.Service wrappers for PropertyRank components.

Each wrapper implements:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer, so suture can name it in event logs.

# Available Services

HTTPServerService runs an *http.Server. Cancellation triggers a graceful
Shutdown bounded by the configured timeout.

CacheJanitorService sweeps expired score cache entries on a fixed interval.

# Example

	tree.AddDataService(services.NewCacheJanitorService(scoreCache, cfg.Cache.CleanupInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
*/
package services
