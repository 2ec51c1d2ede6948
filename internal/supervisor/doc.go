// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

/*
Package supervisor provides process supervision for PropertyRank using suture v4.

# Overview

	RootSupervisor ("propertyrank")
	├── DataSupervisor ("data-layer")
	│   └── CacheJanitorService (if cache.cleanup_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Failed services are restarted with suture's threshold and backoff policy.
Lifecycle events are logged through sutureslog, which main wires to the
zerolog bridge in the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCacheJanitorService(scoreCache, 5*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

See the services subpackage for the service wrappers.
*/
package supervisor
