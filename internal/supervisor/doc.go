// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package supervisor provides process supervision for the serve command using suture v4.

The supervisor tree organizes long-running services into two layers:

	RootSupervisor ("reelrank")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing janitor restarts on its own without dropping in-flight HTTP
requests. Crashed services are restarted with suture's backoff; the
FailureThreshold, FailureDecay and FailureBackoff settings in TreeConfig
control how aggressively.

Supervisor events are logged through sutureslog, bridged to zerolog by
logging.NewSlogLogger.

Example:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	return tree.Serve(ctx)
*/
package supervisor
