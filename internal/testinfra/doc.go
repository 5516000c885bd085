// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to run a real MongoDB server for the
// dataset loader tests:
//
//	func TestMongoSource(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo)
//
//	    src := dataset.NewMongoSource(dataset.MongoConfig{URI: mongo.URI, Database: "test"}, logger)
//	    // ...
//	}
//
// # CI Considerations
//
// Every file carries the integration build tag, so the default test run
// never needs Docker. Run them with:
//
//	go test -tags integration ./...
//
// Tests are skipped gracefully if Docker is unavailable. The first run
// pulls the image; later runs use the local cache.
package testinfra
