// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package cache provides the in-memory response cache used by the HTTP API.
//
// Recommendations are a pure function of the loaded snapshot and the request,
// so the API caches whole responses keyed by GenerateKey over the normalized
// request. Entries expire after a TTL and the least recently used entry is
// evicted at capacity:
//
//	c := cache.NewLRU[*recommend.Response](1000, 5*time.Minute)
//	key := cache.GenerateKey("recommend", req)
//	if resp, ok := c.Get(key); ok {
//	    return resp
//	}
//
// Cached values are shared between callers and must not be mutated.
package cache
