// Reelrank - Movie Recommendations from Ratings and Genres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/logging"
)

// version is set at build time:
//
//	go build -ldflags "-X main.version=v1.2.0" ./cmd/reelrank
var version = "dev"

const usage = `usage: reelrank [run|serve|version]

  run      score the configured profile and print a report (default)
  serve    expose the recommendation pipelines over HTTP
  version  print the build version
`

func main() {
	command := "run"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "run", "serve":
	case "version", "-v", "--version":
		fmt.Println(version)
		return
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingSettings())
	logging.Info().
		Str("version", version).
		Str("command", command).
		Str("source", cfg.Dataset.Source).
		Strs("algorithms", cfg.Recommend.Algorithms).
		Msg("Starting reelrank")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if command == "serve" {
		err = serve(ctx, cfg)
	} else {
		err = run(ctx, cfg, os.Stdout)
	}
	if err != nil {
		logging.Error().Err(err).Str("command", command).Msg("Command failed")
		cancel()
		os.Exit(1)
	}
}
