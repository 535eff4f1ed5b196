// Command ownerscan looks up property owner names for the addresses in a
// persisted incident file and writes a JSON report. Lookups hit the towns'
// public tax-roll portals with a fixed delay between requests.
//
// Usage:
//
//	go run ./cmd/ownerscan -in incidents.json -out owners.json
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/rocklandwatch/firewatch-tracker/internal/config"
	"github.com/rocklandwatch/firewatch-tracker/internal/observability"
	"github.com/rocklandwatch/firewatch-tracker/internal/ownerscan"
)

func main() {
	in := flag.String("in", "", "incident CSV or JSON file (defaults to JSON_PATH)")
	out := flag.String("out", "owners.json", "report output path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	if *in == "" {
		*in = cfg.JSONPath
	}

	addresses, err := ownerscan.LoadAddresses(*in)
	if err != nil {
		logger.Error("loading addresses", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded addresses", "count", len(addresses), "from", *in)

	scanner := ownerscan.NewScanner(ownerscan.DefaultPortals(), cfg.OwnerDelay, logger)
	results := scanner.Scan(addresses)

	if err := ownerscan.WriteReport(*out, results); err != nil {
		logger.Error("writing report", "error", err)
		os.Exit(1)
	}
	logger.Info("report written", "results", len(results), "path", *out)
}
