// Command convert rebuilds one persisted incident file from the other. Both
// conversions validate the source schema and write atomically, so a bad
// source never clobbers the destination.
//
// Usage:
//
//	go run ./cmd/convert -to json
//	go run ./cmd/convert -to csv -csv data/rockland_incidents.csv -json data/incidents.json
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/rocklandwatch/firewatch-tracker/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	to := flag.String("to", "", "target format: json or csv")
	csvPath := flag.String("csv", "rockland_incidents.csv", "CSV file path")
	jsonPath := flag.String("json", "incidents.json", "JSON file path")
	flag.Parse()

	var (
		n   int
		err error
	)
	switch *to {
	case "json":
		n, err = store.CSVToJSON(*csvPath, *jsonPath)
	case "csv":
		n, err = store.JSONToCSV(*jsonPath, *csvPath)
	default:
		flag.Usage()
		return fmt.Errorf("-to must be json or csv, got %q", *to)
	}
	if err != nil {
		return err
	}

	log.Printf("wrote %d records (%s)", n, *to)
	return nil
}
