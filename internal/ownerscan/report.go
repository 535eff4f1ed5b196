package ownerscan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
	"github.com/rocklandwatch/firewatch-tracker/internal/store"
)

// Lookup outcomes recorded in the report.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not found"
	StatusError    = "error"
)

// Result is one owner lookup outcome.
type Result struct {
	Address string `json:"address"`
	Owner   string `json:"owner_name"`
	Source  string `json:"source"`
	Status  string `json:"status"`
}

// LoadAddresses pulls the address column from a persisted incident CSV or
// JSON file. Blank addresses are dropped.
func LoadAddresses(path string) ([]string, error) {
	var decode func(io.Reader) ([]domain.Incident, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decode = store.DecodeJSON
	case ".csv":
		decode = store.DecodeCSV
	default:
		return nil, fmt.Errorf("unsupported input %q, want .csv or .json", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	incidents, err := decode(f)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(incidents))
	for _, inc := range incidents {
		if inc.Address != "" {
			addresses = append(addresses, inc.Address)
		}
	}
	return addresses, nil
}

// WriteReport writes the lookup results as indented JSON.
func WriteReport(path string, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
