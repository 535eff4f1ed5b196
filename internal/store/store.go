// Package store persists the incident set as sibling CSV and JSON files and
// converts between the two serializations.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
)

var (
	// ErrWrite marks persistence failures. A failed Replace leaves the
	// previously persisted files byte-identical.
	ErrWrite = errors.New("store write failed")

	// ErrSchemaMismatch marks CSV headers or JSON objects that do not match
	// the canonical six-field record.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// Store holds the paths of the two persisted serializations. The JSON file is
// the read side; Replace always rewrites both.
type Store struct {
	csvPath  string
	jsonPath string
	logger   *slog.Logger
}

// New creates a store over the given CSV and JSON paths.
func New(csvPath, jsonPath string, logger *slog.Logger) *Store {
	return &Store{csvPath: csvPath, jsonPath: jsonPath, logger: logger}
}

// Load reads the persisted incident set from the JSON file. A missing file is
// an empty set, not an error.
func (s *Store) Load() ([]domain.Incident, error) {
	f, err := os.Open(s.jsonPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.jsonPath, err)
	}
	defer f.Close()

	incidents, err := DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.jsonPath, err)
	}
	return incidents, nil
}

// Replace rewrites both serializations atomically. Each file is first written
// to a temp file in its destination directory; renames happen only after both
// temp writes succeed, so a failure cannot leave a partially written or
// half-updated pair behind. Errors wrap ErrWrite with the failing path.
func (s *Store) Replace(incidents []domain.Incident) error {
	csvTmp, err := writeTemp(s.csvPath, func(w io.Writer) error {
		return EncodeCSV(w, incidents)
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, s.csvPath, err)
	}

	jsonTmp, err := writeTemp(s.jsonPath, func(w io.Writer) error {
		return EncodeJSON(w, incidents)
	})
	if err != nil {
		_ = os.Remove(csvTmp)
		return fmt.Errorf("%w: %s: %v", ErrWrite, s.jsonPath, err)
	}

	if err := os.Rename(csvTmp, s.csvPath); err != nil {
		_ = os.Remove(csvTmp)
		_ = os.Remove(jsonTmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(jsonTmp, s.jsonPath); err != nil {
		_ = os.Remove(jsonTmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	s.logger.Debug("store replaced", "records", len(incidents), "csv", s.csvPath, "json", s.jsonPath)
	return nil
}

// writeTemp writes content to a fresh temp file in the destination's
// directory, so the later rename never crosses a filesystem boundary.
func writeTemp(dest string, encode func(io.Writer) error) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return "", err
	}
	if err := encode(f); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
