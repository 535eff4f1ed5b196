package store

import (
	"fmt"
	"io"
	"os"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
)

// CSVToJSON converts a CSV incident file into the JSON serialization,
// preserving row order. The output write is atomic like Replace. Returns the
// number of records converted.
func CSVToJSON(csvPath, jsonPath string) (int, error) {
	incidents, err := readFile(csvPath, DecodeCSV)
	if err != nil {
		return 0, err
	}
	if err := replaceFile(jsonPath, func(w io.Writer) error {
		return EncodeJSON(w, incidents)
	}); err != nil {
		return 0, err
	}
	return len(incidents), nil
}

// JSONToCSV converts a JSON incident file into the CSV serialization,
// preserving element order. The output write is atomic like Replace. Returns
// the number of records converted.
func JSONToCSV(jsonPath, csvPath string) (int, error) {
	incidents, err := readFile(jsonPath, DecodeJSON)
	if err != nil {
		return 0, err
	}
	if err := replaceFile(csvPath, func(w io.Writer) error {
		return EncodeCSV(w, incidents)
	}); err != nil {
		return 0, err
	}
	return len(incidents), nil
}

func readFile(path string, decode func(io.Reader) ([]domain.Incident, error)) ([]domain.Incident, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	incidents, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return incidents, nil
}

func replaceFile(dest string, encode func(io.Writer) error) error {
	tmp, err := writeTemp(dest, encode)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, dest, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
