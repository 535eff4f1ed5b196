package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
)

// EncodeJSON writes the incidents as a two-space-indented JSON array with a
// trailing newline, in slice order. An empty set is "[]", never "null".
func EncodeJSON(w io.Writer, incidents []domain.Incident) error {
	if incidents == nil {
		incidents = []domain.Incident{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(incidents)
}

// DecodeJSON reads an incident JSON array, preserving element order. Every
// object must carry exactly the canonical fields; violations wrap
// ErrSchemaMismatch with the record index and field name.
func DecodeJSON(r io.Reader) ([]domain.Incident, error) {
	var raw []map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode incidents: %w", err)
	}

	columns := domain.Columns()
	known := make(map[string]bool, len(columns))
	for _, col := range columns {
		known[col] = true
	}

	incidents := make([]domain.Incident, 0, len(raw))
	for i, obj := range raw {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			v, ok := obj[col]
			if !ok {
				return nil, fmt.Errorf("%w: record %d missing field %q", ErrSchemaMismatch, i, col)
			}
			row = append(row, v)
		}
		for key := range obj {
			if !known[key] {
				return nil, fmt.Errorf("%w: record %d has unexpected field %q", ErrSchemaMismatch, i, key)
			}
		}
		incidents = append(incidents, domain.FromRow(row))
	}
	return incidents, nil
}
