package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
)

// EncodeCSV writes the canonical header row followed by one row per incident,
// in slice order.
func EncodeCSV(w io.Writer, incidents []domain.Incident) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.Columns()); err != nil {
		return err
	}
	for _, inc := range incidents {
		if err := cw.Write(inc.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeCSV reads an incident CSV, preserving row order. The header must
// match the canonical column list exactly; header and row violations wrap
// ErrSchemaMismatch.
func DecodeCSV(r io.Reader) ([]domain.Incident, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrSchemaMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var incidents []domain.Incident
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The csv reader enforces the header's field count; a short or
			// long row lands here with its line number.
			return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		incidents = append(incidents, domain.FromRow(row))
	}
	return incidents, nil
}

func validateHeader(header []string) error {
	want := domain.Columns()
	if len(header) != len(want) {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrSchemaMismatch, len(header), len(want))
	}
	for i, col := range header {
		if col != want[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrSchemaMismatch, i, col, want[i])
		}
	}
	return nil
}
