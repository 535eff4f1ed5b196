package store

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore(t *testing.T) (*Store, string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "incidents.csv")
	jsonPath := filepath.Join(dir, "incidents.json")
	return New(csvPath, jsonPath, testLogger()), csvPath, jsonPath
}

func sampleIncidents() []domain.Incident {
	return []domain.Incident{
		{
			TimeReported: "2024-05-04 02:23:45 PM",
			Address:      "123 MAIN ST, NANUET",
			IncidentType: "Structure Fire",
			Name:         "J. Caller",
			Phone:        "845-555-0123",
			Email:        "caller@example.com",
		},
		{
			TimeReported: "2024-05-03 11:00:00 AM",
			Address:      "2 OAK DR, NYACK",
			IncidentType: "EMS",
		},
	}
}

func TestStore_Load_MissingFile(t *testing.T) {
	s, _, _ := testStore(t)

	incidents, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestStore_ReplaceAndLoad(t *testing.T) {
	s, csvPath, jsonPath := testStore(t)

	require.NoError(t, s.Replace(sampleIncidents()))

	loaded, err := s.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(sampleIncidents(), loaded); diff != "" {
		t.Fatalf("loaded set mismatch (-want +got):\n%s", diff)
	}

	csvBytes, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	expectedCSV := "time_reported,address,incident_type,name,phone,email\n" +
		"2024-05-04 02:23:45 PM,\"123 MAIN ST, NANUET\",Structure Fire,J. Caller,845-555-0123,caller@example.com\n" +
		"2024-05-03 11:00:00 AM,\"2 OAK DR, NYACK\",EMS,,,\n"
	assert.Equal(t, expectedCSV, string(csvBytes))

	jsonBytes, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, len(jsonBytes) > 0 && jsonBytes[len(jsonBytes)-1] == '\n')
}

func TestStore_Replace_Overwrites(t *testing.T) {
	s, _, _ := testStore(t)

	require.NoError(t, s.Replace(sampleIncidents()))
	require.NoError(t, s.Replace(sampleIncidents()[:1]))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, "123 MAIN ST, NANUET", loaded[0].Address)
}

func TestStore_Replace_EmptySet(t *testing.T) {
	s, csvPath, jsonPath := testStore(t)

	require.NoError(t, s.Replace(nil))

	csvBytes, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "time_reported,address,incident_type,name,phone,email\n", string(csvBytes))

	jsonBytes, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(jsonBytes))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_Replace_CSVFailureKeepsPriorFiles(t *testing.T) {
	s, _, jsonPath := testStore(t)
	require.NoError(t, s.Replace(sampleIncidents()[:1]))

	priorJSON, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	// Same JSON path, CSV path in a directory that does not exist: the CSV
	// temp write fails before anything is renamed.
	dir := filepath.Dir(jsonPath)
	broken := New(filepath.Join(dir, "missing", "incidents.csv"), jsonPath, testLogger())

	err = broken.Replace(sampleIncidents())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))

	afterJSON, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, priorJSON, afterJSON)
}

func TestStore_Replace_JSONFailureKeepsPriorFiles(t *testing.T) {
	s, csvPath, _ := testStore(t)
	require.NoError(t, s.Replace(sampleIncidents()[:1]))

	priorCSV, err := os.ReadFile(csvPath)
	require.NoError(t, err)

	dir := filepath.Dir(csvPath)
	broken := New(csvPath, filepath.Join(dir, "missing", "incidents.json"), testLogger())

	err = broken.Replace(sampleIncidents())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))

	afterCSV, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, priorCSV, afterCSV)

	// The successfully written CSV temp file must not linger.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_Load_SchemaError(t *testing.T) {
	s, _, jsonPath := testStore(t)
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"address":"somewhere"}]`), 0o644))

	_, err := s.Load()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}
