package ownerscan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocklandwatch/firewatch-tracker/internal/store"
)

const incidentsJSONFixture = `[
  {
    "time_reported": "2024-05-04 02:23:45 PM",
    "address": "123 MAIN ST, CLARKSTOWN",
    "incident_type": "Structure Fire",
    "name": "",
    "phone": "",
    "email": ""
  },
  {
    "time_reported": "2024-05-03 11:00:00 AM",
    "address": "",
    "incident_type": "EMS",
    "name": "",
    "phone": "",
    "email": ""
  }
]
`

const incidentsCSVFixture = `time_reported,address,incident_type,name,phone,email
2024-05-04 02:23:45 PM,"123 MAIN ST, CLARKSTOWN",Structure Fire,,,
2024-05-03 11:00:00 AM,"5 ELM ST, ORANGETOWN",EMS,,,
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAddresses(t *testing.T) {
	t.Run("json input drops blank addresses", func(t *testing.T) {
		path := writeFixture(t, "incidents.json", incidentsJSONFixture)

		addresses, err := LoadAddresses(path)

		require.NoError(t, err)
		if diff := cmp.Diff([]string{"123 MAIN ST, CLARKSTOWN"}, addresses); diff != "" {
			t.Fatalf("unexpected addresses (-want +got):\n%s", diff)
		}
	})

	t.Run("csv input", func(t *testing.T) {
		path := writeFixture(t, "incidents.csv", incidentsCSVFixture)

		addresses, err := LoadAddresses(path)

		require.NoError(t, err)
		want := []string{"123 MAIN ST, CLARKSTOWN", "5 ELM ST, ORANGETOWN"}
		if diff := cmp.Diff(want, addresses); diff != "" {
			t.Fatalf("unexpected addresses (-want +got):\n%s", diff)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFixture(t, "incidents.txt", "whatever")

		_, err := LoadAddresses(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported input")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAddresses(filepath.Join(t.TempDir(), "absent.json"))

		require.Error(t, err)
	})

	t.Run("schema mismatch surfaces", func(t *testing.T) {
		path := writeFixture(t, "incidents.csv", "time_reported,location,type\n")

		_, err := LoadAddresses(path)

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrSchemaMismatch))
	})
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owners.json")
	results := []Result{
		{Address: "123 MAIN ST, CLARKSTOWN", Owner: "SMITH JOHN", Source: "Clarkstown Tax Search", Status: StatusSuccess},
		{Address: "5 ELM ST, ORANGETOWN", Owner: "", Source: "Orangetown Tax Search", Status: StatusNotFound},
	}

	require.NoError(t, WriteReport(path, results))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
  {
    "address": "123 MAIN ST, CLARKSTOWN",
    "owner_name": "SMITH JOHN",
    "source": "Clarkstown Tax Search",
    "status": "success"
  },
  {
    "address": "5 ELM ST, ORANGETOWN",
    "owner_name": "",
    "source": "Orangetown Tax Search",
    "status": "not found"
  }
]
`
	assert.Equal(t, want, string(got))
}

func TestWriteReport_NoResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owners.json")

	require.NoError(t, WriteReport(path, nil))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(got))
}
