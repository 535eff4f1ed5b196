package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeNewest = "2024-05-04 02:23:45 PM"
	timeMiddle = "2024-05-03 11:00:00 AM"
	timeOldest = "2024-05-01 09:15:00 AM"
)

func newIncident(reported, address, nature string) Incident {
	return Incident{TimeReported: reported, Address: address, IncidentType: nature}
}

func TestMerge(t *testing.T) {
	t.Run("prepends new records to existing", func(t *testing.T) {
		existing := []Incident{
			newIncident(timeMiddle, "2 OAK DR", "EMS"),
			newIncident(timeOldest, "9 ELM ST", "Alarm"),
		}
		incoming := []Incident{newIncident(timeNewest, "123 MAIN ST", "Structure Fire")}

		merged, added := Merge(existing, incoming)

		require.Equal(t, 1, added)
		require.Len(t, merged, 3)
		assert.Equal(t, "123 MAIN ST", merged[0].Address)
		assert.Equal(t, "2 OAK DR", merged[1].Address)
		assert.Equal(t, "9 ELM ST", merged[2].Address)
	})

	t.Run("union cardinality", func(t *testing.T) {
		existing := []Incident{newIncident(timeOldest, "9 ELM ST", "Alarm")}
		incoming := []Incident{
			newIncident(timeNewest, "123 MAIN ST", "Structure Fire"),
			newIncident(timeOldest, "9 ELM ST", "Alarm"), // already held
			newIncident(timeMiddle, "2 OAK DR", "EMS"),
		}

		merged, added := Merge(existing, incoming)

		assert.Equal(t, 2, added)
		assert.Len(t, merged, len(existing)+added)
	})

	t.Run("record already held wins on key collision", func(t *testing.T) {
		held := newIncident(timeNewest, "123 MAIN ST", "Structure Fire")
		held.Name = "Alice"
		dup := newIncident(timeNewest, "123 MAIN ST", "Structure Fire")
		dup.Name = "Bob"
		dup.Phone = "845-555-0100"

		merged, added := Merge([]Incident{held}, []Incident{dup})

		assert.Equal(t, 0, added)
		require.Len(t, merged, 1)
		assert.Equal(t, "Alice", merged[0].Name)
	})

	t.Run("drops repeats within one fetch", func(t *testing.T) {
		first := newIncident(timeNewest, "123 MAIN ST", "Structure Fire")
		first.Name = "Alice"
		repeat := first
		repeat.Name = "Bob"

		merged, added := Merge(nil, []Incident{first, repeat})

		assert.Equal(t, 1, added)
		require.Len(t, merged, 1)
		assert.Equal(t, "Alice", merged[0].Name)
	})

	t.Run("idempotent against an unchanged feed", func(t *testing.T) {
		incoming := []Incident{
			newIncident(timeNewest, "123 MAIN ST", "Structure Fire"),
			newIncident(timeMiddle, "2 OAK DR", "EMS"),
		}

		merged, added := Merge(nil, incoming)
		require.Equal(t, 2, added)

		again, addedAgain := Merge(merged, incoming)

		assert.Equal(t, 0, addedAgain)
		if diff := cmp.Diff(merged, again); diff != "" {
			t.Fatalf("second merge changed the set (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps feed order for a newest-first fetch", func(t *testing.T) {
		incoming := []Incident{
			newIncident(timeNewest, "123 MAIN ST", "Structure Fire"),
			newIncident(timeNewest, "2 OAK DR", "EMS"), // same timestamp, later in feed
			newIncident(timeMiddle, "9 ELM ST", "Alarm"),
		}

		merged, added := Merge(nil, incoming)

		require.Equal(t, 3, added)
		assert.Equal(t, "123 MAIN ST", merged[0].Address)
		assert.Equal(t, "2 OAK DR", merged[1].Address)
		assert.Equal(t, "9 ELM ST", merged[2].Address)
	})

	t.Run("sorts an oldest-first fetch newest-first", func(t *testing.T) {
		incoming := []Incident{
			newIncident(timeOldest, "9 ELM ST", "Alarm"),
			newIncident(timeMiddle, "2 OAK DR", "EMS"),
			newIncident(timeNewest, "123 MAIN ST", "Structure Fire"),
		}

		merged, added := Merge(nil, incoming)

		require.Equal(t, 3, added)
		assert.Equal(t, timeNewest, merged[0].TimeReported)
		assert.Equal(t, timeMiddle, merged[1].TimeReported)
		assert.Equal(t, timeOldest, merged[2].TimeReported)
	})

	t.Run("empty incoming", func(t *testing.T) {
		existing := []Incident{newIncident(timeOldest, "9 ELM ST", "Alarm")}

		merged, added := Merge(existing, nil)

		assert.Equal(t, 0, added)
		if diff := cmp.Diff(existing, merged); diff != "" {
			t.Fatalf("merge with empty incoming changed the set (-want +got):\n%s", diff)
		}
	})

	t.Run("empty existing", func(t *testing.T) {
		incoming := []Incident{newIncident(timeNewest, "123 MAIN ST", "Structure Fire")}

		merged, added := Merge(nil, incoming)

		assert.Equal(t, 1, added)
		assert.Len(t, merged, 1)
	})

	t.Run("never modifies the existing slice", func(t *testing.T) {
		existing := []Incident{
			newIncident(timeMiddle, "2 OAK DR", "EMS"),
			newIncident(timeOldest, "9 ELM ST", "Alarm"),
		}
		snapshot := make([]Incident, len(existing))
		copy(snapshot, existing)

		_, _ = Merge(existing, []Incident{newIncident(timeNewest, "123 MAIN ST", "Structure Fire")})

		if diff := cmp.Diff(snapshot, existing); diff != "" {
			t.Fatalf("existing slice modified (-want +got):\n%s", diff)
		}
	})
}

func TestReportedAfter(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"newer first", timeNewest, timeOldest, true},
		{"older first", timeOldest, timeNewest, false},
		{"equal", timeNewest, timeNewest, false},
		{"PM after AM on the same day", "2024-05-04 02:23:45 PM", "2024-05-04 10:23:45 AM", true},
		{"unparsable a sorts oldest", "garbage", timeOldest, false},
		{"unparsable b sorts oldest", timeOldest, "garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, reportedAfter(tt.a, tt.b))
		})
	}
}
