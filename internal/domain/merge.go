package domain

import (
	"sort"
	"time"
)

// Merge reconciles one fetch against the persisted set. Incoming records
// whose identity key already exists, or that repeat a key seen earlier in
// incoming, are dropped; on a key collision the record already held wins.
// Survivors are stable-sorted newest-first and placed before all existing
// records, which keep their order and content untouched. Returns the merged
// set and the number of records added.
func Merge(existing, incoming []Incident) ([]Incident, int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, inc := range existing {
		seen[inc.Key()] = struct{}{}
	}

	fresh := make([]Incident, 0, len(incoming))
	for _, inc := range incoming {
		key := inc.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, inc)
	}

	// Stable sort is the identity when the feed already arrives newest-first
	// and keeps feed order among equal timestamps.
	sort.SliceStable(fresh, func(i, j int) bool {
		return reportedAfter(fresh[i].TimeReported, fresh[j].TimeReported)
	})

	merged := make([]Incident, 0, len(fresh)+len(existing))
	merged = append(merged, fresh...)
	merged = append(merged, existing...)
	return merged, len(fresh)
}

// reportedAfter reports whether a sorts strictly after b. Values that fail to
// parse sort oldest. The zone used for comparison does not matter because all
// canonical values share one formatting timezone.
func reportedAfter(a, b string) bool {
	ta, errA := time.Parse(ReportedTimeLayout, a)
	tb, errB := time.Parse(ReportedTimeLayout, b)
	if errA != nil {
		return false
	}
	if errB != nil {
		return true
	}
	return ta.After(tb)
}
