// Package domain models Rockland County FireWatch incident records.
//
// # Data Source
//
// Incident entries originate from the county's public FireWatch dispatch
// feed, a JSON endpoint polled by cmd/fetch on an external schedule. The
// feed serves either a bare array of entries or a wrapper object
// {"incidents": [...]}; both envelopes carry the same entry shape.
//
// # Feed Conventions
//
// Timestamp format (the "call_time" field, one of):
//
//	RFC 3339:              "2024-05-04T18:23:45Z"
//	Zone-less datetime:    "2024-05-04 18:23:45"   (read as UTC)
//	US slash datetime:     "05/04/2024 18:23:45"   (read as UTC)
//	Year-less US datetime: "05/04 18:23:45"        (read as UTC, current year)
//
// The year-less form appears when the provider truncates same-year entries.
// Its year comes from the package clock; a result after "now" rolls back one
// year so a December report read in January lands in the prior year. Tests
// freeze the clock via [SetClock].
//
// Canonical time format:
//
//	"2006-01-02 03:04:05 PM" in the configured county timezone,
//	e.g. "2024-05-04 02:23:45 PM". Zero-padded 12-hour notation, stored
//	once and served verbatim; [ParseReportedTime] recovers a time.Time
//	for ordering and range filters.
//
// Required fields:
//
//	"location" (street address) and "nature" (short incident category) must
//	be non-blank. Entries violating this, or carrying an unrecognized
//	call_time, fail normalization with [ErrMalformedRecord] and are skipped
//	and counted, never fatal.
//
// # Identity and Ordering
//
// An incident's identity is time_reported|address|incident_type; caller
// contact fields never participate. The persisted collection is a set unique
// by that key, ordered newest-first, append-only: [Merge] drops incoming
// duplicates (first record seen wins), sorts the survivors newest-first, and
// prepends them without touching existing records.
package domain
