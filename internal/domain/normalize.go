package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ReportedTimeLayout is the canonical time_reported format: zero-padded
// 12-hour local time, e.g. "2024-05-04 02:23:45 PM". It parses back with
// ParseReportedTime, so ordering and range filters never need a second format.
const ReportedTimeLayout = "2006-01-02 03:04:05 PM"

// ErrMalformedRecord marks feed entries that cannot be normalized: an
// unparsable call_time or a blank location or nature. Callers skip and count
// these per entry; they are never fatal to a run.
var ErrMalformedRecord = errors.New("malformed record")

// callTimeLayouts are the timestamp formats observed from the FireWatch feed,
// tried in order. Layouts without an explicit zone are read as UTC. The
// year-less layout borrows its year from the package clock.
var callTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	"01/02 15:04:05",
}

// NormalizeEntry converts one upstream feed entry into the canonical Incident
// form: call_time parsed, converted to loc, and rendered with
// ReportedTimeLayout; location and nature mapped to address and incident_type;
// optional caller fields trimmed, defaulting to "".
func NormalizeEntry(raw RawEntry, loc *time.Location) (Incident, error) {
	address := strings.TrimSpace(raw.Location)
	if address == "" {
		return Incident{}, fmt.Errorf("%w: blank location", ErrMalformedRecord)
	}

	nature := strings.TrimSpace(raw.Nature)
	if nature == "" {
		return Incident{}, fmt.Errorf("%w: blank nature at %q", ErrMalformedRecord, address)
	}

	reported, err := parseCallTime(raw.CallTime)
	if err != nil {
		return Incident{}, fmt.Errorf("%w: %v at %q", ErrMalformedRecord, err, address)
	}

	return Incident{
		TimeReported: reported.In(loc).Format(ReportedTimeLayout),
		Address:      address,
		IncidentType: nature,
		Name:         strings.TrimSpace(raw.CallerName),
		Phone:        strings.TrimSpace(raw.CallerPhone),
		Email:        strings.TrimSpace(raw.CallerEmail),
	}, nil
}

// ParseReportedTime parses a canonical time_reported value back into a
// time.Time in loc.
func ParseReportedTime(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(ReportedTimeLayout, s, loc)
}

// parseCallTime tries each accepted layout in order. The year-less layout
// parses to year 0; the current year is substituted, rolling back one year
// when that lands in the future (a December report read in January).
func parseCallTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty call_time")
	}

	for _, layout := range callTimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			now := clock.Now().UTC()
			t = t.AddDate(now.Year(), 0, 0)
			if t.After(now) {
				t = t.AddDate(-1, 0, 0)
			}
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized call_time %q", s)
}
