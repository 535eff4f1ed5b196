package domain

// RawEntry represents one entry of the upstream FireWatch JSON feed.
// The feed delivers either a bare array of these or a wrapper object
// {"incidents": [...]}; the feed client handles both envelopes.
type RawEntry struct {
	CallTime    string `json:"call_time"`
	Location    string `json:"location"` // street address, e.g. "123 MAIN ST, NANUET"
	Nature      string `json:"nature"`   // short incident category, e.g. "Structure Fire"
	CallerName  string `json:"caller_name"`
	CallerPhone string `json:"caller_phone"`
	CallerEmail string `json:"caller_email"`
}

// Incident is the canonical normalized record. All six fields are strings;
// TimeReported is already rendered in the configured local timezone using
// ReportedTimeLayout, so serializers and the listing API emit it verbatim.
// The contact fields are optional and empty when the caller gave none.
type Incident struct {
	TimeReported string `json:"time_reported"`
	Address      string `json:"address"`
	IncidentType string `json:"incident_type"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// Key returns the incident's identity for deduplication. Two records with the
// same reported time, address, and type are the same incident regardless of
// contact fields.
func (i Incident) Key() string {
	return i.TimeReported + "|" + i.Address + "|" + i.IncidentType
}

// Columns lists the persisted fields in canonical order. CSV files carry
// exactly this header row; JSON objects carry exactly these keys.
func Columns() []string {
	return []string{"time_reported", "address", "incident_type", "name", "phone", "email"}
}

// Row returns the incident's values in canonical column order.
func (i Incident) Row() []string {
	return []string{i.TimeReported, i.Address, i.IncidentType, i.Name, i.Phone, i.Email}
}

// FromRow builds an Incident from values in canonical column order.
// Callers validate the length against Columns first.
func FromRow(row []string) Incident {
	return Incident{
		TimeReported: row[0],
		Address:      row[1],
		IncidentType: row[2],
		Name:         row[3],
		Phone:        row[4],
		Email:        row[5],
	}
}
