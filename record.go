package rackspace

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record types supported by Cloud DNS. DKIM and SPF records are published as TXT.
const (
	TypeA     = "A"
	TypeAAAA  = "AAAA"
	TypeCNAME = "CNAME"
	TypeMX    = "MX"
	TypeNS    = "NS"
	TypePTR   = "PTR"
	TypeSRV   = "SRV"
	TypeTXT   = "TXT"
	TypeDKIM  = TypeTXT
	TypeSPF   = TypeTXT
)

// recordField is a field that may be sent for a record type.
type recordField struct {
	name     string
	required bool
}

var (
	baseRecordFields = []recordField{
		{"name", true},
		{"type", true},
		{"data", true},
		{"ttl", false},
		{"comment", false},
	}
	priorityRecordFields = append([]recordField{{"priority", true}}, baseRecordFields...)

	// recordFields lists what may be sent for each record type.
	recordFields = map[string][]recordField{
		TypeA:     baseRecordFields,
		TypeAAAA:  baseRecordFields,
		TypeCNAME: baseRecordFields,
		TypeMX:    priorityRecordFields,
		TypeNS:    baseRecordFields,
		TypePTR:   baseRecordFields,
		TypeSRV:   priorityRecordFields,
		TypeTXT:   baseRecordFields,
	}
)

// Record is a DNS record of a domain, or a PTR record of a device.
type Record struct {
	ID   string
	Name string `validate:"required,max=255"`
	Type string `validate:"required,oneof=A AAAA CNAME MX NS PTR SRV TXT"`
	// Data must be an IP address for A, AAAA and PTR records.
	Data string `validate:"required"`
	// TTL is at least 300 seconds. Zero inherits the domain TTL.
	TTL int `validate:"omitempty,min=300"`
	// Priority is sent for MX and SRV records only.
	Priority int `validate:"min=0,max=65535"`
	// Comment is at most 160 characters.
	Comment string `validate:"max=160"`
	Created time.Time
	Updated time.Time
}

type recordJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Data     string `json:"data"`
	TTL      int    `json:"ttl"`
	Priority int    `json:"priority"`
	Comment  string `json:"comment"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
}

// UnmarshalJSON hydrates a record from an API response. Unknown keys are ignored.
func (r *Record) UnmarshalJSON(b []byte) error {
	var w recordJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	created, err := parseTimestamp(w.Created)
	if err != nil {
		return fmt.Errorf("record %s: created: %w", w.ID, err)
	}
	updated, err := parseTimestamp(w.Updated)
	if err != nil {
		return fmt.Errorf("record %s: updated: %w", w.ID, err)
	}

	*r = Record{
		ID:       w.ID,
		Name:     w.Name,
		Type:     w.Type,
		Data:     w.Data,
		TTL:      w.TTL,
		Priority: w.Priority,
		Comment:  w.Comment,
		Created:  created,
		Updated:  updated,
	}

	return nil
}

// MarshalJSON encodes the record as ToMap does.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// ToMap returns the fields of the record that the API accepts for its type:
// required fields always, optional fields when set, and the ID when known.
// A record without a type yields only its ID.
func (r *Record) ToMap() map[string]any {
	data := map[string]any{}

	if r.Type != "" {
		fields, ok := recordFields[r.Type]
		if !ok {
			fields = baseRecordFields
		}

		for _, f := range fields {
			v, set := r.field(f.name)
			if f.required || set {
				data[f.name] = v
			}
		}
	}

	if r.ID != "" {
		data["id"] = r.ID
	}

	return data
}

// field returns the value of a sendable field and whether it is set.
func (r *Record) field(name string) (any, bool) {
	switch name {
	case "name":
		return r.Name, r.Name != ""
	case "type":
		return r.Type, r.Type != ""
	case "data":
		return r.Data, r.Data != ""
	case "ttl":
		return r.TTL, r.TTL != 0
	case "priority":
		return r.Priority, r.Priority != 0
	case "comment":
		return r.Comment, r.Comment != ""
	}
	return nil, false
}

// RecordList is an ordered list of records.
type RecordList struct {
	List[*Record]

	// TotalEntries is the server-side total when the list is a page of a larger result.
	TotalEntries int
}

// NewRecordList returns a list holding records.
func NewRecordList(records ...*Record) *RecordList {
	l := &RecordList{}
	l.Append(records...)
	return l
}

type recordListJSON struct {
	Records      []*Record `json:"records"`
	TotalEntries int       `json:"totalEntries"`
}

// UnmarshalJSON hydrates the list from {"records": [...]}.
func (l *RecordList) UnmarshalJSON(b []byte) error {
	var w recordListJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*l = RecordList{TotalEntries: w.TotalEntries}
	l.Append(w.Records...)

	return nil
}

// MarshalJSON encodes the list as ToMap does.
func (l *RecordList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.ToMap())
}

// ToMap returns {"records": [...]} with each record encoded by Record.ToMap.
func (l *RecordList) ToMap() map[string]any {
	records := []map[string]any{}
	if l == nil {
		return map[string]any{"records": records}
	}
	for _, r := range l.All() {
		if r == nil {
			continue
		}
		records = append(records, r.ToMap())
	}
	return map[string]any{"records": records}
}
