package rackspace

import (
	"encoding/json"
	"fmt"
	"time"
)

// Nameserver is a name server authoritative for a domain.
type Nameserver struct {
	Name string `json:"name"`
}

// Domain is a Cloud DNS domain.
//
// ID and Name cannot be changed once the domain exists; ModifyDomains never
// sends the name.
type Domain struct {
	// ID is assigned by the server. Zero means the domain has not been created.
	ID           int64
	Name         string      `validate:"required,hostname_rfc1123,max=253"`
	Comment      string      `validate:"max=160"`
	EmailAddress string      `validate:"omitempty,email"`
	TTL          int         `validate:"omitempty,min=300"`
	Records      *RecordList `validate:"-"`
	Subdomains   *DomainList `validate:"-"`

	// Read-only, populated from API responses.
	Nameservers []Nameserver `validate:"-"`
	Created     time.Time
	Updated     time.Time
	AccountID   int64
}

type domainJSON struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Comment      string       `json:"comment"`
	EmailAddress string       `json:"emailAddress"`
	TTL          int          `json:"ttl"`
	RecordsList  *RecordList  `json:"recordsList"`
	Subdomains   *DomainList  `json:"subdomains"`
	Nameservers  []Nameserver `json:"nameservers"`
	Created      string       `json:"created"`
	Updated      string       `json:"updated"`
	AccountID    int64        `json:"accountId"`
}

// UnmarshalJSON hydrates a domain from an API response. Unknown keys are ignored.
func (d *Domain) UnmarshalJSON(b []byte) error {
	var w domainJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	created, err := parseTimestamp(w.Created)
	if err != nil {
		return fmt.Errorf("domain %s: created: %w", w.Name, err)
	}
	updated, err := parseTimestamp(w.Updated)
	if err != nil {
		return fmt.Errorf("domain %s: updated: %w", w.Name, err)
	}

	if w.RecordsList == nil {
		w.RecordsList = &RecordList{}
	}
	if w.Subdomains == nil {
		w.Subdomains = &DomainList{}
	}

	*d = Domain{
		ID:           w.ID,
		Name:         w.Name,
		Comment:      w.Comment,
		EmailAddress: w.EmailAddress,
		TTL:          w.TTL,
		Records:      w.RecordsList,
		Subdomains:   w.Subdomains,
		Nameservers:  w.Nameservers,
		Created:      created,
		Updated:      updated,
		AccountID:    w.AccountID,
	}

	return nil
}

// MarshalJSON encodes the domain as ToMap(true) does.
func (d *Domain) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap(true))
}

// ToMap returns the writable fields of the domain. The ID is included only
// once assigned. With deep set, non-empty record and subdomain lists are
// included as recordsList and subdomains.
func (d *Domain) ToMap(deep bool) map[string]any {
	data := map[string]any{
		"name":         d.Name,
		"comment":      d.Comment,
		"emailAddress": d.EmailAddress,
		"ttl":          d.TTL,
	}

	if d.ID != 0 {
		data["id"] = d.ID
	}

	if deep && d.Records != nil && d.Records.Len() > 0 {
		data["recordsList"] = d.Records.ToMap()
	}

	if deep && d.Subdomains != nil && d.Subdomains.Len() > 0 {
		data["subdomains"] = d.Subdomains.ToMap(true)
	}

	return data
}

// DomainList is an ordered list of domains.
type DomainList struct {
	List[*Domain]

	// TotalEntries is the server-side total when the list is a page of a larger result.
	TotalEntries int
}

// NewDomainList returns a list holding domains.
func NewDomainList(domains ...*Domain) *DomainList {
	l := &DomainList{}
	l.Append(domains...)
	return l
}

type domainListJSON struct {
	Domains      []*Domain `json:"domains"`
	TotalEntries int       `json:"totalEntries"`
}

// UnmarshalJSON hydrates the list from {"domains": [...]}.
func (l *DomainList) UnmarshalJSON(b []byte) error {
	var w domainListJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*l = DomainList{TotalEntries: w.TotalEntries}
	l.Append(w.Domains...)

	return nil
}

// MarshalJSON encodes the list as ToMap(true) does.
func (l *DomainList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.ToMap(true))
}

// ToMap returns {"domains": [...]} with each domain encoded by Domain.ToMap(deep).
func (l *DomainList) ToMap(deep bool) map[string]any {
	domains := []map[string]any{}
	if l == nil {
		return map[string]any{"domains": domains}
	}
	for _, d := range l.All() {
		if d == nil {
			continue
		}
		domains = append(domains, d.ToMap(deep))
	}
	return map[string]any{"domains": domains}
}
