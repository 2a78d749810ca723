package rackspace

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// RecordFilter narrows ListRecords. Name and Data filters require Type.
type RecordFilter struct {
	Type   string
	Name   string
	Data   string
	Limit  int
	Offset int
}

func (f RecordFilter) values() url.Values {
	v := url.Values{}
	if f.Type != "" {
		v.Set("type", f.Type)
	}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.Data != "" {
		v.Set("data", f.Data)
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	return v
}

// ListRecords returns the records of a domain. The SOA record is never listed.
func (d *DNS) ListRecords(ctx context.Context, domainID int64, filter RecordFilter) (*RecordList, error) {
	records := &RecordList{}

	err := d.call(ctx, http.MethodGet, domainPath(domainID, "records"), filter.values(), nil, records)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ListRecordDetails returns a single record of a domain.
func (d *DNS) ListRecordDetails(ctx context.Context, domainID int64, recordID string) (*Record, error) {
	record := &Record{}

	err := d.call(ctx, http.MethodGet, domainPath(domainID, "records", recordID), nil, nil, record)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// AddRecords starts adding records to a domain.
func (d *DNS) AddRecords(ctx context.Context, domainID int64, records *RecordList) (*Job, error) {
	if err := records.Validate(); err != nil {
		return nil, err
	}

	return d.job(ctx, http.MethodPost, domainPath(domainID, "records"), nil, records.ToMap())
}

// ModifyRecords starts an update of records of a domain. Each record must carry its ID.
func (d *DNS) ModifyRecords(ctx context.Context, domainID int64, records *RecordList) (*Job, error) {
	return d.job(ctx, http.MethodPut, domainPath(domainID, "records"), nil, records.ToMap())
}

// RemoveRecords starts the removal of records from a domain.
func (d *DNS) RemoveRecords(ctx context.Context, domainID int64, recordIDs []string) (*Job, error) {
	params := url.Values{}
	for _, id := range recordIDs {
		params.Add("id", id)
	}

	return d.job(ctx, http.MethodDelete, domainPath(domainID, "records"), params, nil)
}
