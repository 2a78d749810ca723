package rackspace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Services whose devices can have PTR records.
const (
	ServiceCloudServers       = "cloudServersOpenStack"
	ServiceCloudLoadBalancers = "cloudLoadBalancers"
)

// CanAccessPtrRecords returns ErrAccessDenied unless service is one of the
// services that support PTR records and the identity's catalog lists it.
func (d *DNS) CanAccessPtrRecords(service string) error {
	switch service {
	case ServiceCloudServers, ServiceCloudLoadBalancers:
		if d.identity.HasService(service) {
			return nil
		}
	}

	return fmt.Errorf("%w: PTR records of %q", ErrAccessDenied, service)
}

type ptrLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

func ptrPayload(service, deviceURL string, records *RecordList) map[string]any {
	return map[string]any{
		"recordsList": records.ToMap(),
		"link": ptrLink{
			Href: deviceURL,
			Rel:  service,
		},
	}
}

// ListPtrRecords returns the PTR records of the device at deviceURL.
func (d *DNS) ListPtrRecords(ctx context.Context, service, deviceURL string) (*RecordList, error) {
	if err := d.CanAccessPtrRecords(service); err != nil {
		return nil, err
	}

	records := &RecordList{}

	err := d.call(ctx, http.MethodGet, "/rdns/"+url.PathEscape(service), url.Values{"href": {deviceURL}}, nil, records)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ListPtrRecordDetails returns one PTR record of the device at deviceURL.
func (d *DNS) ListPtrRecordDetails(ctx context.Context, service, deviceURL, recordID string) (*Record, error) {
	if err := d.CanAccessPtrRecords(service); err != nil {
		return nil, err
	}

	record := &Record{}

	path := "/rdns/" + url.PathEscape(service) + "/" + url.PathEscape(recordID)

	err := d.call(ctx, http.MethodGet, path, url.Values{"href": {deviceURL}}, nil, record)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// AddPtrRecords starts adding PTR records to the device at deviceURL.
func (d *DNS) AddPtrRecords(ctx context.Context, service, deviceURL string, records *RecordList) (*Job, error) {
	if err := d.CanAccessPtrRecords(service); err != nil {
		return nil, err
	}

	if err := records.Validate(); err != nil {
		return nil, err
	}

	return d.job(ctx, http.MethodPost, "/rdns", nil, ptrPayload(service, deviceURL, records))
}

// ModifyPtrRecords starts an update of PTR records of the device at deviceURL.
func (d *DNS) ModifyPtrRecords(ctx context.Context, service, deviceURL string, records *RecordList) (*Job, error) {
	if err := d.CanAccessPtrRecords(service); err != nil {
		return nil, err
	}

	return d.job(ctx, http.MethodPut, "/rdns", nil, ptrPayload(service, deviceURL, records))
}

// RemovePtrRecords starts the removal of the PTR record for ip from the
// device at deviceURL, or of all its PTR records when ip is empty.
func (d *DNS) RemovePtrRecords(ctx context.Context, service, deviceURL, ip string) (*Job, error) {
	if err := d.CanAccessPtrRecords(service); err != nil {
		return nil, err
	}

	params := url.Values{"href": {deviceURL}}
	if ip != "" {
		params.Set("ip", ip)
	}

	return d.job(ctx, http.MethodDelete, "/rdns/"+url.PathEscape(service), params, nil)
}
