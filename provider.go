package rackspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/libdns/libdns"
)

const (
	defaultPollInterval = time.Second
	pageSize            = 100
	minTTL              = 300
)

var (
	errRecordNotSupported = errors.New("Record Type is not supported")
)

// Provider facilitates DNS record management using the Rackspace Cloud DNS API.
// It implements the libdns interfaces for listing zones and getting, appending,
// setting, and deleting DNS records.
type Provider struct {
	Username         string `json:"username,omitempty"`          // Rackspace account username
	APIKey           string `json:"api_key,omitempty"`           // Rackspace API key
	IdentityEndpoint string `json:"identity_endpoint,omitempty"` // defaults to USEndpoint

	// PollInterval is how often the status of asynchronous changes is checked.
	PollInterval time.Duration `json:"poll_interval,omitempty"`

	dns   *DNS
	mutex sync.Mutex
}

// initClient returns the DNS client, creating it on first use.
// The identity authenticates on the first request and again once its token expires.
func (p *Provider) initClient() (*DNS, error) {
	if p.dns != nil {
		return p.dns, nil
	}

	if p.Username == "" || p.APIKey == "" {
		return nil, ErrMissingCredentials
	}

	p.dns = NewDNS(NewIdentity(p.Username, p.APIKey, p.IdentityEndpoint))

	return p.dns, nil
}

// ListZones lists all the domains of the account.
func (p *Provider) ListZones(ctx context.Context) ([]libdns.Zone, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	dns, err := p.initClient()
	if err != nil {
		return nil, err
	}

	var zones []libdns.Zone
	for offset := 0; ; offset += pageSize {
		domains, err := dns.ListDomains(ctx, DomainFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}

		for _, domain := range domains.All() {
			zones = append(zones, libdns.Zone{Name: domain.Name + "."})
		}

		if domains.Len() < pageSize || offset+pageSize >= domains.TotalEntries {
			break
		}
	}

	return zones, nil
}

// GetRecords lists all the DNS records in the specified zone.
func (p *Provider) GetRecords(ctx context.Context, zone string) ([]libdns.Record, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	dns, err := p.initClient()
	if err != nil {
		return nil, err
	}

	domainID, err := getDomainID(ctx, dns, zone)
	if err != nil {
		return nil, err
	}

	records, err := getRecords(ctx, dns, domainID)
	if err != nil {
		return nil, err
	}

	var libRecords []libdns.Record
	for _, record := range records {
		libRecord, err := convertToLibdnsRecord(record, zone)
		if err != nil {
			if err == errRecordNotSupported {
				continue
			}
			return nil, err
		}
		libRecords = append(libRecords, libRecord)
	}

	return libRecords, nil
}

// AppendRecords adds the specified records to the zone.
// It returns the successfully added records.
func (p *Provider) AppendRecords(ctx context.Context, zone string, records []libdns.Record) ([]libdns.Record, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	dns, err := p.initClient()
	if err != nil {
		return nil, err
	}

	domainID, err := getDomainID(ctx, dns, zone)
	if err != nil {
		return nil, err
	}

	list := NewRecordList()
	for _, rec := range records {
		converted, err := convertToRackspaceRecord(rec, zone)
		if err != nil {
			return nil, err
		}
		list.Append(converted)
	}

	job, err := dns.AddRecords(ctx, domainID, list)
	if err != nil {
		return nil, err
	}

	if err := p.waitForJob(ctx, dns, job); err != nil {
		return nil, err
	}

	return records, nil
}

// SetRecords sets the records in the zone so that, for every (name, type)
// pair in the input, the zone holds exactly the input records. Existing
// records of a pair are updated in place, missing ones are added and
// leftover ones are removed. It returns the records that were set.
func (p *Provider) SetRecords(ctx context.Context, zone string, records []libdns.Record) ([]libdns.Record, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	dns, err := p.initClient()
	if err != nil {
		return nil, err
	}

	domainID, err := getDomainID(ctx, dns, zone)
	if err != nil {
		return nil, err
	}

	existing, err := getRecords(ctx, dns, domainID)
	if err != nil {
		return nil, err
	}

	toAdd := NewRecordList()
	toModify := NewRecordList()
	var toRemove []string

	var keys []rrsetKey
	wanted := map[rrsetKey][]*Record{}

	for _, rec := range records {
		converted, err := convertToRackspaceRecord(rec, zone)
		if err != nil {
			return nil, err
		}

		key := rrsetKeyOf(converted)
		if _, ok := wanted[key]; !ok {
			keys = append(keys, key)
		}
		wanted[key] = append(wanted[key], converted)
	}

	for _, key := range keys {
		current := recordsOf(existing, key)

		for i, rec := range wanted[key] {
			if i < len(current) {
				rec.ID = current[i].ID
				toModify.Append(rec)
				continue
			}
			toAdd.Append(rec)
		}

		for _, rec := range current[min(len(current), len(wanted[key])):] {
			toRemove = append(toRemove, rec.ID)
		}
	}

	if len(toRemove) > 0 {
		job, err := dns.RemoveRecords(ctx, domainID, toRemove)
		if err != nil {
			return nil, err
		}
		if err := p.waitForJob(ctx, dns, job); err != nil {
			return nil, err
		}
	}

	if toModify.Len() > 0 {
		job, err := dns.ModifyRecords(ctx, domainID, toModify)
		if err != nil {
			return nil, err
		}
		if err := p.waitForJob(ctx, dns, job); err != nil {
			return nil, err
		}
	}

	if toAdd.Len() > 0 {
		job, err := dns.AddRecords(ctx, domainID, toAdd)
		if err != nil {
			return nil, err
		}
		if err := p.waitForJob(ctx, dns, job); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// DeleteRecords deletes the specified records from the zone.
// It returns the records that were successfully deleted.
func (p *Provider) DeleteRecords(ctx context.Context, zone string, records []libdns.Record) ([]libdns.Record, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	dns, err := p.initClient()
	if err != nil {
		return nil, err
	}

	domainID, err := getDomainID(ctx, dns, zone)
	if err != nil {
		return nil, err
	}

	existing, err := getRecords(ctx, dns, domainID)
	if err != nil {
		return nil, err
	}

	var recordIDs []string
	var deleted []libdns.Record

	for _, rec := range records {
		converted, err := convertToRackspaceRecord(rec, zone)
		if err != nil {
			return nil, err
		}

		for _, candidate := range existing {
			if !sameRecord(candidate, converted) {
				continue
			}
			recordIDs = append(recordIDs, candidate.ID)
			deleted = append(deleted, rec)
			break
		}
	}

	if len(recordIDs) == 0 {
		return nil, nil
	}

	job, err := dns.RemoveRecords(ctx, domainID, recordIDs)
	if err != nil {
		return nil, err
	}

	if err := p.waitForJob(ctx, dns, job); err != nil {
		return nil, err
	}

	return deleted, nil
}

// waitForJob polls an asynchronous job until it completes or fails.
func (p *Provider) waitForJob(ctx context.Context, dns *DNS, job *Job) error {
	interval := p.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !job.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		next, err := dns.JobStatus(ctx, job.JobID, true)
		if err != nil {
			return err
		}
		job = next
	}

	if job.Status == JobError {
		if job.Error != nil {
			return fmt.Errorf("job %s failed: %s %s", job.JobID, job.Error.Message, job.Error.Details)
		}
		return fmt.Errorf("job %s failed", job.JobID)
	}

	return nil
}

// getDomainID returns the ID of the domain serving zone.
func getDomainID(ctx context.Context, dns *DNS, zone string) (int64, error) {
	name := strings.TrimSuffix(zone, ".")

	domains, err := dns.ListDomains(ctx, DomainFilter{Name: name})
	if err != nil {
		return 0, err
	}

	for _, domain := range domains.All() {
		if strings.EqualFold(domain.Name, name) {
			return domain.ID, nil
		}
	}

	return 0, fmt.Errorf("no such domain: %s", name)
}

// getRecords returns every record of a domain, following pagination.
func getRecords(ctx context.Context, dns *DNS, domainID int64) ([]*Record, error) {
	var records []*Record

	for offset := 0; ; offset += pageSize {
		page, err := dns.ListRecords(ctx, domainID, RecordFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}

		records = append(records, page.Items()...)

		if page.Len() < pageSize || offset+pageSize >= page.TotalEntries {
			return records, nil
		}
	}
}

// rrsetKey identifies the records sharing a name and type.
type rrsetKey struct {
	name       string
	recordType string
}

func rrsetKeyOf(rec *Record) rrsetKey {
	return rrsetKey{name: strings.ToLower(rec.Name), recordType: rec.Type}
}

// recordsOf returns the records matching key, in listing order.
func recordsOf(records []*Record, key rrsetKey) []*Record {
	var out []*Record
	for _, record := range records {
		if rrsetKeyOf(record) == key {
			out = append(out, record)
		}
	}
	return out
}

// sameRecord reports whether an existing record matches the wanted one.
// Empty data on the wanted record matches any data.
func sameRecord(existing, wanted *Record) bool {
	if !strings.EqualFold(existing.Name, wanted.Name) || existing.Type != wanted.Type {
		return false
	}
	if wanted.Data != "" && !sameData(existing.Type, existing.Data, wanted.Data) {
		return false
	}
	return wanted.Priority == 0 || existing.Priority == wanted.Priority
}

// sameData compares record data. Only host names and addresses ignore case.
func sameData(recordType, a, b string) bool {
	switch recordType {
	case TypeA, TypeAAAA, TypeCNAME, TypeNS, TypeMX, TypeSRV, TypePTR:
		return strings.EqualFold(a, b)
	}
	return a == b
}

// convertToLibdnsRecord converts a Cloud DNS record to a libdns-compatible record.
func convertToLibdnsRecord(rec *Record, zone string) (libdns.Record, error) {
	rr := libdns.RR{
		Name: libdns.RelativeName(rec.Name, zone),
		TTL:  time.Duration(rec.TTL) * time.Second,
		Type: rec.Type,
		Data: rec.Data,
	}

	switch rec.Type {
	case TypeA, TypeAAAA, TypeCNAME, TypeNS, TypeTXT:
	case TypeMX, TypeSRV:
		rr.Data = fmt.Sprintf("%d %s", rec.Priority, rec.Data)
	default:
		return nil, errRecordNotSupported
	}

	return rr.Parse()
}

// convertToRackspaceRecord converts a libdns.Record into a Cloud DNS record.
// TTLs below the API minimum are raised to it.
func convertToRackspaceRecord(rec libdns.Record, zone string) (*Record, error) {
	rr := rec.RR()
	parsed, err := rr.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}

	if parsed == nil {
		return nil, fmt.Errorf("record is nil after parsing: %v", rec)
	}

	ttl := int(rr.TTL.Seconds())
	if ttl > 0 && ttl < minTTL {
		ttl = minTTL
	}

	out := &Record{
		Name: strings.TrimSuffix(libdns.AbsoluteName(rr.Name, zone), "."),
		Type: rr.Type,
		TTL:  ttl,
	}

	switch r := parsed.(type) {
	case libdns.Address:
		out.Data = r.IP.String()
	case libdns.CNAME:
		out.Data = strings.TrimSuffix(r.Target, ".")
	case libdns.TXT:
		out.Data = r.Text
	case libdns.NS:
		out.Data = strings.TrimSuffix(r.Target, ".")
	case libdns.MX:
		out.Priority = int(r.Preference)
		out.Data = strings.TrimSuffix(r.Target, ".")
	case libdns.SRV:
		out.Priority = int(r.Priority)
		out.Data = fmt.Sprintf("%d %d %s", r.Weight, r.Port, strings.TrimSuffix(r.Target, "."))
	default:
		return nil, errRecordNotSupported
	}

	return out, nil
}

// Interface guards
var (
	_ libdns.ZoneLister     = (*Provider)(nil)
	_ libdns.RecordGetter   = (*Provider)(nil)
	_ libdns.RecordAppender = (*Provider)(nil)
	_ libdns.RecordSetter   = (*Provider)(nil)
	_ libdns.RecordDeleter  = (*Provider)(nil)
)
