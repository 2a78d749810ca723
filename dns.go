package rackspace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dnsServiceKey = "cloudDNS"

// DNS is a client for the Cloud DNS API of an identity.
type DNS struct {
	apiClient

	identity *Identity
}

// NewDNS returns a DNS client for identity. The identity authenticates on
// the first call that needs a token. The client logs through the identity's logger.
func NewDNS(identity *Identity) *DNS {
	return &DNS{
		apiClient: identity.apiClient,
		identity:  identity,
	}
}

// Identity returns the identity the client authenticates with.
func (d *DNS) Identity() *Identity {
	return d.identity
}

// call sends a request to path under the cloudDNS public endpoint.
func (d *DNS) call(ctx context.Context, method, path string, params url.Values, payload, result any) error {
	if err := d.identity.ensureValid(ctx); err != nil {
		return err
	}

	base, err := d.baseURL()
	if err != nil {
		return err
	}

	return d.apiClient.call(ctx, method, base+path, params, payload, d.identity.Token(), result)
}

// baseURL returns the first public URL of the cloudDNS service.
func (d *DNS) baseURL() (string, error) {
	service, err := d.identity.Service(dnsServiceKey)
	if err != nil {
		return "", err
	}

	if len(service.Endpoints) == 0 {
		return "", fmt.Errorf("%w: %s has no endpoints", ErrServiceNotAvailable, dnsServiceKey)
	}

	return strings.TrimSuffix(service.Endpoints[0].PublicURL, "/"), nil
}

// DomainFilter narrows ListDomains.
type DomainFilter struct {
	Name   string
	Limit  int
	Offset int
}

func (f DomainFilter) values() url.Values {
	v := url.Values{}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	return v
}

// DomainImport is a zone in BIND 9 format to import as a new domain.
type DomainImport struct {
	ContentType string `json:"contentType"`
	Contents    string `json:"contents"`
}

// DomainChanges lists changes made to a domain.
type DomainChanges struct {
	TotalEntries int      `json:"totalEntries"`
	Changes      []Change `json:"changes"`
}

// Change is a single change to a domain or one of its records.
type Change struct {
	ID            string         `json:"id"`
	Domain        string         `json:"domain"`
	Action        string         `json:"action"`
	TargetType    string         `json:"targetType"`
	TargetID      string         `json:"targetId"`
	AccountID     string         `json:"accountId"`
	ChangeDetails []ChangeDetail `json:"changeDetails"`
}

// ChangeDetail is one field changed by a Change.
type ChangeDetail struct {
	Field         string `json:"field"`
	OriginalValue string `json:"originalValue"`
	NewValue      string `json:"newValue"`
}

func domainPath(domainID int64, segments ...string) string {
	p := "/domains/" + strconv.FormatInt(domainID, 10)
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

// ListAllLimits returns every limit that applies to the account.
func (d *DNS) ListAllLimits(ctx context.Context) (map[string]any, error) {
	return d.rawGet(ctx, "/limits")
}

// ListLimitTypes returns the kinds of limits.
func (d *DNS) ListLimitTypes(ctx context.Context) (map[string]any, error) {
	return d.rawGet(ctx, "/limits/types")
}

// ListSpecificLimit returns the limits of one type, e.g. "rate_limit" or "domain_limit".
func (d *DNS) ListSpecificLimit(ctx context.Context, limitType string) (map[string]any, error) {
	return d.rawGet(ctx, "/limits/"+url.PathEscape(limitType))
}

func (d *DNS) rawGet(ctx context.Context, path string) (map[string]any, error) {
	data := map[string]any{}

	err := d.call(ctx, http.MethodGet, path, nil, nil, &data)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// ListDomains returns the domains of the account, optionally filtered by name.
func (d *DNS) ListDomains(ctx context.Context, filter DomainFilter) (*DomainList, error) {
	domains := &DomainList{}

	err := d.call(ctx, http.MethodGet, "/domains", filter.values(), nil, domains)
	if err != nil {
		return nil, err
	}

	return domains, nil
}

// ListDomainDetails returns a domain, optionally with its records and subdomains.
func (d *DNS) ListDomainDetails(ctx context.Context, domainID int64, showRecords, showSubdomains bool) (*Domain, error) {
	params := url.Values{
		"showRecords":    {boolString(showRecords)},
		"showSubdomains": {boolString(showSubdomains)},
	}

	domain := &Domain{}

	err := d.call(ctx, http.MethodGet, domainPath(domainID), params, nil, domain)
	if err != nil {
		return nil, err
	}

	return domain, nil
}

// ListDomainChanges returns the changes made to a domain since the given time.
func (d *DNS) ListDomainChanges(ctx context.Context, domainID int64, since time.Time) (*DomainChanges, error) {
	params := url.Values{"since": {since.Format(sinceLayout)}}

	changes := &DomainChanges{}

	err := d.call(ctx, http.MethodGet, domainPath(domainID, "changes"), params, nil, changes)
	if err != nil {
		return nil, err
	}

	return changes, nil
}

// ExportDomain starts an export of the domain in BIND 9 format.
func (d *DNS) ExportDomain(ctx context.Context, domainID int64) (*Job, error) {
	return d.job(ctx, http.MethodGet, domainPath(domainID, "export"), nil, nil)
}

// CreateDomains starts the creation of domains, including their records and subdomains.
func (d *DNS) CreateDomains(ctx context.Context, domains *DomainList) (*Job, error) {
	if err := domains.Validate(); err != nil {
		return nil, err
	}

	return d.job(ctx, http.MethodPost, "/domains", nil, domains.ToMap(true))
}

// ImportDomain starts the import of one or more zones. An empty ContentType defaults to BIND_9.
func (d *DNS) ImportDomain(ctx context.Context, imports ...DomainImport) (*Job, error) {
	for i := range imports {
		if imports[i].ContentType == "" {
			imports[i].ContentType = "BIND_9"
		}
	}

	payload := map[string]any{"domains": imports}

	return d.job(ctx, http.MethodPost, "/domains/import", nil, payload)
}

// ModifyDomains starts an update of the given domains. Domain names cannot
// be changed and are never sent; nested records and subdomains are ignored.
func (d *DNS) ModifyDomains(ctx context.Context, domains *DomainList) (*Job, error) {
	payload := domains.ToMap(false)

	for _, domain := range payload["domains"].([]map[string]any) {
		delete(domain, "name")
	}

	return d.job(ctx, http.MethodPut, "/domains", nil, payload)
}

// RemoveDomains starts the removal of domains, and of their subdomains if removeSubdomains is set.
func (d *DNS) RemoveDomains(ctx context.Context, domainIDs []int64, removeSubdomains bool) (*Job, error) {
	params := url.Values{}
	for _, id := range domainIDs {
		params.Add("id", strconv.FormatInt(id, 10))
	}
	params.Set("removeSubdomains", boolString(removeSubdomains))

	return d.job(ctx, http.MethodDelete, "/domains", params, nil)
}

// ListSubdomains returns the subdomains of a domain.
func (d *DNS) ListSubdomains(ctx context.Context, domainID int64) (*DomainList, error) {
	domains := &DomainList{}

	err := d.call(ctx, http.MethodGet, domainPath(domainID, "subdomains"), nil, nil, domains)
	if err != nil {
		return nil, err
	}

	return domains, nil
}

// job sends a request that the API answers with an asynchronous job.
func (d *DNS) job(ctx context.Context, method, path string, params url.Values, payload any) (*Job, error) {
	job := &Job{}

	err := d.call(ctx, method, path, params, payload, job)
	if err != nil {
		return nil, err
	}

	return job, nil
}
