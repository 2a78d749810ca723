// Package rackspace is a client for the Rackspace Cloud DNS v1.0 and Identity v2.0 APIs.
//
// An Identity authenticates with a username and API key and holds the issued
// token and service catalog. A DNS client resolves its endpoint from that
// catalog and re-authenticates the identity whenever the token is no longer
// valid. Provider adapts the DNS client to the libdns interfaces.
//
// None of the types in this package are safe for concurrent use except Provider.
package rackspace

// identityRequest is the top-level payload sent to POST /v2.0/tokens.
type identityRequest struct {
	Auth auth `json:"auth"`
}

// auth carries the Rackspace API key credentials.
type auth struct {
	APIKeyCredentials APIKeyCredentials `json:"RAX-KSKEY:apiKeyCredentials"`
}

// APIKeyCredentials is a username and API key pair.
type APIKeyCredentials struct {
	Username string `json:"username"`
	APIKey   string `json:"apiKey"`
}

// accessResponse is returned by POST /v2.0/tokens.
type accessResponse struct {
	Access struct {
		Token struct {
			ID      string `json:"id"`
			Expires string `json:"expires"`
			Tenant  Tenant `json:"tenant"`
		} `json:"token"`
		ServiceCatalog []Service `json:"serviceCatalog"`
		User           User      `json:"user"`
	} `json:"access"`
}

// Service is a service catalog entry.
type Service struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Endpoints []Endpoint `json:"endpoints"`
}

// Endpoint is one published endpoint of a service.
type Endpoint struct {
	PublicURL   string `json:"publicURL"`
	InternalURL string `json:"internalURL,omitempty"`
	Region      string `json:"region,omitempty"`
	TenantID    string `json:"tenantId,omitempty"`
}

// Tenant is an identity tenant (account).
type Tenant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled,omitempty"`
}

// Role is a role granted to a user.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ServiceID   string `json:"serviceId,omitempty"`
	TenantID    string `json:"tenantId,omitempty"`
}

// User is an identity user. Password is only sent, never returned.
type User struct {
	ID            string `json:"id,omitempty"`
	Username      string `json:"username,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Enabled       *bool  `json:"enabled,omitempty"`
	Password      string `json:"OS-KSADM:password,omitempty"`
	DefaultRegion string `json:"RAX-AUTH:defaultRegion,omitempty"`
	DomainID      string `json:"RAX-AUTH:domainId,omitempty"`
	Roles         []Role `json:"roles,omitempty"`
	Created       string `json:"created,omitempty"`
	Updated       string `json:"updated,omitempty"`
}
