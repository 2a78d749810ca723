package rackspace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// USEndpoint is the identity endpoint for US accounts.
	USEndpoint = "https://identity.api.rackspacecloud.com/"
	// UKEndpoint is the identity endpoint for UK accounts.
	UKEndpoint = "https://lon.identity.api.rackspacecloud.com/"

	identityVersion = "v2.0"
)

// Identity authenticates against the Rackspace Identity service and holds
// the resulting token, tenant and service catalog.
type Identity struct {
	apiClient

	Username string
	APIKey   string
	Endpoint string

	token          string
	tokenExpiry    time.Time
	tenantID       string
	serviceCatalog map[string]Service
	user           *User
}

// NewIdentity returns an unauthenticated identity. An empty endpoint selects USEndpoint.
func NewIdentity(username, apiKey, endpoint string) *Identity {
	if endpoint == "" {
		endpoint = USEndpoint
	}

	return &Identity{
		apiClient: newAPIClient(),
		Username:  username,
		APIKey:    apiKey,
		Endpoint:  endpoint,
	}
}

// Token returns the current token, empty before authentication.
func (i *Identity) Token() string { return i.token }

// TokenExpiry returns when the current token expires.
func (i *Identity) TokenExpiry() time.Time { return i.tokenExpiry }

// TenantID returns the tenant the current token is scoped to.
func (i *Identity) TenantID() string { return i.tenantID }

// ServiceCatalog returns the services available to the identity, keyed by name.
func (i *Identity) ServiceCatalog() map[string]Service { return i.serviceCatalog }

// User returns the user the token was issued to, nil before authentication.
func (i *Identity) User() *User { return i.user }

// SetToken restores a previously issued token.
func (i *Identity) SetToken(token string) { i.token = token }

// SetTokenExpiry sets the expiry of the current token.
func (i *Identity) SetTokenExpiry(expiry time.Time) { i.tokenExpiry = expiry }

// SetTenantID sets the tenant the current token is scoped to.
func (i *Identity) SetTenantID(tenantID string) { i.tenantID = tenantID }

// SetServiceCatalog replaces the service catalog.
func (i *Identity) SetServiceCatalog(services []Service) {
	i.serviceCatalog = make(map[string]Service, len(services))
	for _, s := range services {
		i.serviceCatalog[s.Name] = s
	}
}

// HasService reports whether the service catalog lists name.
func (i *Identity) HasService(name string) bool {
	_, ok := i.serviceCatalog[name]
	return ok
}

// Service returns the catalog entry for name.
func (i *Identity) Service(name string) (Service, error) {
	s, ok := i.serviceCatalog[name]
	if !ok {
		return Service{}, fmt.Errorf("%w: %s", ErrServiceNotAvailable, name)
	}
	return s, nil
}

// IsValid reports whether the identity holds a token that can still be used:
// a token, a tenant, and an expiry in the future.
func (i *Identity) IsValid() bool {
	if i.token == "" {
		return false
	}
	if i.tokenExpiry.IsZero() {
		return false
	}
	if !time.Now().Before(i.tokenExpiry) {
		return false
	}
	return i.tenantID != ""
}

// Clear drops the token and everything learned from the last authentication.
func (i *Identity) Clear() {
	i.token = ""
	i.tokenExpiry = time.Time{}
	i.tenantID = ""
	i.serviceCatalog = nil
	i.user = nil
}

// Authenticate exchanges the username and API key for a token.
// https://docs.rackspace.com/docs/cloud-identity/v2/api-reference/token-operations
func (i *Identity) Authenticate(ctx context.Context) error {
	if i.Username == "" || i.APIKey == "" {
		return ErrMissingCredentials
	}

	payload := &identityRequest{
		Auth: auth{
			APIKeyCredentials: APIKeyCredentials{
				Username: i.Username,
				APIKey:   i.APIKey,
			},
		},
	}

	access := &accessResponse{}

	err := i.call(ctx, http.MethodPost, i.endpoint("tokens"), nil, payload, "", access)
	if err != nil {
		return fmt.Errorf("authenticate %s: %w", i.Username, err)
	}

	expiry, err := parseTimestamp(access.Access.Token.Expires)
	if err != nil {
		return fmt.Errorf("authenticate %s: token expiry: %w", i.Username, err)
	}

	i.token = access.Access.Token.ID
	i.tokenExpiry = expiry
	i.tenantID = access.Access.Token.Tenant.ID
	i.SetServiceCatalog(access.Access.ServiceCatalog)
	user := access.Access.User
	i.user = &user

	i.Logger.Info().Str("tenant", i.tenantID).Time("expires", i.tokenExpiry).Msg("authenticated")

	return nil
}

// ensureValid re-authenticates when the current token cannot be used.
func (i *Identity) ensureValid(ctx context.Context) error {
	if i.IsValid() {
		return nil
	}

	if i.token != "" {
		i.Logger.Warn().Time("expires", i.tokenExpiry).Msg("token no longer valid, re-authenticating")
	}

	return i.Authenticate(ctx)
}

// endpoint joins path segments onto {Endpoint}/v2.0.
func (i *Identity) endpoint(segments ...string) string {
	base := strings.TrimSuffix(i.Endpoint, "/") + "/" + identityVersion
	for _, s := range segments {
		base += "/" + url.PathEscape(s)
	}
	return base
}

// authenticatedCall sends a request to the identity service with a valid token.
func (i *Identity) authenticatedCall(ctx context.Context, method, endpoint string, params url.Values, payload, result any) error {
	if err := i.ensureValid(ctx); err != nil {
		return err
	}
	return i.call(ctx, method, endpoint, params, payload, i.token, result)
}
