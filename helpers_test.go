package rackspace

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const (
	testToken    = "dummytokendummytokendummytoken"
	testTenantID = "123456"
	dnsPrefix    = "/v1.0/" + testTenantID
)

// accessJSON is a token response whose cloudDNS endpoint points at serverURL.
func accessJSON(serverURL, token string, expires time.Time) string {
	return fmt.Sprintf(`{
	"access": {
		"token": {
			"id": %q,
			"expires": %q,
			"tenant": {"id": %q, "name": %q}
		},
		"serviceCatalog": [
			{
				"name": "cloudDNS",
				"type": "rax:dns",
				"endpoints": [{"publicURL": "%s%s", "tenantId": %q}]
			},
			{
				"name": "cloudServersOpenStack",
				"type": "compute",
				"endpoints": [
					{"publicURL": "https://dfw.servers.api.rackspacecloud.com/v2/123456", "region": "DFW", "tenantId": %q},
					{"publicURL": "https://ord.servers.api.rackspacecloud.com/v2/123456", "region": "ORD", "tenantId": %q}
				]
			}
		],
		"user": {
			"id": "170454",
			"name": "username",
			"RAX-AUTH:defaultRegion": "DFW",
			"roles": [{"id": "3", "name": "identity:user-admin", "description": "User Admin Role."}]
		}
	}
}`, token, expires.Format("2006-01-02T15:04:05.000Z07:00"), testTenantID, testTenantID,
		serverURL, dnsPrefix, testTenantID, testTenantID, testTenantID)
}

// testCatalog mirrors the catalog returned by accessJSON.
func testCatalog(serverURL string) []Service {
	return []Service{
		{
			Name:      "cloudDNS",
			Type:      "rax:dns",
			Endpoints: []Endpoint{{PublicURL: serverURL + dnsPrefix, TenantID: testTenantID}},
		},
		{
			Name:      ServiceCloudServers,
			Type:      "compute",
			Endpoints: []Endpoint{{PublicURL: "https://dfw.servers.api.rackspacecloud.com/v2/123456", Region: "DFW"}},
		},
	}
}

// newTestIdentity returns an identity already holding a valid token for serverURL.
func newTestIdentity(serverURL string) *Identity {
	identity := NewIdentity("username", "api-key", serverURL)
	identity.SetToken(testToken)
	identity.SetTokenExpiry(time.Now().Add(time.Hour))
	identity.SetTenantID(testTenantID)
	identity.SetServiceCatalog(testCatalog(serverURL))
	return identity
}

// newTestDNS starts a server running handler and returns a DNS client for it.
func newTestDNS(t *testing.T, handler http.HandlerFunc) *DNS {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewDNS(newTestIdentity(srv.URL))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

const jobJSON = `{
	"status": "RUNNING",
	"verb": "POST",
	"jobId": "852a1e4a-45b4-409b-b3ec-e2f8e2e8d21a",
	"callbackUrl": "https://dns.api.rackspacecloud.com/v1.0/123456/status/852a1e4a-45b4-409b-b3ec-e2f8e2e8d21a",
	"requestUrl": "https://dns.api.rackspacecloud.com/v1.0/123456/domains"
}`
