package rackspace

import (
	"context"
	"net/http"
	"net/url"
)

type userEnvelope struct {
	User User `json:"user"`
}

// ListUsers returns the users visible to the authenticated user.
func (i *Identity) ListUsers(ctx context.Context) ([]User, error) {
	result := &struct {
		Users []User `json:"users"`
		User  *User  `json:"user"`
	}{}

	err := i.authenticatedCall(ctx, http.MethodGet, i.endpoint("users"), nil, nil, result)
	if err != nil {
		return nil, err
	}

	// Non-admin users get a single "user" object back instead of a list.
	if result.Users == nil && result.User != nil {
		return []User{*result.User}, nil
	}

	return result.Users, nil
}

// UserByName looks up a user by username.
func (i *Identity) UserByName(ctx context.Context, name string) (*User, error) {
	result := &userEnvelope{}

	err := i.authenticatedCall(ctx, http.MethodGet, i.endpoint("users"), url.Values{"name": {name}}, nil, result)
	if err != nil {
		return nil, err
	}

	return &result.User, nil
}

// UserByID returns the user with the given ID.
func (i *Identity) UserByID(ctx context.Context, userID string) (*User, error) {
	result := &userEnvelope{}

	err := i.authenticatedCall(ctx, http.MethodGet, i.endpoint("users", userID), nil, nil, result)
	if err != nil {
		return nil, err
	}

	return &result.User, nil
}

// AddUser creates a sub-user.
func (i *Identity) AddUser(ctx context.Context, user User) (*User, error) {
	result := &userEnvelope{}

	err := i.authenticatedCall(ctx, http.MethodPost, i.endpoint("users"), nil, &userEnvelope{User: user}, result)
	if err != nil {
		return nil, err
	}

	return &result.User, nil
}

// UpdateUser changes the user identified by userID. Only the set fields of user are sent.
func (i *Identity) UpdateUser(ctx context.Context, userID string, user User) (*User, error) {
	result := &userEnvelope{}

	err := i.authenticatedCall(ctx, http.MethodPost, i.endpoint("users", userID), nil, &userEnvelope{User: user}, result)
	if err != nil {
		return nil, err
	}

	return &result.User, nil
}

// DeleteUser removes a user.
func (i *Identity) DeleteUser(ctx context.Context, userID string) error {
	return i.authenticatedCall(ctx, http.MethodDelete, i.endpoint("users", userID), nil, nil, nil)
}

// ListCredentials returns the API key credentials of a user.
func (i *Identity) ListCredentials(ctx context.Context, userID string) ([]APIKeyCredentials, error) {
	result := &struct {
		Credentials []struct {
			APIKeyCredentials APIKeyCredentials `json:"RAX-KSKEY:apiKeyCredentials"`
		} `json:"credentials"`
	}{}

	err := i.authenticatedCall(ctx, http.MethodGet, i.endpoint("users", userID, "OS-KSADM", "credentials"), nil, nil, result)
	if err != nil {
		return nil, err
	}

	creds := make([]APIKeyCredentials, 0, len(result.Credentials))
	for _, c := range result.Credentials {
		creds = append(creds, c.APIKeyCredentials)
	}

	return creds, nil
}

// ListUserRoles returns the global roles of a user.
func (i *Identity) ListUserRoles(ctx context.Context, userID string) ([]Role, error) {
	result := &struct {
		Roles []Role `json:"roles"`
	}{}

	err := i.authenticatedCall(ctx, http.MethodGet, i.endpoint("users", userID, "roles"), nil, nil, result)
	if err != nil {
		return nil, err
	}

	return result.Roles, nil
}

// ListTenants returns the tenants the token has access to.
func (i *Identity) ListTenants(ctx context.Context) ([]Tenant, error) {
	result := &struct {
		Tenants []Tenant `json:"tenants"`
	}{}

	err := i.authenticatedCall(ctx, http.MethodGet, i.endpoint("tenants"), nil, nil, result)
	if err != nil {
		return nil, err
	}

	return result.Tenants, nil
}
