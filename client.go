package rackspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	headerToken = "X-Auth-Token"
	userAgent   = "msshtdev-rackspace"
)

// apiClient sends JSON requests to a Rackspace API and decodes the responses.
// Identity and DNS both embed one.
type apiClient struct {
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

func newAPIClient() apiClient {
	return apiClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     zerolog.Nop(),
	}
}

// call builds a request for endpoint with the given query parameters and payload,
// sends it with token (if any) and decodes the response into result (if non-nil).
func (c *apiClient) call(ctx context.Context, method, endpoint string, params url.Values, payload any, token string, result any) error {
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + params.Encode()
	}

	req, err := newJSONRequest(ctx, method, endpoint, payload)
	if err != nil {
		return err
	}

	if token != "" {
		req.Header.Set(headerToken, token)
	}

	return c.do(req, result)
}

// do sends an HTTP request and optionally decodes the JSON response into the provided result.
func (c *apiClient) do(req *http.Request, result any) error {
	c.Logger.Debug().Str("method", req.Method).Str("url", req.URL.Redacted()).Msg("sending request")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	start := time.Now()

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	c.Logger.Debug().Str("method", req.Method).Str("url", req.URL.Redacted()).Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("received response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp.StatusCode, raw)
	}

	if result == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	return decodeBody(raw, result)
}

// decodeBody decodes a JSON payload into v, classifying failures into a DecodeError.
func decodeBody(raw []byte, v any) error {
	if !utf8.Valid(raw) {
		return &DecodeError{Category: DecodeUTF8, Err: errors.New("invalid UTF-8 in response body")}
	}

	err := json.Unmarshal(raw, v)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syntaxErr):
		msg := syntaxErr.Error()
		switch {
		case strings.Contains(msg, "exceeded max depth"):
			return &DecodeError{Category: DecodeDepth, Err: err}
		case strings.Contains(msg, "in string literal"):
			return &DecodeError{Category: DecodeControlChar, Err: err}
		default:
			return &DecodeError{Category: DecodeSyntax, Err: err}
		}
	case errors.As(err, &typeErr):
		return &DecodeError{Category: DecodeTypeMismatch, Err: err}
	default:
		return &DecodeError{Category: DecodeUnknown, Err: err}
	}
}

// newJSONRequest creates a new HTTP request with a JSON-encoded payload.
func newJSONRequest(ctx context.Context, method string, endpoint string, payload any) (*http.Request, error) {
	buf := new(bytes.Buffer)

	if payload != nil {
		err := json.NewEncoder(buf).Encode(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to create request JSON body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, buf)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	return req, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
