package rackspace

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingCredentials is returned by Authenticate when the username or API key is empty.
	ErrMissingCredentials = errors.New("You must define both a username and API key for this identity")
	// ErrServiceNotAvailable is returned when the service catalog has no entry for a service.
	ErrServiceNotAvailable = errors.New("This service is not available to this identity")
	// ErrAccessDenied is returned when PTR records are requested for a service that cannot have them.
	ErrAccessDenied = errors.New("You do not have permission to access this service")
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("unable to decode json")
)

// HTTPError is returned for any non-2xx response.
// Code is the error code reported in the body, or the HTTP status when the body has none.
type HTTPError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("got error status: HTTP %d (code %d): %s", e.StatusCode, e.Code, e.Message)
}

// DecodeCategory describes why a JSON payload could not be decoded.
type DecodeCategory string

const (
	DecodeSyntax       DecodeCategory = "Syntax error, malformed JSON"
	DecodeUTF8         DecodeCategory = "Malformed UTF-8 characters, possibly incorrectly encoded"
	DecodeDepth        DecodeCategory = "Maximum stack depth exceeded"
	DecodeControlChar  DecodeCategory = "Unexpected control character found"
	DecodeTypeMismatch DecodeCategory = "Underflow or the modes mismatch"
	DecodeUnknown      DecodeCategory = "Unknown error"
)

// DecodeError is returned when a response body is not valid JSON for the expected payload.
// The category is diagnostic only.
type DecodeError struct {
	Category DecodeCategory
	Err      error
}

func (e *DecodeError) Error() string {
	return "json_decode: " + string(e.Category)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// errorBody covers both the DNS error document and the inner object of an identity fault.
type errorBody struct {
	Code             int    `json:"code"`
	Message          string `json:"message"`
	Details          string `json:"details"`
	ValidationErrors *struct {
		Messages []string `json:"messages"`
	} `json:"validationErrors"`
}

// newHTTPError builds an HTTPError from a failed response body.
// The body may be a DNS error document, an identity fault envelope such as
// {"itemNotFound":{...}}, or not JSON at all.
func newHTTPError(statusCode int, raw []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Code:       statusCode,
		Message:    http.StatusText(statusCode),
	}

	var body errorBody
	if err := decodeBody(raw, &body); err != nil {
		return httpErr
	}

	if body.Code == 0 && body.Message == "" && body.ValidationErrors == nil {
		var fault map[string]errorBody
		if err := decodeBody(raw, &fault); err == nil && len(fault) == 1 {
			for _, inner := range fault {
				body = inner
			}
		}
	}

	if body.Code != 0 {
		httpErr.Code = body.Code
	}

	switch {
	case body.ValidationErrors != nil && len(body.ValidationErrors.Messages) > 0:
		httpErr.Message = strings.Join(body.ValidationErrors.Messages, "\n")
	case body.Details != "":
		httpErr.Message = body.Details
	case body.Message != "":
		httpErr.Message = body.Message
	}

	return httpErr
}
