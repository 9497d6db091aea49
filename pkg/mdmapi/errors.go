package mdmapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Static construction errors. These indicate programming mistakes and are
// returned synchronously by query builders and descriptor factories, before
// any network involvement.
var (
	ErrUnknownOperator   = errors.New("unknown filter operator")
	ErrEmptyFilterField  = errors.New("filter field must not be empty")
	ErrReservedFieldChar = errors.New("field contains reserved query characters")
	ErrEmptySortField    = errors.New("sort field must not be empty")
	ErrNegativeBound     = errors.New("pagination bound must not be negative")
	ErrMissingID         = errors.New("resource id is required")
	ErrInvalidAttributes = errors.New("invalid resource attributes")
)

// Static decode errors, surfaced through an operation's FAILURE identifier.
var (
	ErrTypeMismatch = errors.New("unexpected resource type in response")
)

// APIError is a single JSON:API error object as returned by the backend.
type APIError struct {
	Status string       `json:"status,omitempty"`
	Code   string       `json:"code,omitempty"`
	Title  string       `json:"title,omitempty"`
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
}

// ErrorSource points at the part of the request that caused an error.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	case e.Detail != "":
		return e.Detail
	case e.Title != "":
		return e.Title
	default:
		return "unknown API error"
	}
}

// ResponseError is the JSON:API error document, the body of any non-success
// response.
type ResponseError struct {
	Errors []APIError `json:"errors"`

	// StatusCode is the HTTP status the document arrived with. Not part of
	// the wire body.
	StatusCode int `json:"-"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	switch len(e.Errors) {
	case 0:
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("multiple errors: %v", e.Errors)
	}
}

// FirstError returns the first error object or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// ParseResponseError decodes a JSON:API error document. A body that is not an
// error document yields a ResponseError carrying only the status code, so
// callers always get a usable error value for a failed response.
func ParseResponseError(body []byte, statusCode int) *ResponseError {
	respErr := &ResponseError{StatusCode: statusCode}

	if len(body) > 0 {
		_ = json.Unmarshal(body, respErr)
	}

	return respErr
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return hasStatus(err, 404)
}

// IsUnprocessable reports whether err is a backend 422 validation rejection.
func IsUnprocessable(err error) bool {
	return hasStatus(err, 422)
}

func hasStatus(err error, status int) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}

	return false
}
