package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed API call.
type ErrorKind string

const (
	// KindTransport means the request never reached the API or no response
	// came back.
	KindTransport ErrorKind = "transport"
	// KindDecode means the response body could not be parsed.
	KindDecode ErrorKind = "decode"
	// KindRejected means the API answered with a non-2xx status.
	KindRejected ErrorKind = "rejected"
)

// Error describes a failed API call. Error() returns the user-visible
// message: the server's detail, else the compact JSON payload.
type Error struct {
	Kind   ErrorKind
	Method string
	Path   string
	Status int
	// Detail is the "detail" field of a rejected response body.
	Detail string
	// Payload is the compact JSON body of a rejected response.
	Payload string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindRejected:
		if e.Detail != "" {
			return e.Detail
		}
		if e.Payload != "" {
			return e.Payload
		}
		return fmt.Sprintf("request failed with status %d %s", e.Status, http.StatusText(e.Status))
	case KindDecode:
		return fmt.Sprintf("decode %s %s response: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StatusCode returns the upstream HTTP status, or 0 when none was received.
func (e *Error) StatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

// rejectedError builds the error of a non-2xx response from its raw body.
func rejectedError(method, path string, status int, body []byte) *Error {
	apiErr := &Error{Kind: KindRejected, Method: method, Path: path, Status: status}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return apiErr
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err == nil {
		apiErr.Payload = compact.String()
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil {
		return apiErr
	}
	raw, ok := object["detail"]
	if !ok {
		return apiErr
	}
	var detail string
	if err := json.Unmarshal(raw, &detail); err == nil {
		apiErr.Detail = strings.TrimSpace(detail)
		return apiErr
	}
	var compactDetail bytes.Buffer
	if err := json.Compact(&compactDetail, raw); err == nil && compactDetail.String() != "null" {
		apiErr.Detail = compactDetail.String()
	}
	return apiErr
}
