// Package errors defines web typed application errors.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
)

// Error is a typed web application failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// LocalizationKey returns the structured localization key when available.
func LocalizationKey(err error) string {
	if err == nil {
		return ""
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindHTTPStatus(upstreamKind(err, KindUnknown))
	}
	return KindHTTPStatus(appErr.Kind)
}

// KindHTTPStatus maps a kind to its HTTP status code.
func KindHTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// statusCoder is implemented by upstream API errors that carry the HTTP
// status the API answered with. Zero means no response was received.
type statusCoder interface {
	StatusCode() int
}

// UpstreamMapping configures how unclassified upstream failures surface.
type UpstreamMapping struct {
	FallbackKind    Kind
	FallbackKey     string
	FallbackMessage string
}

// MapUpstreamError converts an upstream API failure into a typed Error.
//
// Typed errors pass through. Upstream statuses with a web meaning map to
// their kind and keep the upstream message; everything else uses the
// fallback policy.
func MapUpstreamError(err error, mapping UpstreamMapping) error {
	if err == nil {
		return nil
	}
	var appErr Error
	if stderrors.As(err, &appErr) {
		return err
	}
	kind := upstreamKind(err, "")
	if kind == "" || kind == mapping.FallbackKind {
		message := mapping.FallbackMessage
		if message == "" {
			message = err.Error()
		}
		fallback := mapping.FallbackKind
		if fallback == "" {
			fallback = KindUnknown
		}
		return EK(fallback, mapping.FallbackKey, message)
	}
	return E(kind, err.Error())
}

func upstreamKind(err error, fallback Kind) Kind {
	var coder statusCoder
	if !stderrors.As(err, &coder) {
		return fallback
	}
	switch status := coder.StatusCode(); {
	case status == 0:
		return KindUnavailable
	case status == http.StatusBadRequest:
		return KindInvalidInput
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		return KindUnavailable
	default:
		return fallback
	}
}
