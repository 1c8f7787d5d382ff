// Package requestmeta resolves request scheme and origin facts used for
// cookie flags and same-origin checks.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how a request's scheme is resolved.
//
// X-Forwarded-Proto is read only when TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPS reports whether r should be treated as HTTPS.
func (p SchemePolicy) IsHTTPS(r *http.Request) bool {
	return p.scheme(r) == "https"
}

// SameOrigin reports whether the Origin header, or the Referer when Origin is
// absent, names the same scheme, host and port as r.
func (p SchemePolicy) SameOrigin(r *http.Request) bool {
	if r == nil {
		return false
	}
	self := p.origin(r)
	if self.host == "" {
		return false
	}
	for _, header := range []string{"Origin", "Referer"} {
		if raw := strings.TrimSpace(r.Header.Get(header)); raw != "" {
			other, ok := parseOrigin(raw)
			return ok && self.matches(other)
		}
	}
	return false
}

// IsHTTPS reports whether r is HTTPS without trusting forwarded headers.
func IsHTTPS(r *http.Request) bool {
	return SchemePolicy{}.IsHTTPS(r)
}

type origin struct {
	scheme string
	host   string
	port   string
}

func (o origin) matches(other origin) bool {
	if other.scheme == "" || other.host == "" {
		return false
	}
	if o.scheme != "" && other.scheme != o.scheme {
		return false
	}
	return other.host == o.host && other.port != "" && other.port == o.port
}

func parseOrigin(raw string) (origin, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return origin{}, false
	}
	scheme := strings.ToLower(parsed.Scheme)
	port := parsed.Port()
	if port == "" {
		port = defaultPort(scheme)
	}
	return origin{scheme: scheme, host: strings.ToLower(parsed.Hostname()), port: port}, true
}

func (p SchemePolicy) origin(r *http.Request) origin {
	scheme := p.scheme(r)
	host, port := splitHost(r.Host)
	if host == "" && r.URL != nil {
		host, port = splitHost(r.URL.Host)
	}
	if port == "" {
		port = defaultPort(scheme)
	}
	return origin{scheme: scheme, host: host, port: port}
}

func (p SchemePolicy) scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.URL != nil {
		if scheme := strings.ToLower(r.URL.Scheme); scheme == "http" || scheme == "https" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}

func splitHost(raw string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}
