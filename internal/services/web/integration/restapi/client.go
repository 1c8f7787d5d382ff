package restapi

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

	"github.com/octofit/tracker/internal/services/web/identity"
	"github.com/octofit/tracker/internal/services/web/resource"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/octofit/tracker/internal/services/web/integration/restapi"
	maxResponseSize = 8 << 20

	loginPath        = "auth/login/"
	registrationPath = "auth/registration/"
)

// Client calls the REST API rooted at a base URL such as
// "http://localhost:8000/api/".
type Client struct {
	base       string
	http       *http.Client
	timeout    time.Duration
	metrics    *Metrics
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

var _ resource.Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout bounds each call. Zero leaves calls unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMetrics records call metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) { c.metrics = metrics }
}

// WithTracerProvider sets the tracer provider for client spans.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) {
		if provider != nil {
			c.tracer = provider.Tracer(tracerName)
		}
	}
}

// WithPropagator sets the propagator that injects trace context into
// outgoing requests. The global propagator is used by default.
func WithPropagator(propagator propagation.TextMapPropagator) Option {
	return func(c *Client) {
		if propagator != nil {
			c.propagator = propagator
		}
	}
}

// New returns a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("api base url %q must be an absolute http(s) url", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	client := &Client{
		base:       baseURL,
		http:       http.DefaultClient,
		tracer:     otel.GetTracerProvider().Tracer(tracerName),
		propagator: otel.GetTextMapPropagator(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// List returns the decoded collection payload: a bare array or a results
// envelope.
func (c *Client) List(ctx context.Context, endpoint string) (any, error) {
	var payload any
	if err := c.do(ctx, http.MethodGet, endpoint, collectionOf(endpoint), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Create posts fields to endpoint and returns the server's entity.
func (c *Client) Create(ctx context.Context, endpoint string, fields resource.Entity) (resource.Entity, error) {
	return c.entity(ctx, http.MethodPost, endpoint, collectionOf(endpoint), fields)
}

// Update replaces the entity id with fields and returns the server's entity.
func (c *Client) Update(ctx context.Context, endpoint string, id resource.ID, fields resource.Entity) (resource.Entity, error) {
	path := resource.ItemPath(endpoint, resource.ID(url.PathEscape(string(id))))
	return c.entity(ctx, http.MethodPut, path, collectionOf(endpoint), fields)
}

// Delete removes the entity id.
func (c *Client) Delete(ctx context.Context, endpoint string, id resource.ID) error {
	path := resource.ItemPath(endpoint, resource.ID(url.PathEscape(string(id))))
	return c.do(ctx, http.MethodDelete, path, collectionOf(endpoint), nil, nil)
}

// Credentials are the fields posted by login and registration.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type authResponse struct {
	Key  string `json:"key"`
	User *struct {
		Username string `json:"username"`
	} `json:"user"`
}

// Login exchanges username and password for an API token.
func (c *Client) Login(ctx context.Context, creds Credentials) (identity.Identity, error) {
	creds.Email = ""
	return c.authenticate(ctx, loginPath, creds)
}

// Register creates an account and returns its API token.
func (c *Client) Register(ctx context.Context, creds Credentials) (identity.Identity, error) {
	return c.authenticate(ctx, registrationPath, creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds Credentials) (identity.Identity, error) {
	var response authResponse
	if err := c.do(ctx, http.MethodPost, path, "auth", creds, &response); err != nil {
		return identity.Identity{}, err
	}
	key := strings.TrimSpace(response.Key)
	if key == "" {
		return identity.Identity{}, &Error{Kind: KindDecode, Method: http.MethodPost, Path: path, Err: errors.New("response has no key")}
	}
	username := strings.TrimSpace(creds.Username)
	if response.User != nil && strings.TrimSpace(response.User.Username) != "" {
		username = strings.TrimSpace(response.User.Username)
	}
	return identity.Identity{Key: key, Username: username}, nil
}

func (c *Client) entity(ctx context.Context, method, path, collection string, fields resource.Entity) (resource.Entity, error) {
	var payload any
	if err := c.do(ctx, method, path, collection, fields, &payload); err != nil {
		return nil, err
	}
	object, ok := payload.(map[string]any)
	if !ok {
		return nil, &Error{Kind: KindDecode, Method: method, Path: path, Err: fmt.Errorf("expected object, got %T", payload)}
	}
	return resource.Entity(object), nil
}

func (c *Client) do(ctx context.Context, method, path, collection string, body any, out any) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	path = strings.TrimLeft(strings.TrimSpace(path), "/")

	ctx, span := c.tracer.Start(ctx, "restapi "+method+" "+collection,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("octofit.collection", collection),
		),
	)
	started := time.Now()
	defer func() {
		c.metrics.observe(collection, method, outcomeOf(err), time.Since(started))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		encoded, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, marshalErr)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := identity.FromContext(ctx); ok {
		req.Header.Set("Authorization", id.AuthorizationHeader())
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Error{Kind: KindTransport, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejectedError(method, path, resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return &Error{Kind: KindDecode, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// collectionOf returns the first path segment of endpoint as a metrics label.
func collectionOf(endpoint string) string {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	if head, _, found := strings.Cut(endpoint, "/"); found {
		return head
	}
	return endpoint
}
