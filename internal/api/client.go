// Package api implements the resource client capabilities over the
// platform's HTTP API.
//
// Every request carries the configured token and a fresh X-Request-Id.
// Failed responses are classified into the resource error taxonomy: 404
// becomes resource.ErrNotFound, 400 and 422 become resource.ValidationError
// with the server's message, anything else becomes resource.TransportError.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/blackwell-systems/sem-cli/internal/logging"
	"github.com/blackwell-systems/sem-cli/internal/resource"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.semaphoreci.com/v2"

// RequestIDHeader is set on every outgoing request.
const RequestIDHeader = "X-Request-Id"

// Client provides typed access to the platform API.
type Client struct {
	baseURL string
	http    *resty.Client
}

// Option customises client instantiation.
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	retries    int
	userAgent  string
	logger     *slog.Logger
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) {
		if h != nil {
			o.httpClient = h
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetries retries idempotent GET requests that fail with a network
// error, 429 or a 5xx status. Writes are never retried.
func WithRetries(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.retries = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithLogger receives resty's own diagnostics. Request logging uses the
// logger carried on each request's context.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New constructs a Client for the API at base, authenticating with token.
func New(base, token string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	trimmed = strings.TrimRight(trimmed, "/")

	o := options{timeout: 15 * time.Second, userAgent: "sem", logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	var rc *resty.Client
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	} else {
		rc = resty.New()
	}
	// No per-request warning when a local http:// server receives the token.
	rc.SetLogger(restyLogger{l: o.logger}).
		SetDisableWarn(true).
		SetBaseURL(trimmed).
		SetTimeout(o.timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", o.userAgent)

	if t := strings.TrimSpace(token); t != "" {
		rc.SetAuthScheme("Token").SetAuthToken(t)
	}
	if o.retries > 0 {
		rc.SetRetryCount(o.retries).AddRetryCondition(retryable)
	}

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader(RequestIDHeader, uuid.NewString())
		return nil
	})
	rc.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		logging.FromContext(r.Request.Context()).Debug("api request",
			"method", r.Request.Method,
			"url", r.Request.URL,
			"status", r.StatusCode(),
			"request_id", r.Request.Header.Get(RequestIDHeader),
			"duration", r.Time(),
		)
		return nil
	})
	rc.OnError(func(r *resty.Request, err error) {
		logging.FromContext(r.Context()).Debug("api request failed",
			"method", r.Method,
			"url", r.URL,
			"request_id", r.Header.Get(RequestIDHeader),
			"error", err,
		)
	})

	return &Client{baseURL: trimmed, http: rc}, nil
}

// BaseURL returns the normalised API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Clients returns the resource capabilities backed by this client.
func (c *Client) Clients() resource.Clients {
	return resource.Clients{
		Orgs:          orgsAPI{c},
		Teams:         teamsAPI{c},
		Projects:      projectsAPI{c},
		SharedConfigs: sharedConfigsAPI{c},
		Users:         usersAPI{c},
		EnvVars:       envVarsAPI{c},
		ConfigFiles:   configFilesAPI{c},
	}
}

// params is shorthand for path parameters.
type params map[string]string

// do performs one request. path may hold {name} placeholders filled from p.
// A non-nil out receives the decoded JSON body; an empty body leaves it
// untouched.
func (c *Client) do(ctx context.Context, method, path string, p params, body, out any) error {
	op := method + " " + path

	req := c.http.R().SetContext(ctx)
	if len(p) > 0 {
		req.SetPathParams(p)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err := classify(op, resp, err); err != nil {
		return err
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &resource.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func list[R any](ctx context.Context, c *Client, path string, p params) ([]R, error) {
	var out []R
	if err := c.do(ctx, http.MethodGet, path, p, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// write sends a POST or PATCH and returns the record in the response, or
// nil when the service answered without one.
func write[R any](ctx context.Context, c *Client, method, path string, p params, body any) (*R, error) {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, p, body, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var rec R
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &resource.TransportError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &rec, nil
}

func retryable(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
}
