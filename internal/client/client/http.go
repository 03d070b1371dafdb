package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/rootshare/internal/client/metrics"
	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/dmitrijs2005/rootshare/internal/common"
	"github.com/dmitrijs2005/rootshare/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const DefaultTimeout = 30 * time.Second

// HTTPClient talks to the RootShare REST API. It implements both Client and
// ResourceClient.
type HTTPClient struct {
	baseURL  *url.URL
	http     *http.Client
	resource *http.Client
	tokens   oauth2.TokenSource
	metrics  *metrics.Metrics
	log      logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request, connection included.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithTransport replaces the underlying round tripper (tests, proxies).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l.With("component", "api") }
}

// WithTokenSource makes resource calls carry the bearer token from ts.
// The token is fetched on every request, so a refreshed token is picked up
// immediately.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.resource = c.http
	if c.tokens != nil {
		c.resource = &http.Client{
			Transport: &oauth2.Transport{Source: c.tokens, Base: c.http.Transport},
			Timeout:   c.http.Timeout,
		}
	}
	return c, nil
}

// call describes one API request. endpoint is the route template used as
// the metrics label; path is the escaped path relative to the base URL.
type call struct {
	method   string
	endpoint string
	path     string
	query    url.Values
	bearer   string
	in       any
	out      any
}

func (c *HTTPClient) do(ctx context.Context, hc *http.Client, cl call) error {
	ref, err := url.Parse(cl.path)
	if err != nil {
		return fmt.Errorf("build %s request: %w", cl.endpoint, err)
	}
	u := c.baseURL.ResolveReference(ref)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.in != nil {
		b, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", cl.endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", cl.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if cl.bearer != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerValue(cl.bearer))
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(cl.endpoint, 0, time.Since(start))
		c.log.Debug(ctx, "request failed", "endpoint", cl.endpoint, "request_id", reqID, "error", err)
		return c.mapTransportError(err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveRequest(cl.endpoint, resp.StatusCode, time.Since(start))
	c.log.Debug(ctx, "request done", "endpoint", cl.endpoint, "request_id", reqID, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %w", ErrUnavailable, cl.endpoint, err)
	}
	if len(bytes.TrimSpace(payload)) == 0 || string(bytes.TrimSpace(payload)) == "null" {
		return fmt.Errorf("%s: %w", cl.endpoint, ErrEmptyResponse)
	}
	if err := json.Unmarshal(payload, cl.out); err != nil {
		return fmt.Errorf("decode %s response: %w", cl.endpoint, err)
	}
	return nil
}

func (c *HTTPClient) mapTransportError(err error) error {
	switch {
	case errors.Is(err, ErrNoAccessToken):
		return ErrNoAccessToken
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

func newStatusError(resp *http.Response) *StatusError {
	msg := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	se := &StatusError{StatusCode: resp.StatusCode, Message: msg}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		se.Detail = body.Message
		if se.Detail == "" {
			se.Detail = body.Error
		}
	}
	return se
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "auth/register", req)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "auth/login", req)
}

func (c *HTTPClient) GoogleAuth(ctx context.Context, req models.GoogleTokenRequest) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "auth/google/token", req)
}

// authenticate posts to one of the login endpoints. A 2xx body without a
// complete token pair is reported as ErrEmptyResponse.
func (c *HTTPClient) authenticate(ctx context.Context, endpoint string, req any) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, c.http, call{method: http.MethodPost, endpoint: endpoint, path: endpoint, in: req, out: &out}); err != nil {
		return nil, err
	}
	if err := checkTokens(endpoint, out.Tokens); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	var out models.AuthTokens
	err := c.do(ctx, c.http, call{method: http.MethodPost, endpoint: "auth/refresh", path: "auth/refresh", bearer: refreshToken, out: &out})
	if err != nil {
		return nil, err
	}
	if err := checkTokens("auth/refresh", out); err != nil {
		return nil, err
	}
	return &out, nil
}

func checkTokens(endpoint string, t models.AuthTokens) error {
	if t.AccessToken == "" || t.RefreshToken == "" {
		return fmt.Errorf("%s: missing token: %w", endpoint, ErrEmptyResponse)
	}
	return nil
}

func (c *HTTPClient) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, c.http, call{method: http.MethodPost, endpoint: "auth/logout", path: "auth/logout", bearer: accessToken})
}

func (c *HTTPClient) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	var out models.User
	err := c.do(ctx, c.http, call{method: http.MethodGet, endpoint: "auth/me", path: "auth/me", bearer: accessToken, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
