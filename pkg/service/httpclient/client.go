package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gametheory-pro/gtpro/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tidwall/gjson"
)

// Errors raised for failed requests. Messages are part of the contract:
// callers and tests match on them.
var (
	ErrRateLimited     = goerr.New("rate limit exceeded")
	ErrUpgradeRequired = goerr.New("this endpoint requires an upgraded plan")
	ErrInvalidAPIKey   = goerr.New("Invalid API key")
	ErrRequestFailed   = goerr.New("request failed")
	ErrProviderError   = goerr.New("provider returned an error")
	ErrInvalidResponse = goerr.New("invalid response body")
)

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 10 << 20
)

const redacted = "REDACTED"

// Client performs single-attempt JSON requests against one provider. It
// attaches the API key as a query parameter or header and turns HTTP and
// in-band failures into the errors above. It never retries.
type Client struct {
	httpClient *http.Client
	provider   string
	keyParam   string
	keyHeader  string
	apiKey     string
	markers    []string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAPIKey appends param=key to every request
func WithAPIKey(param, key string) Option {
	return func(c *Client) {
		c.keyParam = param
		c.keyHeader = ""
		c.apiKey = key
	}
}

// WithAPIKeyHeader sends the key in the named request header
func WithAPIKeyHeader(header, key string) Option {
	return func(c *Client) {
		c.keyHeader = header
		c.keyParam = ""
		c.apiKey = key
	}
}

// WithErrorMarkers sets the top-level JSON fields whose presence in a 2xx
// body means the provider rejected the request
func WithErrorMarkers(markers ...string) Option {
	return func(c *Client) {
		c.markers = markers
	}
}

// New creates a Client. provider is used in error values only.
func New(provider string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		provider:   provider,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasAPIKey reports whether a key is configured
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Get performs a GET of baseURL+path and decodes the JSON body into out
func (c *Client) Get(ctx context.Context, baseURL, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, baseURL, path, query, nil, out)
}

// PostJSON posts body as JSON and decodes the JSON response into out
func (c *Client) PostJSON(ctx context.Context, baseURL, path string, query url.Values, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal request body", goerr.V("provider", c.provider))
	}
	return c.do(ctx, http.MethodPost, baseURL, path, query, raw, out)
}

func (c *Client) buildURL(baseURL, path string, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", goerr.Wrap(err, "invalid request URL", goerr.V("provider", c.provider), goerr.V("base_url", baseURL))
	}

	q := u.Query()
	if c.apiKey != "" && c.keyParam != "" {
		q.Set(c.keyParam, c.apiKey)
	}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, baseURL, path string, query url.Values, body []byte, out any) error {
	reqURL, err := c.buildURL(baseURL, path, query)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("provider", c.provider))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" && c.keyHeader != "" {
		req.Header.Set(c.keyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(c.redact(err), "failed to send request", goerr.V("provider", c.provider), goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return goerr.Wrap(err, "failed to read response body", goerr.V("provider", c.provider))
	}
	safe.Drain(ctx, resp.Body)

	if err := c.classifyStatus(resp.StatusCode, path, data); err != nil {
		return err
	}
	if err := c.checkMarkers(data); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return goerr.Wrap(ErrInvalidResponse, "failed to decode response",
			goerr.V("provider", c.provider), goerr.V("error", err.Error()))
	}
	return nil
}

// redact removes the API key from the URL carried by transport errors
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if c.apiKey == "" || !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{
		Op:  urlErr.Op,
		URL: strings.NewReplacer(url.QueryEscape(c.apiKey), redacted, c.apiKey, redacted).Replace(urlErr.URL),
		Err: urlErr.Err,
	}
}

func (c *Client) classifyStatus(code int, path string, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}

	opts := []goerr.Option{
		goerr.V("provider", c.provider),
		goerr.V("status", code),
		goerr.V("path", path),
	}

	switch code {
	case http.StatusTooManyRequests:
		return goerr.Wrap(ErrRateLimited, "provider rejected request", opts...)
	case http.StatusUpgradeRequired:
		return goerr.Wrap(ErrUpgradeRequired, "provider rejected request", opts...)
	case http.StatusUnauthorized, http.StatusForbidden:
		return goerr.Wrap(ErrInvalidAPIKey, "provider rejected request", opts...)
	default:
		opts = append(opts, goerr.V("body", truncate(string(body), 512)))
		return goerr.Wrap(ErrRequestFailed, "provider rejected request", opts...)
	}
}

func (c *Client) checkMarkers(body []byte) error {
	if len(c.markers) == 0 || !gjson.ValidBytes(body) {
		return nil
	}
	for _, marker := range c.markers {
		res := gjson.GetBytes(body, escapePath(marker))
		if !res.Exists() {
			continue
		}
		return goerr.Wrap(ErrProviderError, res.String(),
			goerr.V("provider", c.provider), goerr.V("marker", marker))
	}
	return nil
}

func escapePath(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)
	return r.Replace(key)
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
