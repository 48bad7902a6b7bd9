// Package client talks to the Smart Grid analysis service over HTTP.
//
// Every failure is normalized into a structured *errors.Error so callers have
// a single error channel:
//
//	ErrConnectivity - the request never got a response
//	ErrHTTP         - non-2xx status (StatusCode set) or deadline hit (Timeout set)
//	ErrParse        - the body is not the expected JSON document
package client

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	jsoniter "github.com/json-iterator/go"

	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
)

// Endpoint paths on the analysis service.
const (
	PathHealth     = "/"
	PathSimulate   = "/simulate"
	PathSystemInfo = "/system-info"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client issues requests against a single backend base URL.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the pooled transport (tests use httptest clients).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a client for baseURL. A trailing slash on baseURL is ignored.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid base URL: %q", baseURL),
			"Use a full URL like https://grid.example.com or http://localhost:8000")
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    cleanhttp.DefaultPooledClient(),
		log:     logger.NewEnvLogger("[client]"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health fetches GET /. Only a string status is read strictly; the
// metadata fields are best effort and a value of the wrong type is dropped.
// A valid JSON document of any shape yields a Health, possibly empty, so the
// caller can judge it degraded. Bodies that are not JSON are parse errors.
func (c *Client) Health(ctx context.Context) (*grid.Health, error) {
	body, err := c.get(ctx, PathHealth)
	if err != nil {
		return nil, err
	}
	h, err := decodeHealth(body)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	return h, nil
}

// Simulate fetches GET /simulate. Missing optional sections are left nil;
// no schema validation happens beyond decoding.
func (c *Client) Simulate(ctx context.Context) (*grid.Snapshot, error) {
	var s grid.Snapshot
	if err := c.getJSON(ctx, PathSimulate, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SystemInfo fetches GET /system-info.
func (c *Client) SystemInfo(ctx context.Context) (*grid.SystemInfo, error) {
	var info grid.SystemInfo
	if err := c.getJSON(ctx, PathSystemInfo, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) getJSON(ctx context.Context, path string, into interface{}) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := decode(body, into); err != nil {
		return errors.NewParseError(err)
	}
	return nil
}

// get issues the request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to build request for "+endpoint,
			"Check the configured base URL")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("GET %s failed after %s: %v", path, time.Since(start), err)
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	c.log.Debug("GET %s -> %d in %s", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the pooled connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errors.NewHTTPError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return body, nil
}

// decodeHealth reads the health document field by field.
func decodeHealth(body []byte) (*grid.Health, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("health response is not JSON: %q", preview(strings.TrimSpace(string(body))))
	}

	var h grid.Health
	root := json.Get(body)
	if root.ValueType() != jsoniter.ObjectValue {
		return &h, nil
	}

	h.Status = stringField(root, "status")
	h.Version = stringField(root, "version")
	h.Timestamp = stringField(root, "timestamp")
	if chunks := root.Get("chunks_active"); chunks.ValueType() == jsoniter.ArrayValue {
		for i := 0; i < chunks.Size(); i++ {
			if item := chunks.Get(i); item.ValueType() == jsoniter.StringValue {
				h.ChunksActive = append(h.ChunksActive, item.ToString())
			}
		}
	}
	return &h, nil
}

func stringField(obj jsoniter.Any, key string) string {
	if v := obj.Get(key); v.ValueType() == jsoniter.StringValue {
		return v.ToString()
	}
	return ""
}

// decode requires a JSON object body.
func decode(body []byte, into interface{}) error {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return fmt.Errorf("expected a JSON object, got %q", preview(trimmed))
	}
	return json.Unmarshal(body, into)
}

func preview(s string) string {
	const max = 40
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

func classifyTransportError(err error) error {
	if isTimeout(err) {
		return errors.NewTimeoutError(err)
	}
	return errors.NewConnectivityError(err)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
