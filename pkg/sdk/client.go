package radar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	gen "github.com/kailas-cloud/radar/internal/transport/generated"
)

const defaultTimeout = 10 * time.Second

// Client talks to a radar server over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	timeout time.Duration
	obs     *observer
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("radar: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("radar: base url must be http or https, got %q", baseURL)
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: u,
		apiKey:  cfg.apiKey,
		http:    cfg.httpClient,
		timeout: cfg.timeout,
		obs:     obs,
	}, nil
}

// Health returns the server health report. A degraded server is not an error.
func (c *Client) Health(ctx context.Context) (status HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	err = c.do(ctx, http.MethodGet, "/health", nil, &status, http.StatusServiceUnavailable)
	return status, err
}

// Catalog lists every discoverable item.
func (c *Client) Catalog(ctx context.Context) (items []Item, err error) {
	start := time.Now()
	defer func() { c.obs.observe("catalog", start, err) }()

	var resp gen.CatalogResponse
	if err = c.do(ctx, http.MethodGet, "/v1/catalog", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Item fetches one catalog item.
func (c *Client) Item(ctx context.Context, id int) (item Item, err error) {
	start := time.Now()
	defer func() { c.obs.observe("item", start, err) }()

	err = c.do(ctx, http.MethodGet, "/v1/catalog/"+strconv.Itoa(id), nil, &item)
	return item, err
}

// Collected lists the items a player has discovered, oldest first.
func (c *Client) Collected(ctx context.Context, playerID string) (items []CollectedItem, err error) {
	start := time.Now()
	defer func() { c.obs.observe("collected", start, err) }()

	var resp gen.CollectedResponse
	if err = c.do(ctx, http.MethodGet, "/v1/players/"+url.PathEscape(playerID)+"/collected", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CreateSession starts a session for playerID.
func (c *Client) CreateSession(ctx context.Context, playerID string) (s *Session, err error) {
	start := time.Now()
	defer func() { c.obs.observe("create_session", start, err) }()

	var resp gen.CreateSessionResponse
	req := gen.CreateSessionRequest{PlayerID: playerID}
	if err = c.do(ctx, http.MethodPost, "/v1/sessions", req, &resp); err != nil {
		return nil, err
	}
	return c.Session(resp.ID), nil
}

// Session returns a handle to an existing session. No request is made.
func (c *Client) Session(id string) *Session {
	return &Session{id: id, client: c}
}

// do sends one JSON request. okStatus lists extra statuses whose body is
// decoded into out instead of being turned into an APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any, okStatus ...int) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("radar: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("radar: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("radar: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 && !slices.Contains(okStatus, resp.StatusCode) {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("radar: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var er gen.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil && !errors.Is(err, io.EOF) {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}
	apiErr.Code = string(er.Code)
	apiErr.Message = er.Message
	return apiErr
}
