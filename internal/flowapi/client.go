package flowapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher reads flow resources. It is implemented by *Client and faked in
// tests.
type Fetcher interface {
	ListEnvironments(ctx context.Context) ([]Record, error)
	ListFlows(ctx context.Context, env string) ([]Record, error)
	GetFlow(ctx context.Context, env, flow string) (Record, error)
	ListRuns(ctx context.Context, env, flow string) ([]Record, error)
	GetRun(ctx context.Context, env, flow, run string) (Record, error)
	ListTriggerHistories(ctx context.Context, env, flow, trigger string) ([]Record, error)
	ListConnections(ctx context.Context, env, flow string) ([]Record, error)
}

// Commander mutates flows and runs.
type Commander interface {
	UpdateFlow(ctx context.Context, env, flow string, update FlowUpdate) (Record, error)
	DeleteFlow(ctx context.Context, env, flow string) error
	StartFlow(ctx context.Context, env, flow string) error
	StopFlow(ctx context.Context, env, flow string) error
	RunFlow(ctx context.Context, env, flow, trigger string) error
	CancelRun(ctx context.Context, env, flow, run string) error
	ResubmitRun(ctx context.Context, env, flow, trigger, run string) error
}

// API is the full client surface.
type API interface {
	Fetcher
	Commander
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the workflow automation REST API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	token      string
	apiVersion string
	userAgent  string
	logger     *slog.Logger
}

const (
	DefaultBaseURL    = "https://api.flow.microsoft.com"
	DefaultAPIVersion = "2016-11-01"
	defaultUserAgent  = "flowdeck/0.1"
	defaultTimeout    = 30 * time.Second
	providerPath      = "/providers/Microsoft.ProcessSimple"
)

// Options configure a Client.
type Options struct {
	BaseURL    string
	APIVersion string
	// Token is sent as the Authorization header exactly as given.
	Token      string
	Timeout    time.Duration
	Logger     *slog.Logger
	HTTPClient *http.Client
}

// NewClient builds a Client.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Token) == "" {
		return nil, fmt.Errorf("bearer token required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	version := strings.TrimSpace(opts.APIVersion)
	if version == "" {
		version = DefaultAPIVersion
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    base,
		http:       httpClient,
		token:      opts.Token,
		apiVersion: version,
		userAgent:  defaultUserAgent,
		logger:     logger,
	}, nil
}

// ListEnvironments returns every environment visible to the token.
func (c *Client) ListEnvironments(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return c.list(ctx, "/environments", nil)
}

// ListFlows returns the flows of an environment.
func (c *Client) ListFlows(ctx context.Context, env string) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	p, err := flowsPath(env)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, p, nil)
}

// GetFlow returns one flow including its connection references.
func (c *Client) GetFlow(ctx context.Context, env, flow string) (Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	p, err := flowPath(env, flow)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("$expand", "properties.connectionreferences")
	var payload Record
	if err := c.do(ctx, http.MethodGet, p, q, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FlowUpdate is the mutable subset of flow properties.
type FlowUpdate struct {
	DisplayName string `json:"displayName,omitempty"`
	State       string `json:"state,omitempty"`
}

// UpdateFlow patches flow properties and returns the updated flow.
func (c *Client) UpdateFlow(ctx context.Context, env, flow string, update FlowUpdate) (Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	p, err := flowPath(env, flow)
	if err != nil {
		return nil, err
	}
	body := map[string]any{"properties": update}
	var payload Record
	if err := c.do(ctx, http.MethodPatch, p, nil, body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// DeleteFlow removes a flow.
func (c *Client) DeleteFlow(ctx context.Context, env, flow string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	p, err := flowPath(env, flow)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, p, nil, nil, nil)
}

// StartFlow turns a flow on.
func (c *Client) StartFlow(ctx context.Context, env, flow string) error {
	return c.flowAction(ctx, env, flow, "start")
}

// StopFlow turns a flow off.
func (c *Client) StopFlow(ctx context.Context, env, flow string) error {
	return c.flowAction(ctx, env, flow, "stop")
}

// RunFlow fires a manual trigger.
func (c *Client) RunFlow(ctx context.Context, env, flow, trigger string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	p, err := triggerPath(env, flow, trigger)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, p+"/run", nil, map[string]any{}, nil)
}

// ListRuns returns the run history of a flow.
func (c *Client) ListRuns(ctx context.Context, env, flow string) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	p, err := flowPath(env, flow)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, p+"/runs", nil)
}

// GetRun returns one run.
func (c *Client) GetRun(ctx context.Context, env, flow, run string) (Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	p, err := runPath(env, flow, run)
	if err != nil {
		return nil, err
	}
	var payload Record
	if err := c.do(ctx, http.MethodGet, p, nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CancelRun cancels a running run.
func (c *Client) CancelRun(ctx context.Context, env, flow, run string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	p, err := runPath(env, flow, run)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, p+"/cancel", nil, nil, nil)
}

// ResubmitRun replays the trigger history entry that started run.
func (c *Client) ResubmitRun(ctx context.Context, env, flow, trigger, run string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	p, err := triggerPath(env, flow, trigger)
	if err != nil {
		return err
	}
	if strings.TrimSpace(run) == "" {
		return fmt.Errorf("run name required")
	}
	return c.do(ctx, http.MethodPost, p+"/histories/"+url.PathEscape(run)+"/resubmit", nil, nil, nil)
}

// ListTriggerHistories returns the trigger check history of a flow trigger.
func (c *Client) ListTriggerHistories(ctx context.Context, env, flow, trigger string) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	p, err := triggerPath(env, flow, trigger)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, p+"/histories", nil)
}

// ListConnections returns the connections used by a flow.
func (c *Client) ListConnections(ctx context.Context, env, flow string) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	p, err := flowPath(env, flow)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, p+"/connections", nil)
}

func (c *Client) flowAction(ctx context.Context, env, flow, action string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	p, err := flowPath(env, flow)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, p+"/"+action, nil, nil, nil)
}

func (c *Client) list(ctx context.Context, path string, query url.Values) ([]Record, error) {
	var payload ListResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Value, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	values := url.Values{}
	for k, v := range query {
		values[k] = v
	}
	values.Set("api-version", c.apiVersion)
	// path arrives with its segments already escaped.
	escaped := providerPath + path
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return fmt.Errorf("build request path: %w", err)
	}
	rel := &url.URL{Path: unescaped, RawPath: escaped, RawQuery: values.Encode()}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.token)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "path", rel.Path, "error", err)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.logger.Debug("api request", "method", method, "path", rel.Path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 400 {
		apiErr := readAPIError(resp, rel.Path)
		c.logger.Warn("api error", "method", method, "path", rel.Path, "status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func flowsPath(env string) (string, error) {
	env = strings.TrimSpace(env)
	if env == "" {
		return "", fmt.Errorf("environment required")
	}
	return "/environments/" + url.PathEscape(env) + "/flows", nil
}

func flowPath(env, flow string) (string, error) {
	base, err := flowsPath(env)
	if err != nil {
		return "", err
	}
	flow = strings.TrimSpace(flow)
	if flow == "" {
		return "", fmt.Errorf("flow name required")
	}
	return base + "/" + url.PathEscape(flow), nil
}

func runPath(env, flow, run string) (string, error) {
	base, err := flowPath(env, flow)
	if err != nil {
		return "", err
	}
	run = strings.TrimSpace(run)
	if run == "" {
		return "", fmt.Errorf("run name required")
	}
	return base + "/runs/" + url.PathEscape(run), nil
}

func triggerPath(env, flow, trigger string) (string, error) {
	base, err := flowPath(env, flow)
	if err != nil {
		return "", err
	}
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return "", fmt.Errorf("trigger name required")
	}
	return base + "/triggers/" + url.PathEscape(trigger), nil
}
