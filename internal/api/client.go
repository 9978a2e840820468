package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/newhook/glass/internal/cachemanager"
	"github.com/newhook/glass/internal/logging"
)

const (
	// DefaultTimeout bounds every request except the event stream.
	DefaultTimeout = 30 * time.Second

	apiPrefix = "/api/v1"
)

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// Client talks to glass-server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// streamClient has no overall timeout; streams live until the server ends them.
	streamClient *http.Client
	sessions     cachemanager.CacheManager[string, SessionInfo]
	sessionTTL   time.Duration
}

// NewClient creates a client for the server at baseURL. Session lookups are
// cached for sessionTTL; zero disables caching.
func NewClient(baseURL string, sessionTTL time.Duration) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		streamClient: &http.Client{},
		sessionTTL:   sessionTTL,
	}
	if sessionTTL > 0 {
		c.sessions = cachemanager.NewInMemoryCacheManager[string, SessionInfo]("sessions", sessionTTL, cachemanager.DefaultCleanupInterval)
	}
	return c
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func issuePath(id string, parts ...string) string {
	p := apiPrefix + "/issues/" + url.PathEscape(id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	return req, requestID, nil
}

// do sends a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, requestID, err := c.newRequest(ctx, method, path)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	logging.Debug("request complete",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListIssues returns the server's cached issue list.
func (c *Client) ListIssues(ctx context.Context) (*ListIssuesResponse, error) {
	var resp ListIssuesResponse
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/issues", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshIssues re-pulls issues from the upstream source and returns the new list.
func (c *Client) RefreshIssues(ctx context.Context) (*ListIssuesResponse, error) {
	var resp ListIssuesResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/issues/refresh", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetIssue returns the server's cached detail for an issue.
func (c *Client) GetIssue(ctx context.Context, id string) (*IssueDetail, error) {
	var resp IssueDetail
	if err := c.do(ctx, http.MethodGet, issuePath(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshIssue re-pulls one issue from the upstream source.
func (c *Client) RefreshIssue(ctx context.Context, id string) (*IssueDetail, error) {
	var resp IssueDetail
	if err := c.do(ctx, http.MethodPost, issuePath(id, "refresh"), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSession returns the recorded sessions for an issue.
func (c *Client) GetSession(ctx context.Context, id string) (*SessionInfo, error) {
	if c.sessions != nil {
		if info, ok := c.sessions.Get(ctx, id); ok {
			return &info, nil
		}
	}
	var resp SessionInfo
	if err := c.do(ctx, http.MethodGet, issuePath(id, "session"), &resp); err != nil {
		return nil, err
	}
	if c.sessions != nil {
		c.sessions.Set(ctx, id, resp, c.sessionTTL)
	}
	return &resp, nil
}

// action posts a lifecycle action. Sessions change on every action, so the
// cached lookup for the issue is dropped first.
func (c *Client) action(ctx context.Context, id, name string, out any) error {
	if c.sessions != nil {
		_ = c.sessions.Delete(ctx, id)
	}
	return c.do(ctx, http.MethodPost, issuePath(id, name), out)
}

// Analyze starts an analysis session.
func (c *Client) Analyze(ctx context.Context, id string) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	if err := c.action(ctx, id, "analyze", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Approve accepts the proposal and starts implementation.
func (c *Client) Approve(ctx context.Context, id string) (*ApproveResponse, error) {
	var resp ApproveResponse
	if err := c.action(ctx, id, "approve", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reject discards the proposal.
func (c *Client) Reject(ctx context.Context, id string) (*RejectResponse, error) {
	var resp RejectResponse
	if err := c.action(ctx, id, "reject", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Complete finishes the review and cleans up the worktree.
func (c *Client) Complete(ctx context.Context, id string) (*CompleteResponse, error) {
	var resp CompleteResponse
	if err := c.action(ctx, id, "complete", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retry restarts a failed issue.
func (c *Client) Retry(ctx context.Context, id string) (*RetryResponse, error) {
	var resp RetryResponse
	if err := c.action(ctx, id, "retry", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StreamEvents connects to an issue's event stream and calls fn for each
// decoded event until the server closes the stream, ctx is cancelled, fn
// returns an error, or a payload fails to decode. A clean end of stream
// returns nil.
func (c *Client) StreamEvents(ctx context.Context, id string, fn func(AnalysisEvent) error) error {
	path := issuePath(id, "events")
	req, requestID, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to open event stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}
	logging.Info("event stream opened", "issue_id", id, "request_id", requestID)

	scanner := NewSSEScanner(resp.Body)
	for scanner.Next() {
		sse := scanner.Event()
		logging.Debug("event stream message", "issue_id", id, "bytes", len(sse.Data))
		event, err := DecodeAnalysisEvent([]byte(sse.Data))
		if err != nil {
			logging.Error("failed to parse event", "issue_id", id, "error", err)
			return fmt.Errorf("parse error: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("event stream failed: %w", err)
	}
	logging.Info("event stream ended", "issue_id", id)
	return nil
}
