package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/locvowork/employee_api_gateway/internal/domain"
	"github.com/locvowork/employee_api_gateway/internal/logger"
)

// Config holds the read-only settings of the upstream client.
type Config struct {
	BaseURL      string
	MaxAttempts  int
	InitialDelay time.Duration
	HTTPClient   *http.Client
}

// Client talks to the upstream employee API. It owns the retry policy for
// rate-limited calls and the translation of HTTP failures into the domain
// error kinds. It keeps no state beyond configuration, so one instance is
// safe to share across goroutines as long as the http.Client is.
type Client struct {
	baseURL      string
	maxAttempts  int
	initialDelay time.Duration
	http         *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		maxAttempts:  cfg.MaxAttempts,
		initialDelay: cfg.InitialDelay,
		http:         cfg.HTTPClient,
	}
}

// FetchAll retrieves every employee from the upstream API.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Employee, error) {
	logger.DebugLog(ctx, "Fetching all employees")
	body, err := c.do(ctx, http.MethodGet, c.baseURL, nil, "employees")
	if err != nil {
		return nil, err
	}
	return unwrap[[]domain.Employee](body)
}

// FetchByID retrieves one employee by id.
func (c *Client) FetchByID(ctx context.Context, id string) (domain.Employee, error) {
	logger.DebugLog(ctx, "Fetching employee with id: %s", id)
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/"+id, nil, id)
	if err != nil {
		return domain.Employee{}, err
	}
	return unwrap[domain.Employee](body)
}

// Create posts a new employee and returns the created record.
func (c *Client) Create(ctx context.Context, req domain.EmployeeCreateRequest) (domain.Employee, error) {
	logger.DebugLog(ctx, "Creating employee: %s", req.Name)
	payload, err := json.Marshal(req)
	if err != nil {
		return domain.Employee{}, &domain.UpstreamError{Message: "encode create request", Err: err}
	}
	body, err := c.do(ctx, http.MethodPost, c.baseURL, payload, "employees")
	if err != nil {
		return domain.Employee{}, err
	}
	return unwrap[domain.Employee](body)
}

// DeleteByName issues the upstream's name-keyed delete and returns the
// success flag the upstream reports. A false result is not an error here;
// callers decide what an unsuccessful delete means.
func (c *Client) DeleteByName(ctx context.Context, name string) (bool, error) {
	logger.DebugLog(ctx, "Deleting employee by name: %s", name)
	payload, err := json.Marshal(domain.DeleteEmployeeRequest{Name: name})
	if err != nil {
		return false, &domain.UpstreamError{Message: "encode delete request", Err: err}
	}
	body, err := c.do(ctx, http.MethodDelete, c.baseURL, payload, name)
	if err != nil {
		return false, err
	}
	return unwrap[bool](body)
}

// do performs one logical call against the upstream, retrying rate-limited
// attempts with exponential backoff. Retries never span more than this
// single call; composites built on top are not re-run as a whole.
func (c *Client) do(ctx context.Context, method, url string, payload []byte, resource string) ([]byte, error) {
	delay := c.initialDelay
	for attempt := 1; ; attempt++ {
		body, rateLimited, err := c.attempt(ctx, method, url, payload, resource)
		if err == nil {
			return body, nil
		}
		if !rateLimited {
			return nil, err
		}
		if attempt >= c.maxAttempts {
			logger.ErrorLog(ctx, "Upstream still rate limited after %d attempts: %s %s", attempt, method, url)
			return nil, &domain.RateLimitError{Attempts: attempt}
		}

		logger.WarnLog(ctx, "Upstream rate limited, retrying in %s (attempt %d/%d)", delay, attempt, c.maxAttempts)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, &domain.UpstreamError{Message: "retry wait interrupted", Err: ctx.Err()}
		}
		delay *= 2
	}
}

// attempt runs exactly one HTTP exchange and classifies the outcome.
// rateLimited marks the only retryable failure.
func (c *Client) attempt(ctx context.Context, method, url string, payload []byte, resource string) (body []byte, rateLimited bool, err error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, false, &domain.UpstreamError{Message: "build request", Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, &domain.UpstreamError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, &domain.UpstreamError{StatusCode: resp.StatusCode, Message: "read response body", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, &domain.RateLimitError{Attempts: 1}
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, &domain.NotFoundError{Resource: resource}
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, false, &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}
	return body, false, nil
}

// unwrap decodes the upstream envelope and extracts its payload. A missing
// data field where a payload is expected is a protocol violation, never a
// not-found.
func unwrap[T any](body []byte) (T, error) {
	var zero T
	var env domain.Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, &domain.UpstreamError{Message: "malformed envelope", Err: err}
	}
	if env.Data == nil {
		return zero, &domain.UpstreamError{Message: "envelope missing data payload"}
	}
	return *env.Data, nil
}
