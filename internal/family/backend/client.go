// Package backend is the REST client for the case-management backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"famcard/internal/family/ports"
	dErrors "famcard/pkg/domain-errors"
)

const (
	pathLogin         = "/auth/login"
	pathFamilyInfo    = "/api/card/familyInfo"
	pathPersonDetails = "/api/card/getPersonDetailsDTOByIin"
	pathCohortPage    = "/api/workspace/stat/page"

	defaultTimeout  = 120 * time.Second
	maxResponseBody = 8 << 20
)

// DefaultHeaders are sent on every request. The backend rejects clients that
// do not look like its web UI.
var DefaultHeaders = map[string]string{
	"User-Agent":   "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/111.0",
	"Accept":       "application/json, text/plain, */*",
	"Content-Type": "application/json",
}

// Client implements ports.Backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is used as
// is, without tracing.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.httpClient.Timeout = d
		}
	}
}

// WithHeader adds or overrides a default header.
func WithHeader(key, value string) Option {
	return func(cl *Client) {
		cl.headers[key] = value
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}

	headers := make(map[string]string, len(DefaultHeaders))
	for k, v := range DefaultHeaders {
		headers[k] = v
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		headers: headers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type iinRequest struct {
	IIN string `json:"iin"`
}

type cohortRequest struct {
	IIN  string `json:"iin"`
	Page int    `json:"page"`
	Size int    `json:"size"`
}

type cohortPage struct {
	Total int `json:"total"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (*ports.LoginResult, error) {
	var out ports.LoginResult
	if err := c.post(ctx, pathLogin, "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FamilyInfo fetches the household record of iin.
func (c *Client) FamilyInfo(ctx context.Context, sess ports.Session, iin string) (*ports.FamilyInfo, error) {
	var out ports.FamilyInfo
	if err := c.post(ctx, pathFamilyInfo, sess.Token, iinRequest{IIN: iin}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonDetails fetches the social status records of one person.
func (c *Client) PersonDetails(ctx context.Context, sess ports.Session, iin string) (*ports.PersonDetails, error) {
	var out ports.PersonDetails
	if err := c.post(ctx, pathPersonDetails, sess.Token, iinRequest{IIN: iin}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CohortTotal queries the first page of the eligibility cohort filtered by iin.
func (c *Client) CohortTotal(ctx context.Context, sess ports.Session, iin string) (int, error) {
	var out cohortPage
	if err := c.post(ctx, pathCohortPage, sess.Token, cohortRequest{IIN: iin, Page: 0, Size: 1}, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if token != "" {
		req.Header.Set("Authorization", ports.Session{Token: token}.AuthorizationHeader())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "backend call",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := classifyStatus(path, resp.StatusCode); err != nil {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return err
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return classifyTransport(path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeDecode, fmt.Sprintf("malformed %s response", path))
	}
	return nil
}
