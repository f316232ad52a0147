package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/profile-agent/internal/types"
)

const (
	// ClientVersion is reported to the service on every call.
	ClientVersion = "1.0.0"
	// SourceName identifies this client on save requests.
	SourceName = "extension"
	// DefaultTimeout bounds every API call.
	DefaultTimeout = 30 * time.Second
)

const (
	profilesPath = "/integrations/linkedin/profiles"
	statusPath   = "/integrations/linkedin/profiles/status"
	mePath       = "/integrations/extension/me"
)

// ClientConfig configures the candidate service client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// Cookie is sent verbatim as the Cookie header, standing in for browser credentials.
	Cookie  string
	Verbose bool
}

// Client talks to the candidate service.
type Client struct {
	baseURL    string
	cookie     string
	verbose    bool
	httpClient *http.Client
}

// NewClient creates a new candidate service client.
func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    base.String(),
		cookie:     cfg.Cookie,
		verbose:    cfg.Verbose,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Dispatch executes a request and folds any failure into an unsuccessful Response.
// The only error returned is ErrUnknownRequest.
func (c *Client) Dispatch(ctx context.Context, req Request) (Response, error) {
	switch r := req.(type) {
	case SaveCandidate:
		data, err := c.SaveCandidate(ctx, r.Profile)
		return toResponse(data, err), nil
	case CheckAuth:
		data, err := c.CheckAuth(ctx)
		return toResponse(data, err), nil
	case CheckCandidateStatus:
		status, err := c.CandidateStatus(ctx, r.SourceURL)
		if err != nil {
			return toResponse(nil, err), nil
		}
		return Response{Success: true, Data: status}, nil
	case Ping:
		return Response{Success: true, Version: ClientVersion, Type: "PONG"}, nil
	default:
		return Response{}, fmt.Errorf("%w: %T", ErrUnknownRequest, req)
	}
}

func toResponse(data json.RawMessage, err error) Response {
	if err != nil {
		return Response{Success: false, Message: responseMessage(err)}
	}
	if len(data) == 0 {
		return Response{Success: true}
	}
	return Response{Success: true, Data: data}
}

func responseMessage(err error) string {
	if errors.Is(err, ErrNotAuthenticated) {
		return "Not authenticated"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// SaveCandidate posts a profile wrapped as {sourceUrl, profile} and returns the service reply.
func (c *Client) SaveCandidate(ctx context.Context, profile *types.CandidateProfile) (json.RawMessage, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is nil", ErrInvalidRequest)
	}
	body := types.NewSaveCandidateRequest(profile)
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal save request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, profilesPath, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Lumina-Source", SourceName)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, data, err := c.do(req, profilesPath)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := errorMessage(data)
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		if c.verbose {
			log.Printf("[SUBMIT] Save failed: %d %s", resp.StatusCode, reason)
		}
		return nil, &APIError{
			Endpoint:   profilesPath,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Failed to save (Status %d): %s", resp.StatusCode, reason),
		}
	}

	if c.verbose {
		log.Printf("[SUBMIT] Saved %s", body.SourceURL)
	}
	return data, nil
}

// CandidateStatus reports whether a profile URL is already known to the service.
func (c *Client) CandidateStatus(ctx context.Context, sourceURL string) (*types.CandidateStatus, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return nil, fmt.Errorf("%w: source URL is empty", ErrInvalidRequest)
	}

	query := url.Values{}
	query.Set("sourceUrl", sourceURL)
	req, err := c.newRequest(ctx, http.MethodGet, statusPath, query, nil)
	if err != nil {
		return nil, err
	}

	resp, data, err := c.do(req, statusPath)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrNotAuthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Endpoint:   statusPath,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Status check failed: %d", resp.StatusCode),
		}
	}

	var status types.CandidateStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, &APIError{
			Endpoint:   statusPath,
			StatusCode: resp.StatusCode,
			Message:    "failed to decode status response",
			Cause:      err,
		}
	}
	return &status, nil
}

// CheckAuth returns the current account payload, or ErrNotAuthenticated.
func (c *Client) CheckAuth(ctx context.Context) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, mePath, nil, nil)
	if err != nil {
		return nil, err
	}

	resp, data, err := c.do(req, mePath)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ErrNotAuthenticated
	}
	return data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &APIError{Endpoint: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Version", ClientVersion)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, path string) (*http.Response, json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &APIError{Endpoint: path, Message: "Network error occurred.", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APIError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    "failed to read response body",
			Cause:      err,
		}
	}
	return resp, data, nil
}

// errorMessage pulls the "message" field out of an error body, if there is one.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Message
}
