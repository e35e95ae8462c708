// Package api is the HTTP client for the Voice Studio synthesis server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is where the local server listens by default.
const DefaultBaseURL = "http://127.0.0.1:8000"

// maxErrorBodyLen bounds how much of an error response is read for detail.
const maxErrorBodyLen = 8 << 10

// StatusError is returned when the server responds with a non-2xx status.
// Detail carries the server-supplied message when one was present.
type StatusError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
}

// Client talks to the Voice Studio server.
type Client struct {
	base       *url.URL
	httpClient *http.Client
}

// NewClient creates a client for the given base URL. An empty base uses
// DefaultBaseURL.
func NewClient(base string) (*Client, error) {
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s is not a supported protocol", u.Scheme)
	}
	return &Client{
		base: u,
		httpClient: &http.Client{
			// Synthesis of long texts is slow on CPU; leave room for it.
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// Resolve turns a server-relative locator into an absolute URL.
func (c *Client) Resolve(locator string) string {
	ref, err := url.Parse(locator)
	if err != nil {
		return locator
	}
	return c.base.ResolveReference(ref).String()
}

// System fetches the one-shot hardware detection status.
func (c *Client) System(ctx context.Context) (SystemStatus, error) {
	var status SystemStatus
	if err := c.getJSON(ctx, "/api/system", &status); err != nil {
		return SystemStatus{}, err
	}
	return status, nil
}

// Voices fetches the voice catalog and the server's default voice id.
func (c *Client) Voices(ctx context.Context) (VoicesResponse, error) {
	var resp VoicesResponse
	if err := c.getJSON(ctx, "/api/voices", &resp); err != nil {
		return VoicesResponse{}, err
	}
	return resp, nil
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	if err := c.getJSON(ctx, "/api/health", &resp); err != nil {
		return HealthResponse{}, err
	}
	return resp, nil
}

// Synthesize submits a generation request. Non-2xx responses and bodies with
// success=false both return an error; the StatusError detail carries the
// server message when present.
func (c *Client) Synthesize(ctx context.Context, req SynthesizeRequest) (SynthesizeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return SynthesizeResponse{}, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Resolve("/api/synthesize"), bytes.NewReader(body))
	if err != nil {
		return SynthesizeResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return SynthesizeResponse{}, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer httpResp.Body.Close() //nolint:errcheck

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return SynthesizeResponse{}, statusError(httpResp)
	}

	var resp SynthesizeResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return SynthesizeResponse{}, fmt.Errorf("decoding response: %w", err)
	}
	if !resp.Success {
		return SynthesizeResponse{}, &StatusError{StatusCode: httpResp.StatusCode, Detail: resp.Message}
	}
	return resp, nil
}

// Preview fetches the short MP3 sample for a voice. The sample may not exist
// yet server-side; callers treat any error as best-effort.
func (c *Client) Preview(ctx context.Context, voiceID string) ([]byte, error) {
	return c.getBytes(ctx, "/api/preview/"+url.PathEscape(voiceID))
}

// Fetch downloads audio bytes from a server-provided locator.
func (c *Client) Fetch(ctx context.Context, locator string) ([]byte, error) {
	return c.getBytes(ctx, locator)
}

// DeleteAudio removes a generated file server-side, best-effort.
func (c *Client) DeleteAudio(ctx context.Context, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.Resolve("/api/audio/"+url.PathEscape(filename)), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Resolve(path), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) getBytes(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Resolve(path), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

// statusError extracts the server's {"detail": ...} message when present.
func statusError(resp *http.Response) error {
	serr := &StatusError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil {
		return serr
	}
	var detail errorBody
	if err := json.Unmarshal(body, &detail); err == nil {
		serr.Detail = detail.Detail
	}
	return serr
}
