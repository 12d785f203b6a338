// Package client implements the REST transport for the Proxmox VE
// management API: authenticated GET/POST/DELETE with the {"data": ...}
// envelope unwrapped, plus host-list fallback during construction.
package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/liberodark/pve-tool/pkg/metrics"
)

// ErrAllHostsFailed is returned when no candidate host answers the
// liveness probe during fallback construction.
var ErrAllHostsFailed = errors.New("all hosts failed")

// probeTimeout bounds a single liveness probe during host fallback.
const probeTimeout = 5 * time.Second

// Client talks to one cluster endpoint.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// VersionInfo is the payload of GET /version.
type VersionInfo struct {
	Version string `json:"version"`
	Release string `json:"release"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// New builds a client for a single host. The host string may carry an
// inline port which overrides defaultPort.
func New(host string, defaultPort int, token string, verifySSL bool) *Client {
	h, p := splitHostPort(host, defaultPort)
	return NewFromURL(fmt.Sprintf("https://%s:%d/api2/json", h, p), token, verifySSL)
}

// NewFromURL builds a client against a fully formed API base URL.
func NewFromURL(baseURL, token string, verifySSL bool) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !verifySSL},
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Transport: transport},
	}
}

// NewWithFallback probes each candidate host strictly in order with a
// lightweight GET /version and returns a client for the first host that
// answers. Probe failures are logged and skipped.
func NewWithFallback(ctx context.Context, hosts []string, defaultPort int, token string, verifySSL bool) (*Client, error) {
	for _, host := range hosts {
		c := New(host, defaultPort, token, verifySSL)

		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		_, err := c.Version(probeCtx)
		cancel()

		if err == nil {
			return c, nil
		}
		log.Debug().Str("host", host).Err(err).Msg("host probe failed, trying next")
	}
	return nil, ErrAllHostsFailed
}

// splitHostPort splits an optional inline port off a host string; a
// non-numeric suffix leaves the host untouched.
func splitHostPort(host string, defaultPort int) (string, int) {
	if h, p, ok := strings.Cut(host, ":"); ok {
		if port, err := strconv.Atoi(p); err == nil {
			return h, port
		}
	}
	return host, defaultPort
}

// Get performs a GET request and decodes the data envelope into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostForm performs a form-encoded POST request and decodes the data
// envelope into out. A nil form sends an empty body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Delete performs a DELETE request and decodes the data envelope into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// Version fetches the API version document, used as the liveness probe
// and by the connection test command.
func (c *Client) Version(ctx context.Context) (*VersionInfo, error) {
	var info VersionInfo
	if err := c.Get(ctx, "/version", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "PVEAPIToken="+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	log.Debug().Str("method", method).Str("path", path).Msg("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIRequestTotal.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.APIRequestTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
