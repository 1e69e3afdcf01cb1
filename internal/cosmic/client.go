// Package cosmic is a read-only client for a Cosmic-style headless content
// bucket.
package cosmic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.cosmicjs.com/v3"
	DefaultTimeout = 10 * time.Second

	readKeyParam = "read_key"
)

type Client struct {
	baseURL    string
	bucketSlug string
	readKey    string
	client     *http.Client
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient sends requests through hc. A nil hc keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds every request. It applies to a copy of the HTTP client,
// so a shared client passed to WithHTTPClient keeps its own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(baseURL, bucketSlug, readKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucketSlug: bucketSlug,
		readKey:    readKey,
		client:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c
}

// Find returns every object matching q.
func (c *Client) Find(ctx context.Context, q Query) (*ObjectsResponse, error) {
	body, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}

	var resp ObjectsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal objects response: %w", err)
	}
	return &resp, nil
}

// FindOne returns the first object matching q. An empty match is reported
// with the same 404 StatusError the bucket uses for an empty collection.
func (c *Client) FindOne(ctx context.Context, q Query) (*ObjectResponse, error) {
	q.Limit = 1
	q.Skip = 0
	resp, err := c.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(resp.Objects) == 0 {
		return nil, &StatusError{Status: http.StatusNotFound, Message: "No objects found"}
	}
	return &ObjectResponse{Object: resp.Objects[0]}, nil
}

func (c *Client) get(ctx context.Context, q Query) ([]byte, error) {
	params, err := q.values()
	if err != nil {
		return nil, err
	}
	if c.readKey != "" {
		params.Set(readKeyParam, c.readKey)
	}

	endpoint := fmt.Sprintf("%s/buckets/%s/objects?%s", c.baseURL, url.PathEscape(c.bucketSlug), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, body)
	}
	return body, nil
}

func statusError(code int, body []byte) *StatusError {
	se := &StatusError{}
	if err := json.Unmarshal(body, se); err != nil || se.Message == "" {
		se.Message = strings.TrimSpace(string(body))
	}
	// the HTTP status wins over whatever the body claims
	se.Status = code
	return se
}
