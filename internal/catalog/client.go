package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a remote catalog service over HTTP.
//
// Expected endpoints:
//
//	GET   {base}/books        full collection as a JSON array
//	PATCH {base}/books/{id}   partial update, returns the updated record
//	GET   {base}/stats        aggregate counts (optional)
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

var _ Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient creates a catalog client. The token is optional; when set it is
// sent as a bearer token on every request.
func NewClient(baseURL, apiToken string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   strings.TrimSpace(apiToken),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchAllBooks retrieves the full collection.
func (c *Client) FetchAllBooks(ctx context.Context) ([]Book, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/books", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog books request returned %d", resp.StatusCode)
	}

	var books []Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode books response: %w", err)
	}
	return books, nil
}

// UpdateBook applies a partial update to one record.
func (c *Client) UpdateBook(ctx context.Context, id string, patch Patch) (*Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("book id required")
	}
	if patch.IsEmpty() {
		return nil, errors.New("patch carries no changes")
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPatch, "/books/"+id, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update book %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog update for %s returned %d", id, resp.StatusCode)
	}

	var updated Book
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("decode updated book: %w", err)
	}
	return &updated, nil
}

// FetchStats retrieves aggregate counts from the service.
func (c *Client) FetchStats(ctx context.Context) (*Stats, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/stats", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog stats request returned %d", resp.StatusCode)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}
	return &stats, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body *bytes.Reader) (*http.Request, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	return req, nil
}
