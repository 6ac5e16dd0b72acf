package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const discoveryVersion = "2018-03-05"

// DiscoveryOptions configure a DiscoveryClient.
type DiscoveryOptions struct {
	URL           string
	Username      string
	Password      string
	EnvironmentID string
	CollectionID  string
}

// DiscoveryClient queries a Watson Discovery style collection over its
// versioned REST API.
type DiscoveryClient struct {
	opts       DiscoveryOptions
	httpClient *http.Client
}

// NewDiscoveryClient creates a client for the given collection.
func NewDiscoveryClient(opts DiscoveryOptions) *DiscoveryClient {
	opts.URL = strings.TrimSuffix(opts.URL, "/")
	return &DiscoveryClient{
		opts:       opts,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *DiscoveryClient) Query(ctx context.Context, text string, count int) (*Response, error) {
	if count <= 0 {
		count = defaultQueryCount
	}

	u, err := url.Parse(fmt.Sprintf("%s/v1/environments/%s/collections/%s/query",
		c.opts.URL, c.opts.EnvironmentID, c.opts.CollectionID))
	if err != nil {
		return nil, fmt.Errorf("parse discovery url: %w", err)
	}
	q := u.Query()
	q.Set("version", discoveryVersion)
	q.Set("query", text)
	q.Set("count", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create discovery request: %w", err)
	}
	if c.opts.Username != "" {
		req.SetBasicAuth(c.opts.Username, c.opts.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("discovery returned status %d: %s", resp.StatusCode, string(body))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode discovery response: %w", err)
	}

	return &out, nil
}
