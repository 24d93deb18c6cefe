package statsapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a rate-limited HTTP client for the game-server stats API.
// All requests go through the upstream proxy, which enforces a ~30s
// timeout on its side; we mirror that bound locally.
type Client struct {
	http    *http.Client
	sem     chan struct{}
	baseURL string
	apiKey  string

	pricesCache *pricesCache
}

// NewClient creates a stats API client. maxConcurrent caps in-flight
// requests; the upstream proxy throttles aggressively beyond ~10.
func NewClient(baseURL, apiKey string, maxConcurrent int) *Client {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		sem:         make(chan struct{}, maxConcurrent),
		baseURL:     baseURL,
		apiKey:      apiKey,
		pricesCache: newPricesCache(5 * time.Minute),
	}
}

// SetPricesCacheTTL overrides the prices page cache TTL (config-driven).
func (c *Client) SetPricesCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		c.pricesCache.ttl = ttl
	}
}

// SetRequestTimeout overrides the per-request timeout (config-driven).
func (c *Client) SetRequestTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

// HealthCheck pings the upstream to verify connectivity and credentials.
func (c *Client) HealthCheck() bool {
	req, err := c.newRequest("/ping", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == 200
}

// newRequest builds a GET request with auth and common headers.
func (c *Client) newRequest(path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "craftboard/1.0 (github.com)")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

// getJSON fetches path?query and decodes the JSON body into dst.
// Non-200 responses are classified per the error taxonomy; a decode
// failure on a 200 body is reported as ErrMalformed.
func (c *Client) getJSON(path string, query url.Values, dst interface{}) error {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	req, err := c.newRequest(path, query)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return classifyStatus(resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
