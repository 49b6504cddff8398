// Package client talks to the playerlens HTTP API and provides the
// debounced autocomplete and chart panels used by terminal front ends.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ajeebtech/playerlens/pkg/models"
)

// APIError is a non-2xx response from the API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL string
	prefix  string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithAPIPrefix selects the route prefix, e.g. "/api/v1"
func WithAPIPrefix(prefix string) Option {
	return func(cl *Client) {
		cl.prefix = "/" + strings.Trim(prefix, "/")
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	cl := &Client{
		baseURL: baseURL,
		prefix:  "/api",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(cl)
	}
	return cl, nil
}

func (c *Client) Health(ctx context.Context) (models.HealthStatus, error) {
	var out models.HealthStatus
	if err := c.getJSON(ctx, "/health", nil, &out); err != nil {
		return models.HealthStatus{}, err
	}
	return out, nil
}

// Search returns the players whose name contains term
func (c *Client) Search(ctx context.Context, term string) ([]models.SearchResult, error) {
	var out models.SearchResponse
	if err := c.getJSON(ctx, c.prefix+"/search", url.Values{"term": {term}}, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// StatsByID fetches the chart payload for an id as returned by Search
func (c *Client) StatsByID(ctx context.Context, id string) (*models.PlayerStats, error) {
	return c.stats(ctx, url.Values{"id": {id}})
}

// StatsByName fetches the chart payload for a player name
func (c *Client) StatsByName(ctx context.Context, name string) (*models.PlayerStats, error) {
	return c.stats(ctx, url.Values{"name": {name}})
}

func (c *Client) stats(ctx context.Context, params url.Values) (*models.PlayerStats, error) {
	var out models.StatsResponse
	if err := c.getJSON(ctx, c.prefix+"/stats", params, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, errors.New("stats response has no data")
	}
	return out.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
