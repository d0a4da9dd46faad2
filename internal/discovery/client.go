package discovery

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

	"github.com/alexivanou/restaurant-finder/internal/model"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the adapter
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("adapter returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("adapter returned status %d: %s", e.StatusCode, e.Message)
}

// Client calls the adapter HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an adapter client rooted at baseURL
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("adapter URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid adapter URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Nearby lists the restaurants within radius meters of loc
func (c *Client) Nearby(ctx context.Context, loc model.LatLng, radius int) ([]model.Restaurant, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(loc.Lng, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radius))

	var restaurants []model.Restaurant
	if err := c.get(ctx, "/restaurants?"+params.Encode(), &restaurants); err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []model.Restaurant{}
	}
	return restaurants, nil
}

// Details fetches the detailed record of one restaurant
func (c *Client) Details(ctx context.Context, id string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := c.get(ctx, "/restaurants/"+url.PathEscape(id), &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&body); err == nil {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding adapter response: %w", err)
	}
	return nil
}
