package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alexivanou/restaurant-finder/internal/config"
	"github.com/alexivanou/restaurant-finder/internal/model"
)

const (
	placeType = "restaurant"

	// detailsFields is the fixed field set requested from the details endpoint
	detailsFields = "place_id,name,rating,user_ratings_total,price_level,formatted_phone_number," +
		"formatted_address,opening_hours,website,photos,geometry"

	// maxErrorBody bounds how much of a failed response is drained
	maxErrorBody = 4 << 10
)

// Photo is an image streamed from the photo endpoint. Callers must close Body.
type Photo struct {
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

// Client talks to the Places web service and returns normalized records
type Client struct {
	apiKey        string
	baseURL       string
	publicBaseURL string
	photoMaxWidth int
	httpClient    *http.Client
}

// NewClient creates a Places client. publicBaseURL is the externally visible
// root of the adapter and is used to build photo proxy links.
func NewClient(cfg config.PlacesConfig, publicBaseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	width := cfg.PhotoMaxWidth
	if width <= 0 {
		width = 400
	}
	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		photoMaxWidth: width,
		httpClient:    httpClient,
	}
}

// NearbySearch returns the restaurants within radius meters of (lat, lng)
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64, radius int) ([]model.Restaurant, error) {
	params := url.Values{}
	params.Set("location", formatLocation(lat, lng))
	params.Set("radius", strconv.Itoa(radius))
	params.Set("type", placeType)

	var resp nearbyResponse
	if err := c.getJSON(ctx, "nearby search", "/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != statusOK && resp.Status != statusZeroResults {
		return nil, &UpstreamError{Op: "nearby search", Status: resp.Status, Message: resp.ErrorMessage}
	}

	restaurants := make([]model.Restaurant, 0, len(resp.Results))
	for _, result := range resp.Results {
		restaurants = append(restaurants, c.normalizeNearby(result))
	}
	return restaurants, nil
}

// Details returns the full record of a single place
func (c *Client) Details(ctx context.Context, placeID string) (*model.Restaurant, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)

	var resp detailsResponse
	if err := c.getJSON(ctx, "details", "/details/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != statusOK {
		return nil, &UpstreamError{Op: "details", Status: resp.Status, Message: resp.ErrorMessage}
	}
	if resp.Result == nil {
		return nil, &UpstreamError{Op: "details", Status: resp.Status, Message: "response has no result"}
	}

	restaurant := c.normalizeDetails(*resp.Result, placeID)
	return &restaurant, nil
}

// Photo fetches the image behind a photo reference
func (c *Client) Photo(ctx context.Context, reference string, maxWidth int) (*Photo, error) {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("photoreference", reference)

	resp, err := c.do(ctx, "photo", "/photo", params)
	if err != nil {
		return nil, err
	}

	return &Photo{
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// PhotoURL returns the adapter link that serves the given photo reference
func (c *Client) PhotoURL(reference string) string {
	return fmt.Sprintf("%s/photos/%s?maxwidth=%d", c.publicBaseURL, url.PathEscape(reference), c.photoMaxWidth)
}

func (c *Client) getJSON(ctx context.Context, op, path string, params url.Values, out interface{}) error {
	resp, err := c.do(ctx, op, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// do sends the request and returns the response only for 2xx statuses
func (c *Client) do(ctx context.Context, op, path string, params url.Values) (*http.Response, error) {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The transport error carries the full URL, key included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &UpstreamError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &UpstreamError{Op: op, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func formatLocation(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
