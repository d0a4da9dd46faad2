package places

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nearbyPayload = `{
  "status": "OK",
  "results": [
    {
      "place_id": "ChIJ-a",
      "name": "Pasta Place",
      "vicinity": "Torstr. 1, Berlin",
      "rating": 4.5,
      "user_ratings_total": 310,
      "price_level": 2,
      "geometry": {"location": {"lat": 52.53, "lng": 13.40}},
      "photos": [{"photo_reference": "photo-a", "width": 1024, "height": 768}]
    },
    {
      "place_id": "ChIJ-b",
      "name": "Noodle Bar",
      "vicinity": "Torstr. 9, Berlin"
    }
  ]
}`

const detailsPayload = `{
  "status": "OK",
  "result": {
    "place_id": "ChIJ-a",
    "name": "Pasta Place",
    "formatted_address": "Torstr. 1, 10119 Berlin, Germany",
    "rating": 4.5,
    "price_level": 2,
    "formatted_phone_number": "030 1234567",
    "website": "https://pasta.example",
    "opening_hours": {"open_now": true, "weekday_text": ["Monday: 11:00 AM – 10:00 PM"]},
    "geometry": {"location": {"lat": 52.53, "lng": 13.40}}
  }
}`

func TestClient_NearbySearch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"location": q.Get("location"),
			"radius":   q.Get("radius"),
			"type":     q.Get("type"),
			"key":      q.Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, nearbyPayload)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	restaurants, err := c.NearbySearch(context.Background(), 52.52, 13.405, 1500)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"location": "52.52,13.405",
		"radius":   "1500",
		"type":     "restaurant",
		"key":      "test-key",
	}, gotQuery)

	require.Len(t, restaurants, 2)
	assert.Equal(t, "ChIJ-a", restaurants[0].ID)
	assert.Equal(t, "Torstr. 1, Berlin", restaurants[0].Address)
	assert.Equal(t, 310, restaurants[0].RatingCount)
	require.NotNil(t, restaurants[0].PhotoURL)
	assert.Equal(t, "http://adapter.local/photos/photo-a?maxwidth=400", *restaurants[0].PhotoURL)

	assert.Equal(t, "ChIJ-b", restaurants[1].ID)
	assert.Zero(t, restaurants[1].Rating)
	assert.Nil(t, restaurants[1].PriceLevel)
	assert.Nil(t, restaurants[1].PhotoURL)
}

func TestClient_NearbySearch_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer srv.Close()

	restaurants, err := newTestClient(srv.URL).NearbySearch(context.Background(), 1, 1, 500)
	require.NoError(t, err)
	assert.NotNil(t, restaurants)
	assert.Empty(t, restaurants)
}

func TestClient_NearbySearch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non 2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"results": [`)
			},
		},
		{
			name: "denied status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid."}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			restaurants, err := newTestClient(srv.URL).NearbySearch(context.Background(), 1, 1, 500)
			assert.Nil(t, restaurants)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUpstream))

			var upstreamErr *UpstreamError
			require.True(t, errors.As(err, &upstreamErr))
			assert.Equal(t, "nearby search", upstreamErr.Op)
		})
	}
}

func TestClient_NearbySearch_NetworkErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).NearbySearch(context.Background(), 1, 1, 500)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotContains(t, err.Error(), "test-key")
}

func TestClient_Details(t *testing.T) {
	var gotFields, gotPlaceID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		gotFields = r.URL.Query().Get("fields")
		gotPlaceID = r.URL.Query().Get("place_id")
		io.WriteString(w, detailsPayload)
	}))
	defer srv.Close()

	restaurant, err := newTestClient(srv.URL).Details(context.Background(), "ChIJ-a")
	require.NoError(t, err)
	require.NotNil(t, restaurant)

	assert.Equal(t, "ChIJ-a", gotPlaceID)
	for _, field := range []string{"name", "rating", "price_level", "formatted_phone_number",
		"formatted_address", "opening_hours", "website", "photos", "geometry"} {
		assert.Contains(t, strings.Split(gotFields, ","), field)
	}

	assert.Equal(t, "ChIJ-a", restaurant.ID)
	assert.Equal(t, "Torstr. 1, 10119 Berlin, Germany", restaurant.Address)
	assert.Equal(t, "030 1234567", restaurant.Phone)
	assert.Equal(t, "https://pasta.example", restaurant.Website)
	assert.Equal(t, []string{"Monday: 11:00 AM – 10:00 PM"}, restaurant.OpeningHours)
}

func TestClient_Details_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "NOT_FOUND"}`)
	}))
	defer srv.Close()

	restaurant, err := newTestClient(srv.URL).Details(context.Background(), "missing")
	assert.Nil(t, restaurant)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestClient_Photo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo":
			assert.Equal(t, "photo-a", r.URL.Query().Get("photoreference"))
			assert.Equal(t, "640", r.URL.Query().Get("maxwidth"))
			http.Redirect(w, r, "/image.jpg", http.StatusFound)
		case "/image.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			io.WriteString(w, "jpeg-bytes")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p, err := newTestClient(srv.URL).Photo(context.Background(), "photo-a", 640)
	require.NoError(t, err)
	defer p.Body.Close()

	body, err := io.ReadAll(p.Body)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", p.ContentType)
	assert.Equal(t, "jpeg-bytes", string(body))
}
