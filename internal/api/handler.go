package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/alexivanou/restaurant-finder/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	msgCoordinatesRequired = "Latitude and longitude are required"
	msgFetchRestaurants    = "Failed to fetch restaurants"
	msgFetchDetails        = "Failed to fetch restaurant details"
	msgFetchPhoto          = "Failed to fetch photo"
)

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// SearchNearby handles GET /restaurants
func (h *Handler) SearchNearby(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")

	if latStr == "" || lngStr == "" {
		writeError(w, http.StatusBadRequest, msgCoordinatesRequired)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lng parameter")
		return
	}

	radius := service.DefaultRadius
	if radiusStr := r.URL.Query().Get("radius"); radiusStr != "" {
		radius, err = strconv.Atoi(radiusStr)
		if err != nil || radius <= 0 {
			writeError(w, http.StatusBadRequest, "invalid radius parameter")
			return
		}
	}

	restaurants, err := h.service.SearchNearby(r.Context(), model.NearbyRequest{
		Lat:    lat,
		Lng:    lng,
		Radius: radius,
	})
	if err != nil {
		h.handleError(w, err, msgFetchRestaurants)
		return
	}
	if restaurants == nil {
		restaurants = []model.Restaurant{}
	}

	writeJSON(w, http.StatusOK, restaurants)
}

// GetRestaurant handles GET /restaurants/{id}
func (h *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	restaurant, err := h.service.GetDetails(r.Context(), id)
	if err != nil {
		h.handleError(w, err, msgFetchDetails)
		return
	}

	writeJSON(w, http.StatusOK, restaurant)
}

// GetPhoto handles GET /photos/{reference}
func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	maxWidth := 0
	if widthStr := r.URL.Query().Get("maxwidth"); widthStr != "" {
		var err error
		maxWidth, err = strconv.Atoi(widthStr)
		if err != nil || maxWidth <= 0 {
			writeError(w, http.StatusBadRequest, "invalid maxwidth parameter")
			return
		}
	}

	photo, err := h.service.FetchPhoto(r.Context(), reference, maxWidth)
	if err != nil {
		h.handleError(w, err, msgFetchPhoto)
		return
	}
	defer photo.Body.Close()

	if photo.ContentType != "" {
		w.Header().Set("Content-Type", photo.ContentType)
	}
	if photo.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(photo.ContentLength, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, photo.Body); err != nil {
		h.logger.Warn("Failed to stream photo", zap.Error(err))
	}
}

// RecentSearches handles GET /stats/searches
func (h *Handler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
	}

	entries, err := h.service.RecentSearches(r.Context(), limit)
	if err != nil {
		h.logger.Error("Error listing recent searches", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Backend is running"})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleError maps validation failures to 400 and everything else to a
// generic 500 message
func (h *Handler) handleError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	h.logger.Error(fallback, zap.Error(err))
	writeError(w, http.StatusInternalServerError, fallback)
}
