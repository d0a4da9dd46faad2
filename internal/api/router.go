package api

import (
	"github.com/alexivanou/restaurant-finder/internal/service"
	"github.com/alexivanou/restaurant-finder/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(service, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	router.HandleFunc("/", handler.Root).Methods("GET")
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	router.HandleFunc("/restaurants", handler.SearchNearby).Methods("GET")
	router.HandleFunc("/restaurants/{id}", handler.GetRestaurant).Methods("GET")
	router.HandleFunc("/photos/{reference}", handler.GetPhoto).Methods("GET")

	router.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	router.HandleFunc("/stats/searches", handler.RecentSearches).Methods("GET")

	return router
}
