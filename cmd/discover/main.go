package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alexivanou/restaurant-finder/internal/config"
	"github.com/alexivanou/restaurant-finder/internal/discovery"
	"github.com/alexivanou/restaurant-finder/internal/geo"
	"github.com/alexivanou/restaurant-finder/internal/model"
	"go.uber.org/zap"
)

type listItem struct {
	model.Restaurant
	Price      string   `json:"priceLabel"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
	Hovered    bool     `json:"hovered,omitempty"`
}

type output struct {
	Location    model.LatLng      `json:"location"`
	Radius      int               `json:"radius"`
	RatingSort  string            `json:"ratingSort"`
	PriceFilter string            `json:"priceFilter"`
	Restaurants []listItem        `json:"restaurants"`
	Selected    *model.Restaurant `json:"selected,omitempty"`
	Fallback    bool              `json:"selectedFallback,omitempty"`
}

func main() {
	var (
		lat      = flag.Float64("lat", 0, "Latitude of the user (required)")
		lng      = flag.Float64("lng", 0, "Longitude of the user (required)")
		radius   = flag.Int("radius", 0, "Search radius in meters: 500, 1000, 2000, 5000 or 10000")
		price    = flag.String("price", "all", "Price filter: all or 0-4")
		sortFlag = flag.String("sort", "highest", "Rating sort: highest or lowest")
		selectID = flag.String("select", "", "Restaurant id to show details for")
		timeout  = flag.Duration("timeout", 30*time.Second, "Overall timeout")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !flagSet("lat") || !flagSet("lng") {
		logger.Fatal("Both -lat and -lng are required")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	order, err := discovery.ParseSortOrder(*sortFlag)
	if err != nil {
		logger.Fatal("Invalid -sort", zap.Error(err))
	}
	priceFilter, err := discovery.ParsePriceFilter(*price)
	if err != nil {
		logger.Fatal("Invalid -price", zap.Error(err))
	}

	if *radius == 0 {
		*radius = cfg.Client.DefaultRadius
		if !discovery.ValidRadius(*radius) {
			logger.Warn("DEFAULT_RADIUS is not a supported radius, using 2000", zap.Int("radius", *radius))
			*radius = discovery.DefaultRadius
		}
	}

	client, err := discovery.NewClient(cfg.Client.AdapterURL, nil)
	if err != nil {
		logger.Fatal("Failed to create adapter client", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ctrl := discovery.NewController(client, discovery.StaticLocation{Lat: *lat, Lng: *lng}, logger)

	// Set before Mount so the initial search already uses it
	if err := ctrl.SetRadius(ctx, *radius); err != nil {
		logger.Fatal("Invalid -radius", zap.Error(err))
	}
	if err := ctrl.SetRatingSort(order); err != nil {
		logger.Fatal("Invalid -sort", zap.Error(err))
	}
	if err := ctrl.SetPriceFilter(priceFilter); err != nil {
		logger.Fatal("Invalid -price", zap.Error(err))
	}

	if err := ctrl.Mount(ctx); err != nil {
		logger.Error("Discovery failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, ctrl.Err())
		os.Exit(1)
	}

	if *selectID != "" {
		ctrl.Hover(*selectID)
		if err := ctrl.Select(ctx, *selectID); err != nil {
			logger.Fatal("Failed to select restaurant", zap.String("id", *selectID), zap.Error(err))
		}
	}

	out := buildOutput(ctrl, priceFilter)

	outputFormat := os.Getenv("OUTPUT_FORMAT")
	if outputFormat == "" {
		outputFormat = "text"
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			logger.Fatal("Failed to encode output", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(out)
	default:
		logger.Fatal("Unknown output format", zap.String("format", outputFormat))
	}
}

func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func buildOutput(ctrl *discovery.Controller, priceFilter *model.PriceLevel) output {
	loc, _ := ctrl.Location()
	filters := ctrl.Filters()

	out := output{
		Location:    loc,
		Radius:      filters.Radius,
		RatingSort:  string(filters.RatingSort),
		PriceFilter: "all",
		Restaurants: []listItem{},
	}
	if priceFilter != nil {
		out.PriceFilter = priceFilter.Label()
	}

	for _, r := range ctrl.View() {
		item := listItem{
			Restaurant: r,
			Price:      r.PriceLabel(),
			Hovered:    ctrl.IsHovered(r.ID),
		}
		if r.Location != nil {
			d := geo.DistanceKm(loc, *r.Location)
			item.DistanceKm = &d
		}
		out.Restaurants = append(out.Restaurants, item)
	}

	if sel := ctrl.Selection(); sel.State == discovery.SelectionOpen {
		out.Selected = sel.Restaurant
		out.Fallback = sel.Fallback
	}

	return out
}

func printHumanReadable(out output) {
	fmt.Println("=== Nearby Restaurants ===")
	fmt.Printf("Location: %.5f, %.5f  Radius: %dm  Sort: %s  Price: %s\n",
		out.Location.Lat, out.Location.Lng, out.Radius, out.RatingSort, out.PriceFilter)
	fmt.Println()

	if len(out.Restaurants) == 0 {
		fmt.Println("No restaurants match the current filters.")
	}
	for i, r := range out.Restaurants {
		marker := " "
		if r.Hovered {
			marker = ">"
		}
		distance := "    ?"
		if r.DistanceKm != nil {
			distance = fmt.Sprintf("%5.2f", *r.DistanceKm)
		}
		fmt.Printf("%s%3d. %-35s %3.1f (%5d)  %-22s %s km  %s\n",
			marker, i+1, truncate(r.Name, 35), r.Rating, r.RatingCount, r.Price, distance, r.ID)
	}

	if out.Selected == nil {
		return
	}

	s := out.Selected
	fmt.Println()
	fmt.Println("--- Details ---")
	if out.Fallback {
		fmt.Println("(details unavailable, showing list record)")
	}
	fmt.Printf("Name:     %s\n", s.Name)
	fmt.Printf("Address:  %s\n", s.Address)
	fmt.Printf("Rating:   %.1f (%d ratings)\n", s.Rating, s.RatingCount)
	fmt.Printf("Price:    %s\n", s.PriceLabel())
	if s.Phone != "" {
		fmt.Printf("Phone:    %s\n", s.Phone)
	}
	if s.Website != "" {
		fmt.Printf("Website:  %s\n", s.Website)
	}
	if s.PhotoURL != nil {
		fmt.Printf("Photo:    %s\n", *s.PhotoURL)
	}
	if len(s.OpeningHours) > 0 {
		fmt.Println("Hours:")
		for _, line := range s.OpeningHours {
			fmt.Printf("  %s\n", line)
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
