package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alexivanou/restaurant-finder/internal/config"
	"github.com/alexivanou/restaurant-finder/internal/database"
	"github.com/alexivanou/restaurant-finder/internal/repository"
	"github.com/alexivanou/restaurant-finder/internal/stats"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var statistics *stats.Stats
	if cfg.DB.IsMemory() {
		// The in-memory search log only exists inside the adapter process
		logger.Info("Fetching statistics from adapter", zap.String("url", cfg.Client.AdapterURL))
		statistics, err = fetchFromAdapter(ctx, cfg.Client.AdapterURL)
	} else {
		logger.Info("Collecting statistics from database", zap.String("db_type", string(cfg.DB.Type)))
		statistics, err = collectFromDatabase(ctx, cfg.DB)
	}
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	outputFormat := os.Getenv("OUTPUT_FORMAT")
	if outputFormat == "" {
		outputFormat = "json"
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", outputFormat))
	}
}

func collectFromDatabase(ctx context.Context, cfg config.DBConfig) (*stats.Stats, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	repos := repository.NewRepositories(db, cfg.Type)
	return stats.NewCollector(db, cfg, repos.SearchLog).Collect(ctx)
}

func fetchFromAdapter(ctx context.Context, adapterURL string) (*stats.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, adapterURL+"/stats", nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adapter returned status %d", resp.StatusCode)
	}

	var s stats.Stats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding adapter stats: %w", err)
	}
	return &s, nil
}

func printHumanReadable(s *stats.Stats) {
	fmt.Println("=== Restaurant Adapter Statistics ===")
	fmt.Printf("Timestamp: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println()

	fmt.Println("--- Upstream Searches ---")
	fmt.Printf("Total:           %d\n", s.Searches.Total)
	fmt.Printf("Failed:          %d\n", s.Searches.Failed)
	fmt.Printf("Success Rate:    %.1f%%\n", s.Searches.SuccessRate*100)
	for _, k := range s.Searches.ByKind {
		fmt.Printf("  %-8s %6d total  %4d failed  %6.1f avg results  %8.1f ms avg\n",
			k.Kind, k.Total, k.Failed, k.AvgResults, k.AvgDurationMs)
	}
	fmt.Println()

	fmt.Println("--- Search Log Storage ---")
	fmt.Printf("Type:            %s\n", s.Storage.Type)
	fmt.Printf("Persistent:      %t\n", s.Storage.Persistent)
	fmt.Printf("Rows:            %d\n", s.Storage.LogRows)
	if s.Storage.SizeBytes > 0 {
		fmt.Printf("Size:            %s\n", formatBytes(uint64(s.Storage.SizeBytes)))
	}
	fmt.Println()

	fmt.Println("--- Process ---")
	fmt.Printf("Heap In Use:     %s\n", formatBytes(s.Memory.HeapInuse))
	fmt.Printf("Total Allocated: %s\n", formatBytes(s.Memory.TotalAlloc))
	fmt.Printf("GC Cycles:       %d\n", s.Memory.NumGC)
	fmt.Printf("Goroutines:      %d\n", s.Runtime.NumGoroutines)
	fmt.Printf("Go:              %s\n", s.Runtime.GoVersion)
	fmt.Printf("Uptime:          %s\n", time.Duration(s.Runtime.UptimeSeconds)*time.Second)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
