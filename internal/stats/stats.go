package stats

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alexivanou/restaurant-finder/internal/config"
	"github.com/alexivanou/restaurant-finder/internal/model"
	"github.com/alexivanou/restaurant-finder/internal/repository"
	"github.com/jmoiron/sqlx"
)

// Stats is the adapter health report served at /stats
type Stats struct {
	Timestamp time.Time    `json:"timestamp"`
	Searches  SearchStats  `json:"searches"`
	Storage   StorageStats `json:"storage"`
	Memory    MemoryStats  `json:"memory"`
	Runtime   RuntimeStats `json:"runtime"`
}

// SearchStats summarizes upstream lookups made by the adapter
type SearchStats struct {
	Total       int64                    `json:"total"`
	Failed      int64                    `json:"failed"`
	SuccessRate float64                  `json:"success_rate"`
	ByKind      []model.SearchLogSummary `json:"by_kind"`
}

// StorageStats describes the search log database
type StorageStats struct {
	Type       string `json:"type"`
	LogRows    int64  `json:"log_rows"`
	SizeBytes  int64  `json:"size_bytes"`
	Persistent bool   `json:"persistent"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	HeapInuse  uint64 `json:"heap_inuse"`
	NumGC      uint32 `json:"num_gc"`
}

type RuntimeStats struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// sizeQueries report the whole database size per backend
var sizeQueries = map[config.DBType]string{
	config.DBTypePostgreSQL: "SELECT pg_database_size(current_database())",
	config.DBTypeMemory:     "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()",
}

const memRefreshInterval = 5 * time.Second

// Collector gathers Stats. Memory figures are refreshed at most every
// memRefreshInterval since ReadMemStats stops the world.
type Collector struct {
	db        *sqlx.DB
	dbType    config.DBType
	searchLog repository.SearchLogRepository
	started   time.Time

	memMu     sync.Mutex
	mem       MemoryStats
	memReadAt time.Time
}

func NewCollector(db *sqlx.DB, cfg config.DBConfig, searchLog repository.SearchLogRepository) *Collector {
	return &Collector{
		db:        db,
		dbType:    cfg.Type,
		searchLog: searchLog,
		started:   time.Now(),
	}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	searches, err := c.searchStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting search stats: %w", err)
	}

	storage, err := c.storageStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting storage stats: %w", err)
	}

	return &Stats{
		Timestamp: time.Now(),
		Searches:  searches,
		Storage:   storage,
		Memory:    c.memoryStats(),
		Runtime: RuntimeStats{
			GoVersion:     runtime.Version(),
			NumGoroutines: runtime.NumGoroutine(),
			NumCPU:        runtime.NumCPU(),
			UptimeSeconds: int64(time.Since(c.started).Seconds()),
		},
	}, nil
}

func (c *Collector) searchStats(ctx context.Context) (SearchStats, error) {
	summaries, err := c.searchLog.Summary(ctx)
	if err != nil {
		return SearchStats{}, err
	}

	s := SearchStats{ByKind: summaries}
	for _, k := range summaries {
		s.Total += k.Total
		s.Failed += k.Failed
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Total-s.Failed) / float64(s.Total)
	}
	return s, nil
}

func (c *Collector) storageStats(ctx context.Context) (StorageStats, error) {
	s := StorageStats{
		Type:       string(c.dbType),
		Persistent: c.dbType != config.DBTypeMemory,
	}

	if err := c.db.GetContext(ctx, &s.LogRows, "SELECT COUNT(*) FROM search_log"); err != nil {
		return StorageStats{}, err
	}

	// Size is best effort; not every backend grants access to it.
	if q, ok := sizeQueries[c.dbType]; ok {
		_ = c.db.GetContext(ctx, &s.SizeBytes, q)
	}

	return s, nil
}

func (c *Collector) memoryStats() MemoryStats {
	c.memMu.Lock()
	defer c.memMu.Unlock()

	if !c.memReadAt.IsZero() && time.Since(c.memReadAt) < memRefreshInterval {
		return c.mem
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	c.mem = MemoryStats{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		HeapInuse:  m.HeapInuse,
		NumGC:      m.NumGC,
	}
	c.memReadAt = time.Now()
	return c.mem
}
