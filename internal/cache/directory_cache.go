package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/anya-ship-it/cybermentor-platform/internal/models"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DirectorySource feeds the cache with approved mentors
type DirectorySource interface {
	ListByStatus(ctx context.Context, status models.MentorStatus) ([]*models.Mentor, error)
}

const (
	mentorKeyPrefix  = "directory:mentor:"
	directoryListKey = "directory:all"
	cacheCheckPeriod = 10 * time.Second
)

// DirectoryCache holds the approved-mentor directory in memory. Entries are
// keyed by mentor ID; the ID list carries the TTL and controls expiry.
type DirectoryCache struct {
	cache      *gocache.Cache
	source     DirectorySource
	mu         sync.RWMutex
	refreshing bool
	ready      bool
	ttl        time.Duration
}

// NewDirectoryCache creates a directory cache over the given source
func NewDirectoryCache(source DirectorySource, ttlSeconds int) *DirectoryCache {
	return &DirectoryCache{
		cache:  gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		source: source,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Initialize performs the initial population (synchronous, blocks until ready)
// and starts the background refresh scheduler.
func (dc *DirectoryCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing directory cache...")
	startTime := time.Now()

	if err := dc.refresh(ctx); err != nil {
		logger.Error("Failed to initialize directory cache", zap.Error(err))
		return err
	}

	dc.mu.Lock()
	dc.ready = true
	dc.mu.Unlock()

	logger.Info("Directory cache initialized successfully",
		zap.Duration("duration", time.Since(startTime)))

	go dc.schedulePeriodicRefresh()

	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (dc *DirectoryCache) IsReady() bool {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.ready
}

// GetByID retrieves a single approved mentor without touching the database
func (dc *DirectoryCache) GetByID(id int64) (*models.Mentor, error) {
	if !dc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	key := mentorKeyPrefix + strconv.FormatInt(id, 10)

	data, found := dc.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues("directory_by_id").Inc()
		return nil, fmt.Errorf("mentor not found")
	}

	metrics.CacheHits.WithLabelValues("directory_by_id").Inc()

	mentor, ok := data.(*models.Mentor)
	if !ok {
		logger.Error("Invalid cache data type", zap.Int64("mentor_id", id))
		dc.cache.Delete(key)
		return nil, fmt.Errorf("invalid cache data")
	}

	return mentor, nil
}

// Get retrieves all approved mentors from the cache. On list expiry it
// returns empty rather than blocking on a database read.
func (dc *DirectoryCache) Get() ([]*models.Mentor, error) {
	if !dc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	idsData, found := dc.cache.Get(directoryListKey)
	if !found {
		metrics.CacheMisses.WithLabelValues("directory_all").Inc()
		logger.Warn("Directory list not in cache (expired), returning empty")
		return []*models.Mentor{}, nil
	}

	ids, ok := idsData.([]int64)
	if !ok {
		logger.Error("Invalid cache data type for directory list")
		return []*models.Mentor{}, nil
	}

	metrics.CacheHits.WithLabelValues("directory_all").Inc()

	mentors := make([]*models.Mentor, 0, len(ids))
	for _, id := range ids {
		mentor, err := dc.GetByID(id)
		if err != nil {
			continue
		}
		mentors = append(mentors, mentor)
	}

	return mentors, nil
}

// Invalidate triggers a background refresh after a moderation decision
// changes the approved set.
func (dc *DirectoryCache) Invalidate() {
	go func() {
		if err := dc.refreshInBackground(); err != nil {
			logger.Error("Directory cache invalidation refresh failed", zap.Error(err))
		}
	}()
}

func (dc *DirectoryCache) schedulePeriodicRefresh() {
	ticker := time.NewTicker(dc.ttl)
	defer ticker.Stop()

	for range ticker.C {
		if err := dc.refreshInBackground(); err != nil {
			logger.Error("Scheduled directory cache refresh failed", zap.Error(err))
		}
	}
}

func (dc *DirectoryCache) refreshInBackground() error {
	dc.mu.Lock()
	if dc.refreshing {
		dc.mu.Unlock()
		logger.Debug("Directory refresh already in progress, skipping")
		return nil
	}
	dc.refreshing = true
	dc.mu.Unlock()

	defer func() {
		dc.mu.Lock()
		dc.refreshing = false
		dc.mu.Unlock()
	}()

	return dc.refresh(context.Background())
}

func (dc *DirectoryCache) refresh(ctx context.Context) error {
	startTime := time.Now()

	mentors, err := dc.source.ListByStatus(ctx, models.MentorStatusApproved)
	if err != nil {
		return fmt.Errorf("failed to load approved mentors: %w", err)
	}

	ids := make([]int64, 0, len(mentors))
	for _, mentor := range mentors {
		key := mentorKeyPrefix + strconv.FormatInt(mentor.ID, 10)
		// Entries never expire individually; the list TTL controls expiry
		dc.cache.Set(key, mentor, gocache.NoExpiration)
		ids = append(ids, mentor.ID)
	}

	dc.cache.Set(directoryListKey, ids, dc.ttl)
	metrics.CacheSize.WithLabelValues("directory").Set(float64(len(mentors)))

	logger.Info("Directory cache refreshed",
		zap.Int("count", len(mentors)),
		zap.Duration("duration", time.Since(startTime)))

	return nil
}

// Clear clears the entire cache
func (dc *DirectoryCache) Clear() {
	dc.cache.Flush()
	logger.Info("Directory cache cleared")
}
