package usecase

import (
	"sync"

	"trade_analytics/internal/domain"
	"trade_analytics/internal/metrics"
)

// AllPoints disables trailing truncation in StatisticsCache.Get.
const AllPoints = -1

type cacheEntry struct {
	generation uint64
	series     []domain.Statistics
}

// StatisticsCache holds one immutable statistics series per key. Entries are never evicted;
// a commit replaces the whole series, so readers see either the old or the new one.
//
// Every recompute request takes a generation number when it is submitted. A commit carrying an
// older generation than the one already stored is discarded, which makes the most recently
// requested computation win when same-key recomputes finish out of order. Invalidate raises a
// floor to the latest generation handed out, so recomputes requested before it cannot commit.
type StatisticsCache struct {
	mu          sync.RWMutex
	entries     map[domain.StatisticsKey]cacheEntry
	generations map[domain.StatisticsKey]uint64
	floors      map[domain.StatisticsKey]uint64
}

func NewStatisticsCache() *StatisticsCache {
	return &StatisticsCache{
		entries:     make(map[domain.StatisticsKey]cacheEntry),
		generations: make(map[domain.StatisticsKey]uint64),
		floors:      make(map[domain.StatisticsKey]uint64),
	}
}

// NextGeneration reserves the generation number of a new recompute for key.
func (c *StatisticsCache) NextGeneration(key domain.StatisticsKey) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[key]++
	return c.generations[key]
}

// Commit stores series for key unless a newer generation is already committed or the generation
// was requested before the last Invalidate of the report. It reports whether the series was stored.
func (c *StatisticsCache) Commit(key domain.StatisticsKey, generation uint64, series []domain.Statistics) bool {
	stored := append([]domain.Statistics(nil), series...)

	c.mu.Lock()
	current, ok := c.entries[key]
	if (ok && current.generation > generation) || generation <= c.floors[key] {
		c.mu.Unlock()
		return false
	}
	c.entries[key] = cacheEntry{generation: generation, series: stored}
	n := len(c.entries)
	c.mu.Unlock()

	metrics.SetCachedSeries(n)
	return true
}

// Get returns a copy of the trailing maxPoints rows for key, or all rows when maxPoints is
// negative or larger than the series. A key never committed yields an empty slice.
func (c *StatisticsCache) Get(key domain.StatisticsKey, maxPoints int) []domain.Statistics {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return []domain.Statistics{}
	}

	size := len(entry.series)
	if maxPoints < 0 || maxPoints > size {
		maxPoints = size
	}
	out := make([]domain.Statistics, maxPoints)
	copy(out, entry.series[size-maxPoints:])
	return out
}

// Invalidate drops every series cached for the report and returns how many were removed.
// Recomputes of the report still in flight will not store their result.
func (c *StatisticsCache) Invalidate(reportID int64) int {
	c.mu.Lock()
	for key, generation := range c.generations {
		if key.ReportID == reportID {
			c.floors[key] = generation
		}
	}
	removed := 0
	for key := range c.entries {
		if key.ReportID == reportID {
			delete(c.entries, key)
			removed++
		}
	}
	n := len(c.entries)
	c.mu.Unlock()

	metrics.SetCachedSeries(n)
	return removed
}

func (c *StatisticsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
