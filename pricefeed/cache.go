package pricefeed

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FloorCache stores the latest floor prices per collection in memory.
type FloorCache struct {
	mu     sync.RWMutex
	floors map[string]float64
}

func NewFloorCache() *FloorCache {
	return &FloorCache{floors: make(map[string]float64)}
}

func (c *FloorCache) Set(collection string, floor float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.floors[collection] = floor
}

func (c *FloorCache) Get(collection string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.floors[collection]
	return f, ok
}

// StartFloorUpdater periodically refreshes floors for the given collections.
func StartFloorUpdater(
	ctx context.Context,
	feed FloorFeed,
	cache *FloorCache,
	collections []string,
	interval time.Duration,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refreshOnce(ctx, feed, cache, collections)

	for {
		select {
		case <-ticker.C:
			refreshOnce(ctx, feed, cache, collections)
		case <-ctx.Done():
			return
		}
	}
}

func refreshOnce(ctx context.Context, feed FloorFeed, cache *FloorCache, collections []string) {
	for _, c := range collections {
		floor, err := feed.GetFloor(ctx, c)
		if err != nil {
			logrus.WithError(err).WithField("collection", c).Warn("floor update failed")
			continue
		}
		cache.Set(c, floor)
		logrus.WithFields(logrus.Fields{"collection": c, "floor": floor}).Info("floor update")
	}
}
