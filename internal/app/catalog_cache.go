package app

import (
	"sort"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/cache"
	"github.com/ShauryaRahlon/Travel-Delite/internal/clock"
	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
)

const (
	allExperiencesKey = "all_experiences"

	listTTL = 10 * time.Minute
	itemTTL = 15 * time.Minute
)

func experienceKey(id string) string {
	return "experience_" + id
}

// CatalogCache is the server-side cache in front of catalog reads. Values
// stored here are shared between requests and must not be mutated.
type CatalogCache struct {
	lists *cache.Cache[[]domain.Experience]
	items *cache.Cache[domain.Experience]
}

func NewCatalogCache(clk clock.Clock) *CatalogCache {
	return &CatalogCache{
		lists: cache.New[[]domain.Experience](clk),
		items: cache.New[domain.Experience](clk),
	}
}

// InvalidateExperience drops the listing and the entry for id.
func (c *CatalogCache) InvalidateExperience(id string) {
	c.lists.Delete(allExperiencesKey)
	c.items.Delete(experienceKey(id))
}

// Clear drops every cached catalog read.
func (c *CatalogCache) Clear() {
	c.lists.Clear()
	c.items.Clear()
}

// Size counts resident entries.
func (c *CatalogCache) Size() int {
	return c.lists.Size() + c.items.Size()
}

// Stats merges entry metadata of both key spaces, sorted by key.
func (c *CatalogCache) Stats() []cache.EntryStats {
	stats := append(c.lists.Stats(), c.items.Stats()...)
	sort.Slice(stats, func(i, j int) bool { return stats[i].Key < stats[j].Key })
	return stats
}
