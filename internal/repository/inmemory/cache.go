package inmemory

import (
	"sync"
	"time"

	subsdomain "mooney-app-go/internal/domain/subscriptions"
)

// CategoriesCache is a TTL cache over an owner's category list.
type CategoriesCache struct {
	mu    sync.RWMutex
	items map[string]categoriesItem
}

type categoriesItem struct {
	value     []subsdomain.Category
	expiresAt time.Time
}

func NewCategoriesCache() *CategoriesCache {
	return &CategoriesCache{
		items: make(map[string]categoriesItem),
	}
}

func (c *CategoriesCache) GetByOwnerID(ownerID string) ([]subsdomain.Category, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[ownerID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[ownerID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, ownerID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(item.value), true
}

func (c *CategoriesCache) SetByOwnerID(ownerID string, categories []subsdomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByOwnerID(ownerID)
		return
	}

	c.mu.Lock()
	c.items[ownerID] = categoriesItem{
		value:     cloneCategories(categories),
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *CategoriesCache) DeleteByOwnerID(ownerID string) {
	c.mu.Lock()
	delete(c.items, ownerID)
	c.mu.Unlock()
}

func cloneCategories(categories []subsdomain.Category) []subsdomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]subsdomain.Category, len(categories))
	for i := range categories {
		cloned[i] = categories[i]
		if categories[i].Color != nil {
			color := *categories[i].Color
			cloned[i].Color = &color
		}
	}
	return cloned
}
