package subscriptions

import "time"

// CategoriesCache is a read-through cache for an owner's category list. Only
// the category list is cached; pending/completed views and their totals are
// always recomputed from the record set.
type CategoriesCache interface {
	GetByOwnerID(ownerID string) ([]Category, bool)
	SetByOwnerID(ownerID string, categories []Category, ttl time.Duration)
	DeleteByOwnerID(ownerID string)
}

type noopCategoriesCache struct{}

func (noopCategoriesCache) GetByOwnerID(string) ([]Category, bool) { return nil, false }

func (noopCategoriesCache) SetByOwnerID(string, []Category, time.Duration) {}

func (noopCategoriesCache) DeleteByOwnerID(string) {}
