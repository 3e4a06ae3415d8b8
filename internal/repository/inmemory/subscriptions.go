package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	subsdomain "mooney-app-go/internal/domain/subscriptions"
)

// SubscriptionsRepository is an in-memory implementation of the subscriptions
// store. It backs the service when no database is configured, playing the
// role the mock API module played in the original client: same call surface,
// fixture data, no persistence beyond process lifetime.
type SubscriptionsRepository struct {
	mu         sync.RWMutex
	records    map[string]subsdomain.Record
	categories map[string]subsdomain.Category
}

func NewSubscriptionsRepository() *SubscriptionsRepository {
	return &SubscriptionsRepository{
		records:    make(map[string]subsdomain.Record),
		categories: make(map[string]subsdomain.Category),
	}
}

// Transaction runs fn under the repository write lock. Single-process store,
// so lock scope is the whole transaction.
func (r *SubscriptionsRepository) Transaction(ctx context.Context, fn func(subsdomain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&lockedRepository{repo: r})
}

func (r *SubscriptionsRepository) ListRecords(ctx context.Context, ownerID string) ([]subsdomain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listRecordsLocked(ownerID), nil
}

func (r *SubscriptionsRepository) listRecordsLocked(ownerID string) []subsdomain.Record {
	items := make([]subsdomain.Record, 0)
	for _, record := range r.records {
		if record.OwnerID == ownerID {
			items = append(items, record)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (r *SubscriptionsRepository) GetRecordByID(ctx context.Context, ownerID, recordID string) (*subsdomain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getRecordLocked(ownerID, recordID)
}

func (r *SubscriptionsRepository) getRecordLocked(ownerID, recordID string) (*subsdomain.Record, error) {
	record, ok := r.records[recordID]
	if !ok || record.OwnerID != ownerID {
		return nil, subsdomain.ErrRecordNotFound
	}
	return &record, nil
}

func (r *SubscriptionsRepository) CreateRecord(ctx context.Context, record *subsdomain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createRecordLocked(record)
	return nil
}

func (r *SubscriptionsRepository) createRecordLocked(record *subsdomain.Record) {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	r.records[record.ID] = *record
}

func (r *SubscriptionsRepository) UpdateRecord(ctx context.Context, record *subsdomain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateRecordLocked(record)
}

func (r *SubscriptionsRepository) updateRecordLocked(record *subsdomain.Record) error {
	if _, ok := r.records[record.ID]; !ok {
		return subsdomain.ErrRecordNotFound
	}
	r.records[record.ID] = *record
	return nil
}

func (r *SubscriptionsRepository) DeleteRecord(ctx context.Context, ownerID, recordID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteRecordLocked(ownerID, recordID), nil
}

func (r *SubscriptionsRepository) deleteRecordLocked(ownerID, recordID string) bool {
	record, ok := r.records[recordID]
	if !ok || record.OwnerID != ownerID {
		return false
	}
	delete(r.records, recordID)
	return true
}

func (r *SubscriptionsRepository) MarkOverdue(ctx context.Context, ownerID string, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markOverdueLocked(ownerID, before), nil
}

func (r *SubscriptionsRepository) markOverdueLocked(ownerID string, before time.Time) int64 {
	var marked int64
	for id, record := range r.records {
		if record.OwnerID != ownerID || record.Status != subsdomain.StatusPending || record.DueDate == nil {
			continue
		}
		if record.DueDate.Before(before) {
			record.Status = subsdomain.StatusOverdue
			record.UpdatedAt = time.Now().UTC()
			r.records[id] = record
			marked++
		}
	}
	return marked
}

func (r *SubscriptionsRepository) ListCategories(ctx context.Context, ownerID string) ([]subsdomain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listCategoriesLocked(ownerID), nil
}

func (r *SubscriptionsRepository) listCategoriesLocked(ownerID string) []subsdomain.Category {
	items := make([]subsdomain.Category, 0)
	for _, category := range r.categories {
		if category.OwnerID == ownerID {
			items = append(items, category)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

func (r *SubscriptionsRepository) GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*subsdomain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getCategoryLocked(ownerID, categoryID)
}

func (r *SubscriptionsRepository) getCategoryLocked(ownerID, categoryID string) (*subsdomain.Category, error) {
	category, ok := r.categories[categoryID]
	if !ok || category.OwnerID != ownerID {
		return nil, subsdomain.ErrCategoryNotFound
	}
	return &category, nil
}

func (r *SubscriptionsRepository) CreateCategory(ctx context.Context, category *subsdomain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCategoryLocked(category)
	return nil
}

func (r *SubscriptionsRepository) createCategoryLocked(category *subsdomain.Category) {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	r.categories[category.ID] = *category
}

func (r *SubscriptionsRepository) UpdateCategory(ctx context.Context, category *subsdomain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateCategoryLocked(category)
}

func (r *SubscriptionsRepository) updateCategoryLocked(category *subsdomain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return subsdomain.ErrCategoryNotFound
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *SubscriptionsRepository) CountCategoriesByName(ctx context.Context, ownerID, name, excludeID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countCategoriesByNameLocked(ownerID, name, excludeID), nil
}

func (r *SubscriptionsRepository) countCategoriesByNameLocked(ownerID, name, excludeID string) int64 {
	var count int64
	for _, category := range r.categories {
		if category.OwnerID == ownerID && category.ID != excludeID && strings.EqualFold(category.Name, name) {
			count++
		}
	}
	return count
}

func (r *SubscriptionsRepository) DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteCategoryLocked(ownerID, categoryID), nil
}

func (r *SubscriptionsRepository) deleteCategoryLocked(ownerID, categoryID string) bool {
	category, ok := r.categories[categoryID]
	if !ok || category.OwnerID != ownerID {
		return false
	}
	delete(r.categories, categoryID)
	return true
}

func (r *SubscriptionsRepository) CountRecordsByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countRecordsByCategoryLocked(categoryID), nil
}

func (r *SubscriptionsRepository) countRecordsByCategoryLocked(categoryID string) int64 {
	var count int64
	for _, record := range r.records {
		if record.CategoryID == categoryID {
			count++
		}
	}
	return count
}

// lockedRepository serves calls made inside a Transaction callback without
// re-acquiring the mutex the transaction already holds.
type lockedRepository struct {
	repo *SubscriptionsRepository
}

func (l *lockedRepository) Transaction(ctx context.Context, fn func(subsdomain.Repository) error) error {
	return fn(l)
}

func (l *lockedRepository) ListRecords(ctx context.Context, ownerID string) ([]subsdomain.Record, error) {
	return l.repo.listRecordsLocked(ownerID), nil
}

func (l *lockedRepository) GetRecordByID(ctx context.Context, ownerID, recordID string) (*subsdomain.Record, error) {
	return l.repo.getRecordLocked(ownerID, recordID)
}

func (l *lockedRepository) CreateRecord(ctx context.Context, record *subsdomain.Record) error {
	l.repo.createRecordLocked(record)
	return nil
}

func (l *lockedRepository) UpdateRecord(ctx context.Context, record *subsdomain.Record) error {
	return l.repo.updateRecordLocked(record)
}

func (l *lockedRepository) DeleteRecord(ctx context.Context, ownerID, recordID string) (bool, error) {
	return l.repo.deleteRecordLocked(ownerID, recordID), nil
}

func (l *lockedRepository) MarkOverdue(ctx context.Context, ownerID string, before time.Time) (int64, error) {
	return l.repo.markOverdueLocked(ownerID, before), nil
}

func (l *lockedRepository) ListCategories(ctx context.Context, ownerID string) ([]subsdomain.Category, error) {
	return l.repo.listCategoriesLocked(ownerID), nil
}

func (l *lockedRepository) GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*subsdomain.Category, error) {
	return l.repo.getCategoryLocked(ownerID, categoryID)
}

func (l *lockedRepository) CreateCategory(ctx context.Context, category *subsdomain.Category) error {
	l.repo.createCategoryLocked(category)
	return nil
}

func (l *lockedRepository) UpdateCategory(ctx context.Context, category *subsdomain.Category) error {
	return l.repo.updateCategoryLocked(category)
}

func (l *lockedRepository) CountCategoriesByName(ctx context.Context, ownerID, name, excludeID string) (int64, error) {
	return l.repo.countCategoriesByNameLocked(ownerID, name, excludeID), nil
}

func (l *lockedRepository) DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error) {
	return l.repo.deleteCategoryLocked(ownerID, categoryID), nil
}

func (l *lockedRepository) CountRecordsByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	return l.repo.countRecordsByCategoryLocked(categoryID), nil
}
