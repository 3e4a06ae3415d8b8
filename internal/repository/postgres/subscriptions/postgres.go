package subscriptions

import (
	"context"
	"errors"
	"time"

	subsdomain "mooney-app-go/internal/domain/subscriptions"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(subsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListRecords(ctx context.Context, ownerID string) ([]subsdomain.Record, error) {
	var items []subsdomain.Record
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("due_date asc, created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetRecordByID(ctx context.Context, ownerID, recordID string) (*subsdomain.Record, error) {
	var record subsdomain.Record
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, recordID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subsdomain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) CreateRecord(ctx context.Context, record *subsdomain.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) UpdateRecord(ctx context.Context, record *subsdomain.Record) error {
	return r.db.WithContext(ctx).
		Model(&subsdomain.Record{}).
		Where("id = ? AND owner_id = ?", record.ID, record.OwnerID).
		Updates(map[string]interface{}{
			"amount":      record.Amount,
			"description": record.Description,
			"status":      record.Status,
			"due_date":    record.DueDate,
			"actual_date": record.ActualDate,
			"category_id": record.CategoryID,
			"updated_at":  record.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteRecord(ctx context.Context, ownerID, recordID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&subsdomain.Record{}, "owner_id = ? AND id = ?", ownerID, recordID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) MarkOverdue(ctx context.Context, ownerID string, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&subsdomain.Record{}).
		Where("owner_id = ? AND status = ? AND due_date < ?", ownerID, subsdomain.StatusPending, before).
		Updates(map[string]interface{}{
			"status":     subsdomain.StatusOverdue,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) ListCategories(ctx context.Context, ownerID string) ([]subsdomain.Category, error) {
	var items []subsdomain.Category
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*subsdomain.Category, error) {
	var category subsdomain.Category
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subsdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *subsdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *subsdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&subsdomain.Category{}).
		Where("id = ? AND owner_id = ?", category.ID, category.OwnerID).
		Updates(map[string]interface{}{
			"name":  category.Name,
			"color": category.Color,
		}).Error
}

func (r *PostgresRepository) CountCategoriesByName(ctx context.Context, ownerID, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&subsdomain.Category{}).
		Where("owner_id = ? AND lower(name) = lower(?)", ownerID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&subsdomain.Category{}, "owner_id = ? AND id = ?", ownerID, categoryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountRecordsByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&subsdomain.Record{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
