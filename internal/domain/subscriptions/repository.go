package subscriptions

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListRecords(ctx context.Context, ownerID string) ([]Record, error)
	GetRecordByID(ctx context.Context, ownerID, recordID string) (*Record, error)
	CreateRecord(ctx context.Context, record *Record) error
	UpdateRecord(ctx context.Context, record *Record) error
	DeleteRecord(ctx context.Context, ownerID, recordID string) (bool, error)
	MarkOverdue(ctx context.Context, ownerID string, before time.Time) (int64, error)
	ListCategories(ctx context.Context, ownerID string) ([]Category, error)
	GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	CountCategoriesByName(ctx context.Context, ownerID, name, excludeID string) (int64, error)
	DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error)
	CountRecordsByCategoryID(ctx context.Context, categoryID string) (int64, error)
}
