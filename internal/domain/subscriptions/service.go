package subscriptions

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

type Options struct {
	// Locale drives collation for SortByNameAsc ordering. Zero value means
	// English.
	Locale language.Tag

	Cache              CategoriesCache
	CategoriesCacheTTL time.Duration
}

type Service struct {
	repo     Repository
	locale   language.Tag
	cache    CategoriesCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithOptions(repo, Options{})
}

func NewServiceWithOptions(repo Repository, opts Options) *Service {
	locale := opts.Locale
	if locale == language.Und {
		locale = language.English
	}

	cache := opts.Cache
	if cache == nil {
		cache = noopCategoriesCache{}
	}

	return &Service{
		repo:     repo,
		locale:   locale,
		cache:    cache,
		cacheTTL: opts.CategoriesCacheTTL,
		now:      time.Now,
	}
}

// PendingPayments builds the "to pay" view for an owner: sweep the
// pending-to-overdue transition for anything whose due date has passed, then
// classify, filter, sort and total the current record set.
func (s *Service) PendingPayments(ctx context.Context, ownerID string, today time.Time, mode FilterMode, key SortKey) (PendingView, error) {
	day := Day(today)

	if _, err := s.repo.MarkOverdue(ctx, ownerID, day); err != nil {
		return PendingView{}, err
	}

	records, err := s.repo.ListRecords(ctx, ownerID)
	if err != nil {
		return PendingView{}, err
	}

	pending := SelectPending(records, day)
	filtered := ApplyPendingFilter(pending, mode, day)
	ordered := SortPending(filtered, key, s.locale)

	items := make([]PendingItem, 0, len(ordered))
	for _, r := range ordered {
		items = append(items, PendingItem{Record: r, Due: DueStatusOf(r, day)})
	}

	return PendingView{
		Items:        items,
		TotalAmount:  TotalAmount(ordered),
		OverdueCount: OverdueCount(ordered),
	}, nil
}

// CompletedPayments builds the "recently paid" view: the owner's completions
// of the last three days plus per-category totals for the chart.
func (s *Service) CompletedPayments(ctx context.Context, ownerID string, today time.Time) (CompletedView, error) {
	records, err := s.repo.ListRecords(ctx, ownerID)
	if err != nil {
		return CompletedView{}, err
	}

	completed := SelectCompleted(records, today, ownerID)

	categories, err := s.listCategoriesCached(ctx, ownerID)
	if err != nil {
		return CompletedView{}, err
	}

	return CompletedView{
		Items:          completed,
		TotalAmount:    TotalAmount(completed),
		CategoryTotals: CategoryTotals(completed, categories),
	}, nil
}

// ListRecords returns the owner's recurring expense ledger without any view
// windowing applied.
func (s *Service) ListRecords(ctx context.Context, ownerID string) ([]Record, error) {
	records, err := s.repo.ListRecords(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.IsRecurring && r.Type == TypeExpense {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) CreateRecord(ctx context.Context, input CreateRecordInput) (*Record, error) {
	if err := validateRecordInput(input.Description, input.Amount, input.DueDate); err != nil {
		return nil, err
	}

	due := Day(input.DueDate)
	status := StatusPending
	if due.Before(Day(s.now())) {
		status = StatusOverdue
	}

	record := Record{
		ID:          uuid.NewString(),
		OwnerID:     input.OwnerID,
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		Type:        TypeExpense,
		IsRecurring: true,
		Status:      status,
		DueDate:     &due,
		CategoryID:  input.CategoryID,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCategoryByID(ctx, input.OwnerID, input.CategoryID); err != nil {
			return err
		}
		return tx.CreateRecord(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *Service) UpdateRecord(ctx context.Context, input UpdateRecordInput) (*Record, error) {
	if err := validateRecordInput(input.Description, input.Amount, input.DueDate); err != nil {
		return nil, err
	}

	var updated Record
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCategoryByID(ctx, input.OwnerID, input.CategoryID); err != nil {
			return err
		}

		record, err := tx.GetRecordByID(ctx, input.OwnerID, input.ID)
		if err != nil {
			return err
		}
		if record.Status == StatusCompleted {
			return ErrRecordNotPayable
		}

		due := Day(input.DueDate)
		record.Amount = input.Amount
		record.Description = strings.TrimSpace(input.Description)
		record.DueDate = &due
		record.CategoryID = input.CategoryID
		if due.Before(Day(s.now())) {
			record.Status = StatusOverdue
		} else {
			record.Status = StatusPending
		}
		record.UpdatedAt = time.Now().UTC()

		if err := tx.UpdateRecord(ctx, record); err != nil {
			return err
		}

		updated = *record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteRecord removes exactly one record by id; completing siblings are
// untouched (no cascade).
func (s *Service) DeleteRecord(ctx context.Context, ownerID, recordID string) error {
	deleted, err := s.repo.DeleteRecord(ctx, ownerID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}
	return nil
}

// CompletePayment marks one unpaid occurrence as completed and, in the same
// transaction, creates its sibling for the following month: a new pending
// record with the due date advanced one calendar month and the same
// amount/description/category.
func (s *Service) CompletePayment(ctx context.Context, ownerID, recordID string, completionDate time.Time) (*CompletionResult, error) {
	var result CompletionResult

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		record, err := tx.GetRecordByID(ctx, ownerID, recordID)
		if err != nil {
			return err
		}
		if !record.IsRecurring || record.DueDate == nil {
			return ErrRecordNotPayable
		}
		if record.Status != StatusPending && record.Status != StatusOverdue {
			return ErrRecordNotPayable
		}

		nextDue := NextMonth(*record.DueDate)
		actual := Day(completionDate)

		record.Status = StatusCompleted
		record.ActualDate = &actual
		record.DueDate = nil
		record.UpdatedAt = time.Now().UTC()
		if err := tx.UpdateRecord(ctx, record); err != nil {
			return err
		}

		next := Record{
			ID:          uuid.NewString(),
			OwnerID:     record.OwnerID,
			Amount:      record.Amount,
			Description: record.Description,
			Type:        record.Type,
			IsRecurring: true,
			Status:      StatusPending,
			DueDate:     &nextDue,
			CategoryID:  record.CategoryID,
		}
		if err := tx.CreateRecord(ctx, &next); err != nil {
			return err
		}

		result = CompletionResult{Completed: *record, NextPending: next}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) ListCategories(ctx context.Context, ownerID string) ([]Category, error) {
	return s.listCategoriesCached(ctx, ownerID)
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}

	color, err := normalizeCategoryColor(input.Color)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.OwnerID, name, "")
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category := Category{
		ID:      uuid.NewString(),
		OwnerID: input.OwnerID,
		Name:    name,
		Color:   color,
	}

	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}

	s.cache.DeleteByOwnerID(input.OwnerID)
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.GetCategoryByID(ctx, input.OwnerID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.OwnerID, name, category.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category.Name = name
	if input.Color.Set {
		color, err := normalizeCategoryColor(input.Color.Value)
		if err != nil {
			return nil, err
		}
		category.Color = color
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.cache.DeleteByOwnerID(input.OwnerID)
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	inUse, err := s.repo.CountRecordsByCategoryID(ctx, categoryID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	deleted, err := s.repo.DeleteCategory(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	s.cache.DeleteByOwnerID(ownerID)
	return nil
}

func (s *Service) listCategoriesCached(ctx context.Context, ownerID string) ([]Category, error) {
	if s.cacheTTL > 0 {
		if categories, ok := s.cache.GetByOwnerID(ownerID); ok {
			return categories, nil
		}
	}

	categories, err := s.repo.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 {
		s.cache.SetByOwnerID(ownerID, categories, s.cacheTTL)
	}
	return categories, nil
}

func validateRecordInput(description string, amount int64, dueDate time.Time) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description is required")
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if dueDate.IsZero() {
		return fmt.Errorf("due date is required")
	}
	return nil
}

func validateCategoryName(name string) (string, error) {
	const maxLen = 50
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	if len([]rune(name)) > maxLen {
		return "", fmt.Errorf("name must be at most %d characters", maxLen)
	}
	return name, nil
}

var categoryColorRegex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func normalizeCategoryColor(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	color := strings.ToLower(strings.TrimSpace(*value))
	if !categoryColorRegex.MatchString(color) {
		return nil, ErrInvalidCategoryColor
	}

	return &color, nil
}
