package subscriptions

import "time"

type RecordType string

const (
	TypeIncome  RecordType = "income"
	TypeExpense RecordType = "expense"
)

type RecordStatus string

const (
	StatusPending   RecordStatus = "pending"
	StatusOverdue   RecordStatus = "overdue"
	StatusCompleted RecordStatus = "completed"
)

// Record is one row of the expense/subscription ledger. DueDate is set while
// the occurrence is unpaid; ActualDate is set exactly once, when it completes.
type Record struct {
	ID          string       `gorm:"type:uuid;primaryKey"`
	OwnerID     string       `gorm:"type:uuid;index;not null"`
	Amount      int64        `gorm:"not null"`
	Description string       `gorm:"not null"`
	Type        RecordType   `gorm:"size:16;not null"`
	IsRecurring bool         `gorm:"not null"`
	Status      RecordStatus `gorm:"size:16;index;not null"`
	DueDate     *time.Time   `gorm:"type:date"`
	ActualDate  *time.Time   `gorm:"type:date"`
	CategoryID  string       `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime"`
}

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OwnerID   string    `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Color     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type Severity string

const (
	SeverityOverdue  Severity = "overdue"
	SeverityDueToday Severity = "due_today"
	SeverityDueSoon  Severity = "due_soon"
	SeverityDueLater Severity = "due_later"
)

// DueStatus is derived per record at read time, never persisted.
type DueStatus struct {
	Severity  Severity
	DaysDelta int
	Label     string
}

type FilterMode string

const (
	FilterAll            FilterMode = "all"
	FilterThreeDayWindow FilterMode = "3days"
)

type SortKey string

const (
	SortByDueDate    SortKey = "due"
	SortByAmountDesc SortKey = "amount"
	SortByNameAsc    SortKey = "name"
)

type PendingItem struct {
	Record
	Due DueStatus
}

type PendingView struct {
	Items        []PendingItem
	TotalAmount  int64
	OverdueCount int
}

type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      *string
	Amount     int64
}

type CompletedView struct {
	Items          []Record
	TotalAmount    int64
	CategoryTotals []CategoryTotal
}

type CreateRecordInput struct {
	OwnerID     string
	Amount      int64
	Description string
	DueDate     time.Time
	CategoryID  string
}

type UpdateRecordInput struct {
	ID          string
	OwnerID     string
	Amount      int64
	Description string
	DueDate     time.Time
	CategoryID  string
}

// CompletionResult is what a completed payment produces: the occurrence that
// was just paid and the sibling created for the following month.
type CompletionResult struct {
	Completed   Record
	NextPending Record
}

type CreateCategoryInput struct {
	OwnerID string
	Name    string
	Color   *string
}

type OptionalNullableString struct {
	Set   bool
	Value *string
}

type UpdateCategoryInput struct {
	OwnerID    string
	CategoryID string
	Name       string
	Color      OptionalNullableString
}
