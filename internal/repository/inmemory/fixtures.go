package inmemory

import (
	"time"

	subsdomain "mooney-app-go/internal/domain/subscriptions"

	"github.com/google/uuid"
)

// Seed loads a small ledger for one owner so the service is usable with the
// in-memory store straight away: one overdue, two upcoming and one recently
// completed subscription across two categories.
func (r *SubscriptionsRepository) Seed(ownerID string) {
	today := subsdomain.Day(time.Now())

	media := subsdomain.Category{ID: uuid.NewString(), OwnerID: ownerID, Name: "Media"}
	mediaColor := "#e50914"
	media.Color = &mediaColor

	cloud := subsdomain.Category{ID: uuid.NewString(), OwnerID: ownerID, Name: "Cloud"}
	cloudColor := "#4285f4"
	cloud.Color = &cloudColor

	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCategoryLocked(&media)
	r.createCategoryLocked(&cloud)

	for _, record := range []subsdomain.Record{
		seedRecord(ownerID, "Netflix", 17000, media.ID, subsdomain.StatusOverdue, today.AddDate(0, 0, -2), nil),
		seedRecord(ownerID, "Spotify", 10900, media.ID, subsdomain.StatusPending, today.AddDate(0, 0, 1), nil),
		seedRecord(ownerID, "Drive", 2900, cloud.ID, subsdomain.StatusPending, today.AddDate(0, 0, 20), nil),
		seedRecord(ownerID, "Gym", 50000, cloud.ID, subsdomain.StatusCompleted, time.Time{}, datePtr(today.AddDate(0, 0, -1))),
	} {
		record := record
		r.createRecordLocked(&record)
	}
}

func seedRecord(ownerID, description string, amount int64, categoryID string, status subsdomain.RecordStatus, due time.Time, actual *time.Time) subsdomain.Record {
	record := subsdomain.Record{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Amount:      amount,
		Description: description,
		Type:        subsdomain.TypeExpense,
		IsRecurring: true,
		Status:      status,
		CategoryID:  categoryID,
		ActualDate:  actual,
	}
	if !due.IsZero() {
		d := subsdomain.Day(due)
		record.DueDate = &d
	}
	return record
}

func datePtr(t time.Time) *time.Time {
	d := subsdomain.Day(t)
	return &d
}
