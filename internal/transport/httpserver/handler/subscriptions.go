package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	subsdomain "mooney-app-go/internal/domain/subscriptions"
	"mooney-app-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

type recordRequest struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	DueDate     string `json:"due_date"`
	CategoryID  string `json:"category_id"`
}

type completeRequest struct {
	CompletionDate string `json:"completion_date"`
}

type recordResponse struct {
	ID          string  `json:"id"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	ActualDate  *string `json:"actual_date"`
	CategoryID  string  `json:"category_id"`
}

type dueStatusResponse struct {
	Severity  string `json:"severity"`
	DaysDelta int    `json:"days_delta"`
	Label     string `json:"label"`
}

type pendingItemResponse struct {
	recordResponse
	Due dueStatusResponse `json:"due"`
}

type pendingViewResponse struct {
	Items        []pendingItemResponse `json:"items"`
	TotalAmount  int64                 `json:"total_amount"`
	OverdueCount int                   `json:"overdue_count"`
}

type categoryTotalResponse struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Color      *string `json:"color"`
	Amount     int64   `json:"amount"`
}

type completedViewResponse struct {
	Items          []recordResponse        `json:"items"`
	TotalAmount    int64                   `json:"total_amount"`
	CategoryTotals []categoryTotalResponse `json:"category_totals"`
}

type completionResponse struct {
	Completed   recordResponse `json:"completed"`
	NextPending recordResponse `json:"next_pending"`
}

func (h *Handlers) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	records, err := h.Subscriptions.ListRecords(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("subscriptions.list: list records failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]recordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toRecordResponse(record))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) PendingPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	today, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	mode, err := parseFilterMode(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "filter must be all or 3days")
		return
	}

	key, err := parseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "sort must be due, amount or name")
		return
	}

	view, err := h.Subscriptions.PendingPayments(r.Context(), user.ID, today, mode, key)
	if err != nil {
		h.log.InternalError("subscriptions.pending: build view failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]pendingItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, pendingItemResponse{
			recordResponse: toRecordResponse(item.Record),
			Due: dueStatusResponse{
				Severity:  string(item.Due.Severity),
				DaysDelta: item.Due.DaysDelta,
				Label:     item.Due.Label,
			},
		})
	}

	writeJSON(w, http.StatusOK, pendingViewResponse{
		Items:        items,
		TotalAmount:  view.TotalAmount,
		OverdueCount: view.OverdueCount,
	})
}

func (h *Handlers) CompletedPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	today, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	view, err := h.Subscriptions.CompletedPayments(r.Context(), user.ID, today)
	if err != nil {
		h.log.InternalError("subscriptions.completed: build view failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]recordResponse, 0, len(view.Items))
	for _, record := range view.Items {
		items = append(items, toRecordResponse(record))
	}

	totals := make([]categoryTotalResponse, 0, len(view.CategoryTotals))
	for _, total := range view.CategoryTotals {
		totals = append(totals, categoryTotalResponse{
			CategoryID: total.CategoryID,
			Name:       total.Name,
			Color:      total.Color,
			Amount:     total.Amount,
		})
	}

	writeJSON(w, http.StatusOK, completedViewResponse{
		Items:          items,
		TotalAmount:    view.TotalAmount,
		CategoryTotals: totals,
	})
}

func (h *Handlers) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input, ok := h.recordInput(w, req)
	if !ok {
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	created, err := h.Subscriptions.CreateRecord(r.Context(), subsdomain.CreateRecordInput{
		OwnerID:     user.ID,
		Amount:      input.Amount,
		Description: input.Description,
		DueDate:     input.DueDate,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, subsdomain.ErrCategoryNotFound) {
			h.log.BusinessError("subscriptions.create: category not found", err, "user_id", user.ID, "category_id", input.CategoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
			return
		}
		h.log.InternalError("subscriptions.create: create record failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(*created))
}

func (h *Handlers) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	recordID := strings.TrimSpace(chi.URLParam(r, "id"))
	if recordID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	var req recordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input, ok := h.recordInput(w, req)
	if !ok {
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	updated, err := h.Subscriptions.UpdateRecord(r.Context(), subsdomain.UpdateRecordInput{
		ID:          recordID,
		OwnerID:     user.ID,
		Amount:      input.Amount,
		Description: input.Description,
		DueDate:     input.DueDate,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, subsdomain.ErrRecordNotFound):
			h.log.BusinessError("subscriptions.update: record not found", err, "user_id", user.ID, "record_id", recordID)
			writeError(w, http.StatusNotFound, "record_not_found", "record not found")
		case errors.Is(err, subsdomain.ErrCategoryNotFound):
			h.log.BusinessError("subscriptions.update: category not found", err, "user_id", user.ID, "category_id", input.CategoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case errors.Is(err, subsdomain.ErrRecordNotPayable):
			h.log.BusinessError("subscriptions.update: record already completed", err, "user_id", user.ID, "record_id", recordID)
			writeError(w, http.StatusConflict, "record_completed", "completed records cannot be edited")
		default:
			h.log.InternalError("subscriptions.update: update record failed", err, "user_id", user.ID, "record_id", recordID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(*updated))
}

func (h *Handlers) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	recordID := strings.TrimSpace(chi.URLParam(r, "id"))
	if recordID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Subscriptions.DeleteRecord(r.Context(), user.ID, recordID); err != nil {
		if errors.Is(err, subsdomain.ErrRecordNotFound) {
			h.log.BusinessError("subscriptions.delete: record not found", err, "user_id", user.ID, "record_id", recordID)
			writeError(w, http.StatusNotFound, "record_not_found", "record not found")
			return
		}
		h.log.InternalError("subscriptions.delete: delete record failed", err, "user_id", user.ID, "record_id", recordID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CompletePayment(w http.ResponseWriter, r *http.Request) {
	recordID := strings.TrimSpace(chi.URLParam(r, "id"))
	if recordID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	// Body is optional; an absent completion date means "paid today".
	var req completeRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	completionDate := time.Now()
	if strings.TrimSpace(req.CompletionDate) != "" {
		parsed, err := time.Parse(dateLayout, req.CompletionDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "completion_date must be YYYY-MM-DD")
			return
		}
		completionDate = parsed
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Subscriptions.CompletePayment(r.Context(), user.ID, recordID, completionDate)
	if err != nil {
		switch {
		case errors.Is(err, subsdomain.ErrRecordNotFound):
			h.log.BusinessError("subscriptions.complete: record not found", err, "user_id", user.ID, "record_id", recordID)
			writeError(w, http.StatusNotFound, "record_not_found", "record not found")
		case errors.Is(err, subsdomain.ErrRecordNotPayable):
			h.log.BusinessError("subscriptions.complete: record not payable", err, "user_id", user.ID, "record_id", recordID)
			writeError(w, http.StatusConflict, "record_not_payable", "record is not a payable occurrence")
		default:
			h.log.InternalError("subscriptions.complete: complete payment failed", err, "user_id", user.ID, "record_id", recordID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, completionResponse{
		Completed:   toRecordResponse(result.Completed),
		NextPending: toRecordResponse(result.NextPending),
	})
}

type validatedRecordInput struct {
	Description string
	Amount      int64
	DueDate     time.Time
	CategoryID  string
}

func (h *Handlers) recordInput(w http.ResponseWriter, req recordRequest) (validatedRecordInput, bool) {
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "description is required")
		return validatedRecordInput{}, false
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
		return validatedRecordInput{}, false
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category_id is required")
		return validatedRecordInput{}, false
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "due_date must be YYYY-MM-DD")
		return validatedRecordInput{}, false
	}

	return validatedRecordInput{
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     dueDate,
		CategoryID:  strings.TrimSpace(req.CategoryID),
	}, true
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return time.Now(), nil
	}
	return time.Parse(dateLayout, value)
}

func parseFilterMode(value string) (subsdomain.FilterMode, error) {
	switch strings.TrimSpace(value) {
	case "", "all":
		return subsdomain.FilterAll, nil
	case "3days":
		return subsdomain.FilterThreeDayWindow, nil
	default:
		return "", errors.New("unknown filter mode")
	}
}

func parseSortKey(value string) (subsdomain.SortKey, error) {
	switch strings.TrimSpace(value) {
	case "", "due":
		return subsdomain.SortByDueDate, nil
	case "amount":
		return subsdomain.SortByAmountDesc, nil
	case "name":
		return subsdomain.SortByNameAsc, nil
	default:
		return "", errors.New("unknown sort key")
	}
}

func toRecordResponse(record subsdomain.Record) recordResponse {
	return recordResponse{
		ID:          record.ID,
		Amount:      record.Amount,
		Description: record.Description,
		Status:      string(record.Status),
		DueDate:     formatDate(record.DueDate),
		ActualDate:  formatDate(record.ActualDate),
		CategoryID:  record.CategoryID,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(dateLayout)
	return &formatted
}
