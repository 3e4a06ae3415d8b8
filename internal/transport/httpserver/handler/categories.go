package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	subsdomain "mooney-app-go/internal/domain/subscriptions"
	"mooney-app-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

type createCategoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type updateCategoryRequest struct {
	Name  string                 `json:"name"`
	Color optionalNullableString `json:"color"`
}

type optionalNullableString struct {
	Set   bool
	Value *string
}

func (o *optionalNullableString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	o.Value = &value
	return nil
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	categories, err := h.Subscriptions.ListCategories(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("categories.list: list categories failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	created, err := h.Subscriptions.CreateCategory(r.Context(), subsdomain.CreateCategoryInput{
		OwnerID: user.ID,
		Name:    req.Name,
		Color:   req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, subsdomain.ErrInvalidCategoryColor):
			h.log.BusinessError("categories.create: invalid color", err, "user_id", user.ID)
			writeError(w, http.StatusBadRequest, "invalid_request", "color must be null or #rrggbb")
		case errors.Is(err, subsdomain.ErrCategoryNameTaken):
			h.log.BusinessError("categories.create: name already exists", err, "user_id", user.ID)
			writeError(w, http.StatusConflict, "category_name_taken", "category name already exists")
		default:
			h.log.InternalError("categories.create: create category failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	updated, err := h.Subscriptions.UpdateCategory(r.Context(), subsdomain.UpdateCategoryInput{
		OwnerID:    user.ID,
		CategoryID: categoryID,
		Name:       req.Name,
		Color: subsdomain.OptionalNullableString{
			Set:   req.Color.Set,
			Value: req.Color.Value,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, subsdomain.ErrCategoryNotFound):
			h.log.BusinessError("categories.update: category not found", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case errors.Is(err, subsdomain.ErrCategoryNameTaken):
			h.log.BusinessError("categories.update: name already exists", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusConflict, "category_name_taken", "category name already exists")
		case errors.Is(err, subsdomain.ErrInvalidCategoryColor):
			h.log.BusinessError("categories.update: invalid color", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusBadRequest, "invalid_request", "color must be null or #rrggbb")
		default:
			h.log.InternalError("categories.update: update category failed", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Subscriptions.DeleteCategory(r.Context(), user.ID, categoryID); err != nil {
		switch {
		case errors.Is(err, subsdomain.ErrCategoryNotFound):
			h.log.BusinessError("categories.delete: category not found", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case errors.Is(err, subsdomain.ErrCategoryInUse):
			h.log.BusinessError("categories.delete: category is in use", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusConflict, "category_in_use", "category is used by records")
		default:
			h.log.InternalError("categories.delete: delete category failed", err, "user_id", user.ID, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCategoryResponse(category subsdomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
	}
}
