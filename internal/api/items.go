package api

import (
	"context"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"itemvault/internal/model"
	"itemvault/internal/store"
)

// ItemStore is the item persistence contract the handlers depend on.
type ItemStore interface {
	List(ctx context.Context, skip, limit int64) ([]model.Item, int64, error)
	Create(ctx context.Context, item model.Item) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Item, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	Store ItemStore
}

type itemListResponse struct {
	Page       int64        `json:"page"`
	Limit      int64        `json:"limit"`
	TotalItems int64        `json:"totalItems"`
	TotalPages int64        `json:"totalPages"`
	Items      []model.Item `json:"items"`
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)

	items, total, err := h.Store.List(r.Context(), p.Skip, p.Limit)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	noCache(w)
	jsonResponse(w, http.StatusOK, itemListResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, p.Limit),
		Items:      items,
	})
}

// Create handles POST /items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := model.Item{
		ItemName:     coerceString(body["itemName"]),
		ItemCategory: coerceString(body["itemCategory"]),
		ItemPrice:    coerceString(body["itemPrice"]),
		Status:       coerceString(body["status"]),
	}
	if item.Status == "" {
		item.Status = model.ItemStatusActive
	}

	if item.ItemName == "" || item.ItemCategory == "" || item.ItemPrice == "" {
		jsonError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	id, err := h.Store.Create(r.Context(), item)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to create item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"id": id.Hex()})
}

// Get handles GET /items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	item, err := h.Store.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH and PUT /items/{id}. Both apply a field-scoped $set
// of only the keys present in the body, so concurrent updates of disjoint
// fields cannot clobber each other.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := resolveFields(body, itemFieldSources)
	if len(fields) == 0 {
		jsonError(w, http.StatusBadRequest, "No update fields provided")
		return
	}

	matched, err := h.Store.Update(r.Context(), id, fields)
	if err != nil {
		slog.Error("failed to update item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}
	if !matched {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete handles DELETE /items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	matched, err := h.Store.Delete(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	if !matched {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}
