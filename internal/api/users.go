package api

import (
	"context"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"itemvault/internal/auth"
	"itemvault/internal/model"
	"itemvault/internal/store"
)

// UserStore is the user persistence contract the handlers depend on. Read
// methods exclude the password hash, except GetByEmailWithPassword, which
// exists solely for the login credential check.
type UserStore interface {
	List(ctx context.Context, skip, limit int64) ([]model.User, int64, error)
	Create(ctx context.Context, user model.User) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	UpdateByEmail(ctx context.Context, email string, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// UsersHandler handles user CRUD endpoints.
type UsersHandler struct {
	Store UserStore
}

type createUserRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
}

type userListResponse struct {
	Page       int64        `json:"page"`
	Limit      int64        `json:"limit"`
	TotalItems int64        `json:"totalItems"`
	TotalPages int64        `json:"totalPages"`
	Users      []model.User `json:"users"`
}

// List handles GET /users. Password hashes never appear in the response.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)

	users, total, err := h.Store.List(r.Context(), p.Skip, p.Limit)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}

	noCache(w)
	jsonResponse(w, http.StatusOK, userListResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, p.Limit),
		Users:      users,
	})
}

// Create handles POST /users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "Missing mandatory data")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := model.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Status:    model.UserStatusActive,
	}

	id, err := h.Store.Create(r.Context(), user)
	if err != nil {
		if msg := store.ClassifyDuplicate(err); msg != "" {
			jsonError(w, http.StatusBadRequest, msg)
			return
		}
		slog.Error("failed to create user", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user created", "username", req.Username)
	jsonResponse(w, http.StatusOK, map[string]string{"id": id.Hex()})
}

// Get handles GET /users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.Store.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// Patch handles PATCH /users/{id}: a field-scoped update of only the fields
// present in the body. A non-empty password is hashed before storage; an
// absent or empty one leaves the stored hash untouched.
func (h *UsersHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := resolveFields(body, userFieldSources)
	if status, ok := fields["status"].(string); ok && !model.ValidUserStatus(status) {
		jsonError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if password := coerceString(body["password"]); password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			jsonError(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		fields["password"] = hash
	}

	if len(fields) == 0 {
		jsonError(w, http.StatusBadRequest, "No update fields provided")
		return
	}

	h.applyUpdate(w, r, id, fields)
}

// Put handles PUT /users/{id}: a full update where each field resolves to
// the body value when present, else the stored value. The password is
// optional; the write is still a field-scoped $set of the resolved fields.
func (h *UsersHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing, err := h.Store.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}

	resolved := resolveFields(body, userFieldSources)
	if status, ok := resolved["status"].(string); ok && !model.ValidUserStatus(status) {
		jsonError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	status := existing.Status
	if status == "" {
		status = model.UserStatusActive
	}
	fields := bson.M{
		"username":  existing.Username,
		"email":     existing.Email,
		"firstname": existing.Firstname,
		"lastname":  existing.Lastname,
		"status":    status,
	}
	for target, value := range resolved {
		fields[target] = value
	}

	if password := coerceString(body["password"]); password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			jsonError(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		fields["password"] = hash
	}

	h.applyUpdate(w, r, id, fields)
}

// applyUpdate writes the resolved fields and maps store failures to
// responses shared by Patch and Put.
func (h *UsersHandler) applyUpdate(w http.ResponseWriter, r *http.Request, id primitive.ObjectID, fields bson.M) {
	matched, err := h.Store.Update(r.Context(), id, fields)
	if err != nil {
		if msg := store.ClassifyDuplicate(err); msg != "" {
			jsonError(w, http.StatusBadRequest, msg)
			return
		}
		slog.Error("failed to update user", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if !matched {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete handles DELETE /users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	matched, err := h.Store.Delete(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete user", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if !matched {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}
