package api

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"itemvault/internal/imaging"
	"itemvault/internal/store"
)

// ProfileHandler handles the session-protected profile endpoints. The
// session middleware runs first, so a missing or invalid cookie never
// reaches these handlers.
type ProfileHandler struct {
	Users     UserStore
	UploadDir string
}

// maxUploadSize limits profile image uploads.
const maxUploadSize = 5 << 20

type updateProfileRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// Get handles GET /users/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), claims.Email)
	if err != nil {
		slog.Error("failed to get profile", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "Profile not found")
		return
	}

	jsonResponse(w, http.StatusOK, user.Profile())
}

// Update handles PUT /users/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	firstname := strings.TrimSpace(req.Firstname)
	lastname := strings.TrimSpace(req.Lastname)
	email := strings.TrimSpace(req.Email)

	if email == "" {
		jsonError(w, http.StatusBadRequest, "Email is required")
		return
	}

	// Advisory pre-check for a friendlier error; the unique index on email
	// is what actually enforces uniqueness under concurrent requests.
	if email != claims.Email {
		existing, err := h.Users.GetByEmail(r.Context(), email)
		if err != nil {
			slog.Error("failed to check email", "error", err)
			jsonError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if existing != nil {
			jsonError(w, http.StatusConflict, "Email already in use")
			return
		}
	}

	fields := bson.M{"firstname": firstname, "lastname": lastname, "email": email}
	matched, err := h.Users.UpdateByEmail(r.Context(), claims.Email, fields)
	if err != nil {
		if msg := store.ClassifyDuplicate(err); msg != "" {
			jsonError(w, http.StatusConflict, msg)
			return
		}
		slog.Error("failed to update profile", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !matched {
		jsonError(w, http.StatusNotFound, "Profile not found")
		return
	}

	updated, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil || updated == nil {
		slog.Error("failed to reload profile", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	jsonResponse(w, http.StatusOK, updated.Profile())
}

// UploadImage handles POST /users/profile/image. The stored filename is a
// generated identifier plus a sanitized extension, never the client-supplied
// name.
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	// Check the declared type against the allow-list, then verify the
	// actual bytes; both must agree the upload is an accepted image.
	if !imaging.AllowedMIME[header.Header.Get("Content-Type")] {
		jsonError(w, http.StatusBadRequest, "Only image files allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	if _, err := imaging.Validate(data); err != nil {
		jsonError(w, http.StatusBadRequest, "Only image files allowed")
		return
	}

	filename := uuid.NewString() + "." + imaging.SafeExtension(header.Filename)
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		slog.Error("failed to create upload dir", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	if err := os.WriteFile(filepath.Join(h.UploadDir, filename), data, 0o644); err != nil {
		slog.Error("failed to write upload", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	imageURL := "/profile-images/" + filename
	if _, err := h.Users.UpdateByEmail(r.Context(), claims.Email, bson.M{"profileImage": imageURL}); err != nil {
		slog.Error("failed to save profile image", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}
