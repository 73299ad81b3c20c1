package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshplate/freshplate-backend/internal/middleware"
	"github.com/freshplate/freshplate-backend/internal/models"
	"github.com/freshplate/freshplate-backend/internal/services"
	"github.com/freshplate/freshplate-backend/internal/store"
	"github.com/freshplate/freshplate-backend/pkg/utils"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user. Email must be unique; the Mongo index backs up
// the application-level check.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	if _, err := userStore.FindByEmail(ctx, req.Email); err == nil {
		writeError(w, http.StatusConflict, "User with this email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now()
	user := models.User{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		Role:      models.RoleUser,
	}

	if err := userStore.Insert(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "User with this email already exists")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Successfully signed up!"})
}

// loadUser resolves the {userId} route param to a stored user, writing the
// error response itself when the lookup fails.
func loadUser(w http.ResponseWriter, r *http.Request) *models.User {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "User not found")
		return nil
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	user, err := userStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "User not found")
		} else {
			writeError(w, http.StatusBadRequest, "Could not retrieve user")
		}
		return nil
	}
	return user
}

// isSelf reports whether the authenticated caller is the user being acted on.
func isSelf(identity *services.Identity, user *models.User) bool {
	return identity != nil && identity.ID == user.ID.Hex()
}

// ReadUser returns a user record (any authenticated caller).
func ReadUser(w http.ResponseWriter, r *http.Request) {
	user := loadUser(w, r)
	if user == nil {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateUser applies a partial update to the caller's own account. Renaming
// does not touch recipes by itself; the account flow follows up with the
// updateCreator cascade before the rename is considered complete.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	user := loadUser(w, r)
	if user == nil {
		return
	}
	identity := middleware.IdentityFrom(r.Context())
	if !isSelf(identity, user) {
		writeError(w, http.StatusForbidden, "User is not authorized")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
			return
		}
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = hashed
	}
	user.UpdatedAt = time.Now()

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	if err := userStore.Replace(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "User with this email already exists")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUser removes the caller's own account. Recipes are handled separately:
// the account flow either bulk-deletes them or transfers them to the admin
// before calling this.
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := loadUser(w, r)
	if user == nil {
		return
	}
	identity := middleware.IdentityFrom(r.Context())
	if !isSelf(identity, user) {
		writeError(w, http.StatusForbidden, "User is not authorized")
		return
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	if err := userStore.Delete(ctx, user.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
