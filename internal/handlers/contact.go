package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/freshplate/freshplate-backend/internal/middleware"
	"github.com/freshplate/freshplate-backend/internal/models"
)

type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact stores a contact-form submission. Append-only; there is no
// update or delete path for contact messages.
func SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req SubmitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	contact := models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Created: time.Now(),
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	if err := contactStore.Insert(ctx, &contact); err != nil {
		writeError(w, http.StatusInternalServerError, "An error occurred while saving the contact")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Successfully saved the contact!"})
}

// GetContacts returns all submissions, newest first. Admin only.
func GetContacts(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil || identity.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "Admin access required")
		return
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	contacts, err := contactStore.FindAll(ctx)
	if err != nil {
		writeError(w, http.StatusBadRequest, "An error occurred while retrieving contacts")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}
