package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/freshplate/freshplate-backend/internal/config"
	"github.com/freshplate/freshplate-backend/internal/store"
)

// storeTimeout bounds every store operation issued from a handler.
const storeTimeout = 5 * time.Second

var (
	recipeStore  store.RecipeStore
	userStore    store.UserStore
	contactStore store.ContactStore
	jwtSecret    string
)

// Init wires the handler package to its stores and token secret. Called once
// from main before the router is set up.
func Init(cfg *config.Config, recipes store.RecipeStore, users store.UserStore, contacts store.ContactStore) {
	recipeStore = recipes
	userStore = users
	contactStore = contacts
	jwtSecret = cfg.JWTSecret
}

func storeCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, storeTimeout)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
