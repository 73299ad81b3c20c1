package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/freshplate/freshplate-backend/internal/services"
	"github.com/freshplate/freshplate-backend/internal/store"
	"github.com/freshplate/freshplate-backend/pkg/utils"
)

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResponse struct {
	Token string            `json:"token"`
	User  map[string]string `json:"user"`
}

// Signin verifies credentials and issues a signed bearer token. The token is
// also set as cookie "t" for clients that prefer cookie transport.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := storeCtx(r.Context())
	defer cancel()

	user, err := userStore.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		} else {
			writeError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := services.CreateToken(user, jwtSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not sign in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "t",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(services.TokenDuration),
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, SigninResponse{
		Token: token,
		User: map[string]string{
			"_id":   user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Signout clears the token cookie. The bearer token itself simply expires;
// clients drop their stored copy.
func Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    "t",
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}
