package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshplate/freshplate-backend/internal/models"
	"github.com/freshplate/freshplate-backend/internal/services"
)

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", extractBearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", extractBearerToken("Bearer   abc123  "))
	assert.Empty(t, extractBearerToken(""))
	assert.Empty(t, extractBearerToken("abc123"))
	assert.Empty(t, extractBearerToken("Basic abc123"))
}

func TestRequireSignin(t *testing.T) {
	const secret = "mw-test-secret"
	user := &models.User{ID: primitive.NewObjectID(), Name: "alice", Role: models.RoleUser}
	token, err := services.CreateToken(user, secret)
	require.NoError(t, err)

	var seen *services.Identity
	handler := RequireSignin(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// valid token passes through and the identity reaches the handler
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID.Hex(), seen.ID)
	assert.Equal(t, "alice", seen.Name)

	// missing header
	seen = nil
	req = httptest.NewRequest("GET", "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)

	// token signed with a different secret
	wrong, err := services.CreateToken(user, "other-secret")
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+wrong)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityFrom_MissingIdentity(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, IdentityFrom(req.Context()))
}
