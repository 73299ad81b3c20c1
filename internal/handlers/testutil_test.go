package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/freshplate/freshplate-backend/internal/config"
	"github.com/freshplate/freshplate-backend/internal/handlers"
	"github.com/freshplate/freshplate-backend/internal/models"
	"github.com/freshplate/freshplate-backend/internal/routes"
	"github.com/freshplate/freshplate-backend/internal/services"
	"github.com/freshplate/freshplate-backend/internal/store"
	"github.com/freshplate/freshplate-backend/pkg/utils"
)

const testSecret = "test-secret"

type testApp struct {
	router   *chi.Mux
	recipes  *store.MemoryRecipeStore
	users    *store.MemoryUserStore
	contacts *store.MemoryContactStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret}
	app := &testApp{
		recipes:  store.NewMemoryRecipeStore(),
		users:    store.NewMemoryUserStore(),
		contacts: store.NewMemoryContactStore(),
	}
	handlers.Init(cfg, app.recipes, app.users, app.contacts)
	app.router = chi.NewRouter()
	routes.SetupRoutes(app.router, cfg)
	return app
}

// seedUser inserts a user with password "secret123" and returns it together
// with a valid bearer token.
func (a *testApp) seedUser(t *testing.T, name, email, role string) (*models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	now := time.Now()
	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, a.users.Insert(context.Background(), user))

	token, err := services.CreateToken(user, testSecret)
	require.NoError(t, err)
	return user, token
}

// seedRecipe inserts a recipe owned by creator and returns it.
func (a *testApp) seedRecipe(t *testing.T, creator, title string) *models.Recipe {
	t.Helper()
	now := time.Now()
	recipe := &models.Recipe{
		Title:        title,
		Ingredients:  "water",
		Instructions: "boil",
		Creator:      creator,
		Created:      now,
		Updated:      now,
	}
	require.NoError(t, a.recipes.Insert(context.Background(), recipe))
	return recipe
}

func (a *testApp) do(t *testing.T, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	return a.do(t, method, path, token, &buf, "application/json")
}

// multipartBody builds a multipart form with the given fields and an optional
// image file part.
func multipartBody(t *testing.T, fields map[string]string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if imageData != nil {
		fw, err := w.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
