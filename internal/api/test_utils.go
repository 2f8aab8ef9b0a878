package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/config"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/testhelpers"
)

// setupTestRouter builds a full router over an in-memory database. Redis
// and image storage are absent, exercising the degraded paths the
// handlers must tolerate.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	cfg := &config.Config{
		JWTSecret: "test-secret",
		BaseURL:   "http://localhost:8080",
		UploadDir: t.TempDir(),
	}

	router := gin.New()
	SetupAPI(router, db, nil, nil, cfg)
	return router, db
}

// doJSON performs a JSON request and decodes the response body.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "response was not JSON: %s", w.Body.String())
	}
	return w, decoded
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, router *gin.Engine, username, email string) string {
	t.Helper()

	w, resp := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username":        username,
		"email":           email,
		"password":        "password123",
		"confirmPassword": "password123",
		"firstName":       "Test",
		"lastName":        "User",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %v", resp)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createRecipe posts a minimal valid recipe and returns its id.
func createRecipe(t *testing.T, router *gin.Engine, token, title string) uint {
	t.Helper()

	w, resp := doJSON(t, router, http.MethodPost, "/api/recipes", token, map[string]interface{}{
		"title":       title,
		"description": "A test recipe",
		"category":    "Main Course",
		"ingredients": []map[string]interface{}{
			{"name": "Salt", "quantity": "1", "unit": "tsp"},
		},
		"instructions": []map[string]interface{}{
			{"text": "Season to taste."},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, "create recipe failed: %v", resp)

	recipe, ok := resp["recipe"].(map[string]interface{})
	require.True(t, ok)
	id, ok := recipe["id"].(float64)
	require.True(t, ok)
	return uint(id)
}
