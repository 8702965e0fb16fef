package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mortan11/app-prompts/internal/api/v1/user"
	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/models"
	"github.com/mortan11/app-prompts/internal/services"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	db.Migrator().DropTable(&models.User{}, &models.Prompt{}, &models.Interaction{}, &models.PasswordResetToken{})
	db.AutoMigrate(&models.User{}, &models.Prompt{}, &models.Interaction{}, &models.PasswordResetToken{})
	database.DB = db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	setupTestDB()
	router := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "ada",
		"email":    "ada@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data user.UserResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ada", resp.Data.Username)
	assert.NotEmpty(t, resp.Data.Token)

	// Duplicate username conflicts
	w = doJSON(router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "ada",
		"email":    "other@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterEndpointValidation(t *testing.T) {
	setupTestDB()
	router := setupRouter()

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing username", gin.H{"email": "a@example.com", "password": "secret123"}},
		{"malformed email", gin.H{"username": "ada", "email": "not-an-email", "password": "secret123"}},
		{"short password", gin.H{"username": "ada", "email": "a@example.com", "password": "123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/v1/auth/register", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	setupTestDB()
	router := setupRouter()

	_, err := services.RegisterUser("ada", "ada@example.com", "secret123")
	assert.NoError(t, err)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "ada",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "ada",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForgotPasswordIsIndistinguishable(t *testing.T) {
	setupTestDB()
	router := setupRouter()

	_, err := services.RegisterUser("ada", "ada@example.com", "secret123")
	assert.NoError(t, err)

	known := doJSON(router, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{
		"email": "ada@example.com",
	})
	unknown := doJSON(router, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{
		"email": "nobody@example.com",
	})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestResetPasswordFlow(t *testing.T) {
	setupTestDB()
	router := setupRouter()

	u, err := services.RegisterUser("ada", "ada@example.com", "secret123")
	assert.NoError(t, err)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{
		"email": "Ada@Example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var prt models.PasswordResetToken
	assert.NoError(t, database.DB.Where("user_id = ?", u.ID).First(&prt).Error)

	w = doJSON(router, http.MethodGet, "/api/v1/auth/reset-password?token="+prt.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/reset-password", gin.H{
		"token":            prt.Token,
		"new_password":     "newsecret",
		"confirm_password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/reset-password", gin.H{
		"token":            prt.Token,
		"new_password":     "newsecret",
		"confirm_password": "newsecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// The old credential is gone, the token spent
	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "ada",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "ada",
		"password": "newsecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/auth/reset-password?token="+prt.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
}
