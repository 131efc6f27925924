package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/meduzzen/company-directory-api/internal/dto"
	"github.com/meduzzen/company-directory-api/internal/middleware"
)

func authRouter(env testEnv) *gin.Engine {
	handler := NewAuthHandler(env.authService, env.userService)

	r := gin.New()
	auth := r.Group("/auth")
	{
		auth.POST("/login", handler.Login)
		auth.POST("/register", handler.Register)

		me := auth.Group("/me")
		me.Use(middleware.RequireAuth(env.authService))
		{
			me.GET("", handler.GetMe)
			me.POST("", handler.UpdateMe)
			me.DELETE("", handler.DeleteMe)
		}
	}
	return r
}

func registerUser(t *testing.T, r *gin.Engine, name, email, password string) dto.UserDTO {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func loginUser(r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)

	user := registerUser(t, r, "Alice", "alice@example.com", "password123")
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "alice@example.com", user.Email)
	require.True(t, user.IsActive)

	w := loginUser(r, "alice@example.com", "password123")
	require.Equal(t, http.StatusOK, w.Code)

	var token dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)

	// Wrong password and unknown email both yield 400
	w = loginUser(r, "alice@example.com", "wrong-password")
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = loginUser(r, "nobody@example.com", "password123")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)

	registerUser(t, r, "Alice", "alice@example.com", "password123")

	// Duplicate email
	body, _ := json.Marshal(map[string]string{
		"name":     "Imposter",
		"email":    "alice@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)

	// Password too short
	body, _ = json.Marshal(map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "short",
	})
	req = httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe_BearerToken(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)

	registerUser(t, r, "Alice", "alice@example.com", "password123")
	w := loginUser(r, "alice@example.com", "password123")
	require.Equal(t, http.StatusOK, w.Code)

	var token dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "alice@example.com", me.Email)

	// Missing and malformed tokens are rejected
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateAndDeleteMe(t *testing.T) {
	env := setupTestEnv(t)
	r := authRouter(env)

	registerUser(t, r, "Alice", "alice@example.com", "password123")
	w := loginUser(r, "alice@example.com", "password123")
	var token dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	bearer := "Bearer " + token.AccessToken

	body, _ := json.Marshal(map[string]string{"bio": "Hello there"})
	req := httptest.NewRequest(http.MethodPost, "/auth/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "Hello there", me.Bio)
	require.Equal(t, "Alice", me.Name)

	req = httptest.NewRequest(http.MethodDelete, "/auth/me", nil)
	req.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The account is gone, so the token no longer resolves
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
