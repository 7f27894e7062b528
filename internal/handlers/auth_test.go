package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/auth"
	"github.com/internos/internos-api/internal/database"
	"github.com/internos/internos-api/internal/dto"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
	"github.com/internos/internos-api/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *auth.TokenManager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityLog{},
		&models.Message{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	tokens := auth.NewTokenManager([]byte("test-signing-key"), "internos-api", "internos-clients", time.Hour)
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		tokens:      tokens,
	}
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "supersecret",
		"role":     "Mentor",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string      `json:"message"`
		User    dto.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Ada Lovelace", response.User.FullName)
	require.Equal(t, "Mentor", response.User.Role)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "email = ?", "ada@example.com").Error)
	require.NotEqual(t, "supersecret", stored.PasswordHash)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	payload := map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "supersecret",
	}

	w := postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "short",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
		Password: "supersecret",
		Role:     "Admin",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "grace@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Grace Hopper", response.FullName)
	require.Equal(t, "Admin", response.Role)
	require.NotEmpty(t, response.Token)

	claims, err := env.tokens.Parse(response.Token)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, claims.Role)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, response.ID, userID)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "grace@example.com",
		"password": "wrongpassword",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
