package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/constants"
	"github.com/internos/internos-api/internal/database"
	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
	"github.com/internos/internos-api/internal/services"
)

type userTestEnv struct {
	db      *gorm.DB
	handler *UserHandler
}

func setupUserTestEnv(t *testing.T) userTestEnv {
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

	userRepo := repository.NewUserRepository(db)
	handler := NewUserHandler(services.NewUserService(userRepo))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return userTestEnv{db: db, handler: handler}
}

func (env userTestEnv) createUser(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func deleteUserContext(actorID, targetID uint64, query string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	url := "/api/users/" + strconv.FormatUint(targetID, 10)
	if query != "" {
		url += "?" + query
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, url, nil)
	c.Set(constants.ContextKeyUserID, actorID)
	c.Set(constants.ContextKeyUserRole, models.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(targetID, 10)}}

	return c, w
}

func TestUserHandler_Delete_Self(t *testing.T) {
	env := setupUserTestEnv(t)
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)

	c, w := deleteUserContext(admin.ID, admin.ID, "")
	env.handler.Delete(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Delete_BlockedByDependencies(t *testing.T) {
	env := setupUserTestEnv(t)
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	mentor := env.createUser(t, "mentor@example.com", models.RoleMentor)
	intern := env.createUser(t, "intern@example.com", models.RoleIntern)

	task := &models.Task{
		Title:            "Task",
		Status:           models.TaskStatusPending,
		AssignedToUserID: intern.ID,
		CreatedByUserID:  mentor.ID,
	}
	require.NoError(t, env.db.Create(task).Error)

	c, w := deleteUserContext(admin.ID, mentor.ID, "")
	env.handler.Delete(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Details)

	details, ok := body.Details.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(1), details["createdTasks"])

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(3), count)
}

func TestUserHandler_Delete_WithReassignment(t *testing.T) {
	env := setupUserTestEnv(t)
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	mentor := env.createUser(t, "mentor@example.com", models.RoleMentor)
	replacement := env.createUser(t, "replacement@example.com", models.RoleMentor)
	intern := env.createUser(t, "intern@example.com", models.RoleIntern)

	task := &models.Task{
		Title:            "Task",
		Status:           models.TaskStatusPending,
		AssignedToUserID: intern.ID,
		CreatedByUserID:  mentor.ID,
	}
	require.NoError(t, env.db.Create(task).Error)

	entry := &models.ActivityLog{
		Action:    "Task Created",
		UserID:    mentor.ID,
		TaskID:    &task.ID,
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, env.db.Create(entry).Error)

	c, w := deleteUserContext(admin.ID, mentor.ID, "reassignToUserId="+strconv.FormatUint(replacement.ID, 10))
	env.handler.Delete(c)

	require.Equal(t, http.StatusOK, w.Code)

	var gone models.User
	err := env.db.First(&gone, mentor.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var movedTask models.Task
	require.NoError(t, env.db.First(&movedTask, task.ID).Error)
	require.Equal(t, replacement.ID, movedTask.CreatedByUserID)

	var movedEntry models.ActivityLog
	require.NoError(t, env.db.First(&movedEntry, entry.ID).Error)
	require.Equal(t, replacement.ID, movedEntry.UserID)
}

func TestUserHandler_Delete_ReplacementIsTarget(t *testing.T) {
	env := setupUserTestEnv(t)
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	mentor := env.createUser(t, "mentor@example.com", models.RoleMentor)

	c, w := deleteUserContext(admin.ID, mentor.ID, "reassignToUserId="+strconv.FormatUint(mentor.ID, 10))
	env.handler.Delete(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_ListInterns(t *testing.T) {
	env := setupUserTestEnv(t)
	env.createUser(t, "admin@example.com", models.RoleAdmin)
	env.createUser(t, "intern1@example.com", models.RoleIntern)
	env.createUser(t, "intern2@example.com", models.RoleIntern)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/users/interns", nil)

	env.handler.ListInterns(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	for _, u := range response {
		require.Equal(t, "Intern", u["role"])
	}
}
