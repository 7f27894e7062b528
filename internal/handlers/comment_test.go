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
	"github.com/internos/internos-api/internal/dto"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
	"github.com/internos/internos-api/internal/services"
)

type commentTestEnv struct {
	db      *gorm.DB
	handler *CommentHandler
}

func setupCommentTestEnv(t *testing.T) commentTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityLog{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	handler := NewCommentHandler(services.NewCommentService(repository.NewCommentRepository(db)))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return commentTestEnv{db: db, handler: handler}
}

func (env commentTestEnv) seedTask(t *testing.T) (*models.User, *models.Task) {
	t.Helper()

	user := &models.User{
		FullName:     "Commenter",
		Email:        "commenter@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleIntern,
	}
	require.NoError(t, env.db.Create(user).Error)

	task := &models.Task{
		Title:            "Task",
		Status:           models.TaskStatusPending,
		AssignedToUserID: user.ID,
		CreatedByUserID:  user.ID,
	}
	require.NoError(t, env.db.Create(task).Error)

	return user, task
}

func TestCommentHandler_AddComment_QueryParams(t *testing.T) {
	env := setupCommentTestEnv(t)
	user, task := env.seedTask(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost,
		"/api/comments?taskId="+strconv.FormatUint(task.ID, 10)+"&content=looks+good", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.AddComment(c)

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Comment
	require.NoError(t, env.db.First(&stored).Error)
	require.Equal(t, "looks good", stored.Content)
	require.Equal(t, task.ID, stored.TaskID)
	require.Equal(t, user.ID, stored.UserID)
}

func TestCommentHandler_AddComment_MissingContent(t *testing.T) {
	env := setupCommentTestEnv(t)
	user, task := env.seedTask(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost,
		"/api/comments?taskId="+strconv.FormatUint(task.ID, 10), nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.AddComment(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentHandler_AddComment_BadTaskID(t *testing.T) {
	env := setupCommentTestEnv(t)
	user, _ := env.seedTask(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/comments?taskId=abc&content=hi", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.AddComment(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentHandler_ListByTask(t *testing.T) {
	env := setupCommentTestEnv(t)
	user, task := env.seedTask(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i, content := range []string{"first", "second"} {
		require.NoError(t, env.db.Create(&models.Comment{
			TaskID:    task.ID,
			UserID:    user.ID,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/comments/task/1", nil)
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: strconv.FormatUint(task.ID, 10)}}

	env.handler.ListByTask(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response []dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	require.Equal(t, "first", response[0].Content)
	require.Equal(t, "Commenter", response[0].AuthorName)
}
