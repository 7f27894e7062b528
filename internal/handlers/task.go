package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/internos/internos-api/internal/constants"
	"github.com/internos/internos-api/internal/dto"
	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/middleware"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/services"
	"github.com/internos/internos-api/internal/storage"
)

// TaskHandler exposes the task registry over HTTP.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task with its comment rollup.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	items := make([]dto.TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToTaskListItemDTO(task)
	}

	c.JSON(http.StatusOK, items)
}

// ListMyTasks returns the tasks assigned to the caller.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListMyTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	items := make([]dto.MyTaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToMyTaskDTO(task)
	}

	c.JSON(http.StatusOK, items)
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task assigned to an intern. Status is forced to
// Pending regardless of the request.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title            string     `json:"title" binding:"required"`
		Description      string     `json:"description"`
		AssignedToUserID uint64     `json:"assignedToUserId" binding:"required"`
		DueDate          *time.Time `json:"dueDate"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		AssignedToUserID: req.AssignedToUserID,
		DueDate:          req.DueDate,
		CreatorID:        userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task successfully assigned!",
		"taskId":  task.ID,
	})
}

// UpdateStatus sets the status to the caller-supplied wire value. The body is
// a bare JSON integer.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var statusValue int
	if err := c.ShouldBindJSON(&statusValue); err != nil {
		apierrors.BadRequest(c, "Invalid status value")
		return
	}

	task, err := h.taskService.UpdateStatus(taskID, userID, statusValue)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Status updated!",
		"newStatus": string(task.Status),
	})
}

// SubmitTask flags the task for review on behalf of its assigned intern.
func (h *TaskHandler) SubmitTask(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Submit(taskID, userID, role)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Task submitted for review!",
		"newStatus": string(task.Status),
	})
}

// ReviewTask approves or rejects a submitted task.
func (h *TaskHandler) ReviewTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type ReviewRequest struct {
		Approved bool   `json:"approved"`
		Feedback string `json:"feedback"`
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Review(taskID, userID, services.ReviewInput{
		Approved: req.Approved,
		Feedback: req.Feedback,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	message := "Task sent back for revision."
	if req.Approved {
		message = "Task approved."
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"newStatus":   string(task.Status),
		"completedAt": task.CompletedAt,
	})
}

// DeleteTask removes a task and its dependent rows and files.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully."})
}

// UploadSubmission accepts a multipart submission file from the assigned
// intern and flags the task for review.
func (h *TaskHandler) UploadSubmission(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "Please select a file to upload")
		return
	}
	if fileHeader.Size == 0 {
		apierrors.BadRequest(c, "Please select a file to upload")
		return
	}
	if fileHeader.Size > constants.MaxSubmissionSize {
		apierrors.BadRequest(c, "File is too large")
		return
	}
	if !storage.AllowedSubmissionExtension(fileHeader.Filename) {
		apierrors.BadRequest(c, "File type not allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	stored, task, err := h.taskService.UploadSubmission(taskID, userID, role, fileHeader.Filename, file)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Submission uploaded successfully and sent for review.",
		"fileName":  stored.Name,
		"fileUrl":   publicUploadURL(c, stored.RelPath),
		"newStatus": string(task.Status),
	})
}

// ListSubmissions lists a task's uploaded files, newest first.
func (h *TaskHandler) ListSubmissions(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	files, err := h.taskService.ListSubmissions(taskID, userID, role)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	items := make([]dto.SubmissionDTO, len(files))
	for i, f := range files {
		items[i] = dto.SubmissionDTO{
			FileName:   f.Name,
			FileURL:    publicUploadURL(c, f.RelPath),
			SizeBytes:  f.Size,
			UploadedAt: f.ModTime,
		}
	}

	c.JSON(http.StatusOK, items)
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func callerIdentity(c *gin.Context) (uint64, models.UserRole, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, "", false
	}
	role, exists := middleware.GetUserRole(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, "", false
	}
	return userID, role, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrUnknownStatus),
		errors.Is(err, services.ErrTaskAlreadyCompleted),
		errors.Is(err, services.ErrTaskNotSubmitted):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotAssignedIntern),
		errors.Is(err, services.ErrSubmissionDenied):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
