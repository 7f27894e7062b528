package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
	"github.com/internos/internos-api/internal/storage"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrUnknownStatus        = errors.New("unknown status value")
	ErrNotAssignedIntern    = errors.New("only the assigned intern can submit this task for review")
	ErrTaskAlreadyCompleted = errors.New("completed tasks cannot be submitted again")
	ErrTaskNotSubmitted     = errors.New("only submitted tasks can be reviewed")
	ErrSubmissionDenied     = errors.New("not allowed to view this task's submissions")
)

// TaskService drives the task lifecycle and its activity-log side effects.
type TaskService struct {
	taskRepo     repository.TaskRepository
	activityRepo repository.ActivityLogRepository
	uploads      *storage.UploadStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, activityRepo repository.ActivityLogRepository, uploads *storage.UploadStore) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		uploads:      uploads,
	}
}

// ListTasks returns every task with users and comments loaded.
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListMyTasks returns the tasks assigned to the caller, newest first.
func (s *TaskService) ListMyTasks(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task by id.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title            string
	Description      string
	AssignedToUserID uint64
	DueDate          *time.Time
	CreatorID        uint64
}

// CreateTask creates a task in Pending and records the creation.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:            input.Title,
		Description:      input.Description,
		Status:           models.TaskStatusPending,
		AssignedToUserID: input.AssignedToUserID,
		CreatedByUserID:  input.CreatorID,
		DueDate:          input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.logActivity("Task Created", input.CreatorID, &task.ID); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateStatus overwrites the status with the caller-supplied wire value.
// There is deliberately no transition-graph check here; the endpoint is
// restricted to Admin/Mentor and may move a task between any two statuses.
func (s *TaskService) UpdateStatus(taskID, actorID uint64, statusValue int) (*models.Task, error) {
	newStatus, err := models.TaskStatusFromValue(statusValue)
	if err != nil {
		return nil, ErrUnknownStatus
	}

	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	task.Status = newStatus

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	action := fmt.Sprintf("Status Changed from %s to %s", oldStatus, newStatus)
	if err := s.logActivity(action, actorID, &task.ID); err != nil {
		return nil, err
	}

	return task, nil
}

// Submit moves a task to Submitted on behalf of its assigned intern.
func (s *TaskService) Submit(taskID, actorID uint64, actorRole models.UserRole) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if actorRole != models.RoleIntern || task.AssignedToUserID != actorID {
		return nil, ErrNotAssignedIntern
	}
	if task.Status == models.TaskStatusCompleted {
		return nil, ErrTaskAlreadyCompleted
	}

	task.Status = models.TaskStatusSubmitted
	task.CompletedAt = nil

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := s.logActivity("Task Submitted for Review", actorID, &task.ID); err != nil {
		return nil, err
	}

	return task, nil
}

// ReviewInput carries a reviewer's verdict.
type ReviewInput struct {
	Approved bool
	Feedback string
}

// Review approves or rejects a submitted task. Approval completes the task
// and stamps the completion time; rejection sends it back to InProgress.
func (s *TaskService) Review(taskID, reviewerID uint64, input ReviewInput) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != models.TaskStatusSubmitted {
		return nil, ErrTaskNotSubmitted
	}

	if input.Approved {
		now := time.Now().UTC()
		task.Status = models.TaskStatusCompleted
		task.CompletedAt = &now
	} else {
		task.Status = models.TaskStatusInProgress
		task.CompletedAt = nil
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	action := "Task Approved"
	if !input.Approved {
		action = "Task Rejected (Needs Revision)"
	}
	if feedback := strings.TrimSpace(input.Feedback); feedback != "" {
		action = fmt.Sprintf("%s: %s", action, feedback)
	}

	if err := s.logActivity(action, reviewerID, &task.ID); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask removes the task, its comments and its submission files, and
// leaves the activity entries that pointed at it with a NULL task id.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.GetTask(taskID)
	if err != nil {
		return err
	}
	title := task.Title

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := s.uploads.RemoveSubmissions(taskID); err != nil {
		return fmt.Errorf("failed to remove submission files: %w", err)
	}

	return s.logActivity(fmt.Sprintf("Task Deleted: %s", title), actorID, nil)
}

// UploadSubmission stores an uploaded file for the assigned intern and moves
// the task to Submitted.
func (s *TaskService) UploadSubmission(taskID, actorID uint64, actorRole models.UserRole, fileName string, file io.Reader) (storage.StoredFile, *models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return storage.StoredFile{}, nil, err
	}

	if actorRole != models.RoleIntern || task.AssignedToUserID != actorID {
		return storage.StoredFile{}, nil, ErrNotAssignedIntern
	}

	stored, err := s.uploads.SaveSubmission(taskID, actorID, fileName, file)
	if err != nil {
		return storage.StoredFile{}, nil, fmt.Errorf("failed to store submission: %w", err)
	}

	task.Status = models.TaskStatusSubmitted
	task.CompletedAt = nil
	if err := s.taskRepo.Update(task); err != nil {
		return storage.StoredFile{}, nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := s.logActivity("Task Submission Uploaded", actorID, &task.ID); err != nil {
		return storage.StoredFile{}, nil, err
	}

	return stored, task, nil
}

// ListSubmissions lists a task's uploaded files for reviewers and the
// assignee.
func (s *TaskService) ListSubmissions(taskID, actorID uint64, actorRole models.UserRole) ([]storage.FileInfo, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	canAccess := actorRole == models.RoleAdmin || actorRole == models.RoleMentor || task.AssignedToUserID == actorID
	if !canAccess {
		return nil, ErrSubmissionDenied
	}

	files, err := s.uploads.ListSubmissions(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return files, nil
}

func (s *TaskService) logActivity(action string, userID uint64, taskID *uint64) error {
	entry := &models.ActivityLog{
		Action:    action,
		UserID:    userID,
		TaskID:    taskID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.activityRepo.Add(entry); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}
