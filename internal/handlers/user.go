package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/internos/internos-api/internal/dto"
	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/middleware"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/services"
)

// UserHandler serves the admin-facing user directory.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List returns every account.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// ListInterns returns accounts holding the Intern role.
func (h *UserHandler) ListInterns(c *gin.Context) {
	h.listByRole(c, models.RoleIntern)
}

// ListMentors returns accounts holding the Mentor role.
func (h *UserHandler) ListMentors(c *gin.Context) {
	h.listByRole(c, models.RoleMentor)
}

func (h *UserHandler) listByRole(c *gin.Context, role models.UserRole) {
	users, err := h.userService.ListByRole(role)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// Get returns one account by id.
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Create creates an account on behalf of an admin.
func (h *UserHandler) Create(c *gin.Context) {
	type CreateUserRequest struct {
		FullName string `json:"fullName" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Update changes name, email and role on an account.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Dependencies reports the rows that reference an account.
func (h *UserHandler) Dependencies(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	counts, err := h.userService.Dependencies(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserDependenciesDTO{
		AssignedTasks:     counts.AssignedTasks,
		CreatedTasks:      counts.CreatedTasks,
		TotalTasks:        counts.AssignedTasks + counts.CreatedTasks,
		Comments:          counts.Comments,
		Activities:        counts.Activities,
		TotalDependencies: counts.Total(),
		HasDependencies:   counts.Total() > 0,
	})
}

// Delete removes an account. When dependent rows exist, an optional
// reassignToUserId query parameter names the replacement owner.
func (h *UserHandler) Delete(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	var reassignTo *uint64
	if raw := c.Query("reassignToUserId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid reassignToUserId")
			return
		}
		reassignTo = &id
	}

	if err := h.userService.DeleteUser(targetID, actorID, reassignTo); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}

func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return userID, true
}

func respondUserError(c *gin.Context, err error) {
	var depErr *services.DependencyError

	switch {
	case errors.As(err, &depErr):
		apierrors.BadRequestWithDetails(c,
			"Cannot delete user because related records exist. Supply reassignToUserId to transfer them.",
			depErr.Counts)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, services.ErrReplacementIsTarget),
		errors.Is(err, services.ErrReplacementNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "User with this email already exists")
	case errors.Is(err, services.ErrEmailInUse):
		apierrors.BadRequest(c, "Email is already in use")
	default:
		apierrors.InternalError(c, "")
	}
}
