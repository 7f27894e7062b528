package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internos/internos-api/internal/constants"
	"github.com/internos/internos-api/internal/dto"
	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/middleware"
	"github.com/internos/internos-api/internal/services"
	"github.com/internos/internos-api/internal/storage"
)

// ProfileHandler serves the caller's own account.
type ProfileHandler struct {
	authService *services.AuthService
	uploads     *storage.UploadStore
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(authService *services.AuthService, uploads *storage.UploadStore) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
		uploads:     uploads,
	}
}

// Me returns the caller's profile including their latest photo.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	profile := dto.ProfileDTO{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     string(user.Role),
	}

	if photo, found, err := h.uploads.LatestProfilePhoto(userID); err == nil && found {
		url := publicUploadURL(c, photo.RelPath)
		profile.ProfilePhotoURL = &url
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMe changes the caller's own name and email.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		FullName string `json:"fullName" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(userID, req.FullName, req.Email)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    dto.ToUserDTO(*user),
	})
}

// ChangePassword verifies the old password and stores a new one.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangePasswordRequest struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

// UploadPhoto replaces the caller's profile photo.
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
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
	if fileHeader.Size > constants.MaxProfilePhotoSize {
		apierrors.BadRequest(c, "File is too large")
		return
	}
	if !storage.AllowedPhotoExtension(fileHeader.Filename) {
		apierrors.BadRequest(c, "File type not allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	stored, err := h.uploads.SaveProfilePhoto(userID, fileHeader.Filename, file)
	if err != nil {
		apierrors.InternalError(c, "Failed to store photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile photo updated.",
		"photoUrl": publicUploadURL(c, stored.RelPath),
	})
}
