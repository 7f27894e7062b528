package dto

import "github.com/internos/internos-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

// UserDependenciesDTO reports the rows that reference a user.
type UserDependenciesDTO struct {
	AssignedTasks     int64 `json:"assignedTasks"`
	CreatedTasks      int64 `json:"createdTasks"`
	TotalTasks        int64 `json:"totalTasks"`
	Comments          int64 `json:"comments"`
	Activities        int64 `json:"activities"`
	TotalDependencies int64 `json:"totalDependencies"`
	HasDependencies   bool  `json:"hasDependencies"`
}
