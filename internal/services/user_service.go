package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
)

var (
	ErrSelfDelete          = errors.New("you cannot delete your own account")
	ErrReplacementIsTarget = errors.New("replacement user cannot be the same as the user being deleted")
	ErrReplacementNotFound = errors.New("replacement user not found")
)

// DependencyError blocks a user delete while dependent rows exist and no
// replacement was supplied. It carries the per-category counts for the
// response body.
type DependencyError struct {
	Counts repository.DependencyCounts
}

func (e *DependencyError) Error() string {
	return "cannot delete user because related records exist"
}

// UserService handles the admin-facing user directory.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListByRole returns accounts holding the given role.
func (s *UserService) ListByRole(role models.UserRole) ([]models.User, error) {
	users, err := s.userRepo.ListByRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns one account by id.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUserInput represents input for creating an account.
type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// CreateUser creates an account on behalf of an admin.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.ParseUserRole(input.Role),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateUserInput carries the fields an admin may change. Empty strings leave
// the current value untouched.
type UpdateUserInput struct {
	FullName string
	Email    string
	Role     string
}

// UpdateUser changes name, email and role on an account.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(input.Email); email != "" && email != user.Email {
		inUse, err := s.userRepo.EmailInUse(email, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if inUse {
			return nil, ErrEmailInUse
		}
		user.Email = email
	}

	if fullName := strings.TrimSpace(input.FullName); fullName != "" {
		user.FullName = fullName
	}

	if input.Role != "" {
		user.Role = models.ParseUserRole(input.Role)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Dependencies counts the rows referencing a user.
func (s *UserService) Dependencies(id uint64) (repository.DependencyCounts, error) {
	if _, err := s.GetUser(id); err != nil {
		return repository.DependencyCounts{}, err
	}

	counts, err := s.userRepo.CountDependencies(id)
	if err != nil {
		return repository.DependencyCounts{}, fmt.Errorf("failed to count dependencies: %w", err)
	}
	return counts, nil
}

// DeleteUser removes an account. Self-deletion is always rejected. When the
// account owns dependent rows, the caller must supply a replacement; every
// dependent row is then reassigned and the account deleted in one
// transaction.
func (s *UserService) DeleteUser(targetID, actorID uint64, reassignTo *uint64) error {
	if targetID == actorID {
		return ErrSelfDelete
	}

	if _, err := s.GetUser(targetID); err != nil {
		return err
	}

	if reassignTo != nil && *reassignTo == targetID {
		return ErrReplacementIsTarget
	}

	counts, err := s.userRepo.CountDependencies(targetID)
	if err != nil {
		return fmt.Errorf("failed to count dependencies: %w", err)
	}

	if counts.Total() > 0 && reassignTo == nil {
		return &DependencyError{Counts: counts}
	}

	if reassignTo != nil {
		if _, err := s.userRepo.FindByID(*reassignTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReplacementNotFound
			}
			return fmt.Errorf("failed to find replacement user: %w", err)
		}

		if err := s.userRepo.ReassignAndDelete(targetID, *reassignTo); err != nil {
			return fmt.Errorf("failed to reassign and delete user: %w", err)
		}
		return nil
	}

	if err := s.userRepo.Delete(targetID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
