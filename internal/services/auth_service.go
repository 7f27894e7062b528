package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/auth"
	"github.com/internos/internos-api/internal/constants"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailInUse           = errors.New("email is already in use")
	ErrWrongPassword        = errors.New("old password is incorrect")
	ErrSamePassword         = errors.New("new password must be different from old password")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, login and the caller's own profile.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// Register creates a new user. The role defaults to Intern when absent or
// unparseable; the raw password is never stored.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("full name and email are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

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
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.ParseUserRole(input.Role),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user with a signed bearer token.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfile changes the caller's own name and email.
func (s *AuthService) UpdateProfile(userID uint64, fullName, email string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	inUse, err := s.userRepo.EmailInUse(email, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if inUse {
		return nil, ErrEmailInUse
	}

	user.FullName = strings.TrimSpace(fullName)
	user.Email = email
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (s *AuthService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}
	if oldPassword == newPassword {
		return ErrSamePassword
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
