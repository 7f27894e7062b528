package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrReassignTasks is returned when moving task ownership fails inside the delete transaction.
	ErrReassignTasks = errors.New("user repository: reassign tasks failed")
	// ErrReassignComments is returned when moving comment ownership fails inside the delete transaction.
	ErrReassignComments = errors.New("user repository: reassign comments failed")
	// ErrReassignActivities is returned when moving activity ownership fails inside the delete transaction.
	ErrReassignActivities = errors.New("user repository: reassign activities failed")
	// ErrDeleteUser is returned when the final user delete fails inside the transaction.
	ErrDeleteUser = errors.New("user repository: delete user failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailInUse reports whether another user already holds the email
func (r *GormUserRepository) EmailInUse(email string, excludeID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

// List retrieves all users
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole retrieves users holding the given role
func (r *GormUserRepository) ListByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("role = ?", role).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountByRole counts users holding the given role
func (r *GormUserRepository) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user with no dependent rows
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Delete(&models.User{}, id).Error
}

// CountDependencies counts the rows that reference the user
func (r *GormUserRepository) CountDependencies(userID uint64) (DependencyCounts, error) {
	var counts DependencyCounts

	if err := r.db.Model(&models.Task{}).
		Where("assigned_to_user_id = ?", userID).
		Count(&counts.AssignedTasks).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.Task{}).
		Where("created_by_user_id = ?", userID).
		Count(&counts.CreatedTasks).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Count(&counts.Comments).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.ActivityLog{}).
		Where("user_id = ?", userID).
		Count(&counts.Activities).Error; err != nil {
		return counts, err
	}

	return counts, nil
}

// ReassignAndDelete moves every dependent row to the replacement user and
// deletes the original, atomically. Any failure rolls the whole thing back.
func (r *GormUserRepository) ReassignAndDelete(userID, replacementID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("assigned_to_user_id = ?", userID).
			Update("assigned_to_user_id", replacementID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrReassignTasks, err)
		}

		if err := tx.Model(&models.Task{}).
			Where("created_by_user_id = ?", userID).
			Update("created_by_user_id", replacementID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrReassignTasks, err)
		}

		if err := tx.Model(&models.Comment{}).
			Where("user_id = ?", userID).
			Update("user_id", replacementID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrReassignComments, err)
		}

		if err := tx.Model(&models.ActivityLog{}).
			Where("user_id = ?", userID).
			Update("user_id", replacementID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrReassignActivities, err)
		}

		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteUser, err)
		}

		return nil
	})
}
