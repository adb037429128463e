package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/repositories"
)

type userPostgreSQL struct {
	db *gorm.DB
}

// NewUserPostgreSQL creates the gorm-backed user repository
func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &userPostgreSQL{db: db}
}

func (r *userPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

func (r *userPostgreSQL) GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "subject_id = ?", subjectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by subject id: %w", err)
	}
	return &user, nil
}

func (r *userPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userPostgreSQL) UpdateTypingStats(ctx context.Context, id string, maxSpeed, avgSpeed float64) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"max_typing_speed":     maxSpeed,
			"average_typing_speed": avgSpeed,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update typing stats: %w", err)
	}
	return nil
}

func (r *userPostgreSQL) ExistsBySubjectID(ctx context.Context, subjectID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("subject_id = ?", subjectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
