package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/repositories"
)

type typingTestPostgreSQL struct {
	db *gorm.DB
}

// NewTypingTestPostgreSQL creates the gorm-backed typing sample repository
func NewTypingTestPostgreSQL(db *gorm.DB) repositories.TypingTestRepository {
	return &typingTestPostgreSQL{db: db}
}

func (r *typingTestPostgreSQL) Create(ctx context.Context, test *models.TypingTest) error {
	if err := r.db.WithContext(ctx).Create(test).Error; err != nil {
		return fmt.Errorf("failed to create typing test: %w", err)
	}
	return nil
}

func (r *typingTestPostgreSQL) GetByUser(ctx context.Context, userID string) ([]models.TypingTest, error) {
	var tests []models.TypingTest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&tests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list typing tests: %w", err)
	}
	return tests, nil
}

func (r *typingTestPostgreSQL) GetByUserNewestFirst(ctx context.Context, userID string) ([]models.TypingTest, error) {
	var tests []models.TypingTest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&tests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list typing tests: %w", err)
	}
	return tests, nil
}

func (r *typingTestPostgreSQL) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TypingTest{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count typing tests: %w", err)
	}
	return count, nil
}
