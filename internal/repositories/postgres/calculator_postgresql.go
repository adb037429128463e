package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/repositories"
)

type calculatorPostgreSQL struct {
	db *gorm.DB
}

// NewCalculatorPostgreSQL creates the gorm-backed calculator history repository
func NewCalculatorPostgreSQL(db *gorm.DB) repositories.CalculatorRepository {
	return &calculatorPostgreSQL{db: db}
}

func (r *calculatorPostgreSQL) Create(ctx context.Context, entry *models.CalculatorEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create calculator entry: %w", err)
	}
	return nil
}

func (r *calculatorPostgreSQL) GetLastByUser(ctx context.Context, userID string) (*models.CalculatorEntry, error) {
	var entry models.CalculatorEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get last calculator entry: %w", err)
	}
	return &entry, nil
}

func (r *calculatorPostgreSQL) GetByUserNewestFirst(ctx context.Context, userID string) ([]models.CalculatorEntry, error) {
	var entries []models.CalculatorEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list calculator entries: %w", err)
	}
	return entries, nil
}
