package repositories

import (
	"context"

	"github.com/dashhub/productivity-service/internal/models"
)

// CalculatorRepository persists user-owned calculation history
type CalculatorRepository interface {
	Create(ctx context.Context, entry *models.CalculatorEntry) error
	GetLastByUser(ctx context.Context, userID string) (*models.CalculatorEntry, error)
	GetByUserNewestFirst(ctx context.Context, userID string) ([]models.CalculatorEntry, error)
}
