package repositories

import (
	"context"

	"github.com/dashhub/productivity-service/internal/models"
)

// TodoRepository persists user-owned todo entries
type TodoRepository interface {
	Create(ctx context.Context, todo *models.Todo) error
	GetByID(ctx context.Context, id string) (*models.Todo, error)
	GetByUserNewestFirst(ctx context.Context, userID string) ([]models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id string) error
}
