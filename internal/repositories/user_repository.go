package repositories

import (
	"context"

	"github.com/dashhub/productivity-service/internal/models"
)

// UserRepository persists local user accounts and their aggregate stats
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error

	// UpdateTypingStats unconditionally overwrites both aggregate fields.
	// Last writer wins; there is no compare-and-swap.
	UpdateTypingStats(ctx context.Context, id string, maxSpeed, avgSpeed float64) error

	ExistsBySubjectID(ctx context.Context, subjectID string) (bool, error)
}
