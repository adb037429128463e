package repositories

import (
	"context"

	"github.com/dashhub/productivity-service/internal/models"
)

// TypingTestRepository persists immutable typing samples.
// Samples are created once and never updated or deleted.
type TypingTestRepository interface {
	Create(ctx context.Context, test *models.TypingTest) error

	// GetByUser returns every sample owned by the user, used by the
	// aggregation read. Ordering is not significant here.
	GetByUser(ctx context.Context, userID string) ([]models.TypingTest, error)

	// GetByUserNewestFirst returns the full history ordered by
	// timestamp descending.
	GetByUserNewestFirst(ctx context.Context, userID string) ([]models.TypingTest, error)

	CountByUser(ctx context.Context, userID string) (int64, error)
}
