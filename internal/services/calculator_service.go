package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/repositories"
	"github.com/dashhub/productivity-service/internal/validator"
)

type calculatorService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewCalculatorService creates the calculator history service
func NewCalculatorService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) CalculatorService {
	return &calculatorService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *calculatorService) Save(ctx context.Context, userID string, req *validator.CalculatorCreateRequest) (*models.CalculatorEntry, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	entry := &models.CalculatorEntry{
		UserID:     userID,
		Expression: req.Expression,
		Result:     req.Result,
	}
	if err := s.repo.Calculator().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save calculator entry: %w", err)
	}
	return entry, nil
}

// GetLast returns the newest entry, or nil when the user has no history
func (s *calculatorService) GetLast(ctx context.Context, userID string) (*models.CalculatorEntry, error) {
	entry, err := s.repo.Calculator().GetLastByUser(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last calculator entry: %w", err)
	}
	return entry, nil
}

func (s *calculatorService) GetHistory(ctx context.Context, userID string) ([]models.CalculatorEntry, error) {
	entries, err := s.repo.Calculator().GetByUserNewestFirst(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculator entries: %w", err)
	}
	return entries, nil
}
